package order

import (
	"errors"

	"tafaya_back_end/internal/models"
)

// CreateOrderRequest est le corps du checkout : coordonnées du client, lignes
// du panier et total calculé côté client (indicatif, recalculé côté serveur).
type CreateOrderRequest struct {
	Customer models.OrderCustomer `json:"customer"`
	Items    []models.OrderItem   `json:"items"`
	Total    float64              `json:"total"`
	// GuestID optionnel : si fourni, le panier invité est vidé après succès
	GuestID string `json:"guestId,omitempty"`
}

// Validate rejette la commande avant toute écriture si un champ requis manque
func (r CreateOrderRequest) Validate() error {
	if r.Customer.Name == "" {
		return errors.New("le nom du client est obligatoire")
	}
	if r.Customer.Phone == "" {
		return errors.New("le téléphone du client est obligatoire")
	}
	if r.Customer.Address == "" {
		return errors.New("l'adresse de livraison est obligatoire")
	}
	if len(r.Items) == 0 {
		return errors.New("la commande ne contient aucun article")
	}
	if r.Total == 0 {
		return errors.New("le total de la commande est vide")
	}
	for _, item := range r.Items {
		if item.Quantity < 1 {
			return errors.New("quantité invalide sur un article")
		}
	}
	return nil
}

// ComputeTotal recalcule le total faisant foi à partir des prix du catalogue
// et des modificateurs de variante. Le prix figé dans la ligne ne sert que de
// repli quand le produit référencé n'existe plus (ou n'est pas référencé).
func ComputeTotal(items []models.OrderItem, lookup func(productID string) (models.Product, bool)) float64 {
	var total float64
	for _, item := range items {
		price := item.Price

		if item.ProductID != "" {
			if p, ok := lookup(item.ProductID); ok {
				price = p.Price
				if item.Variant != nil {
					price += p.VariantModifier(item.Variant.Name, item.Variant.Option)
				}
			}
		}

		total += price * float64(item.Quantity)
	}
	return total
}

// Decrement est une décrémentation de stock à appliquer après l'enregistrement
// de la commande
type Decrement struct {
	ProductID string
	Quantity  int
}

// PlanDecrements agrège les quantités par produit référencé. Une ligne sans
// référence produit ne touche jamais au stock.
func PlanDecrements(items []models.OrderItem) []Decrement {
	index := make(map[string]int)
	var plan []Decrement

	for _, item := range items {
		if item.ProductID == "" {
			continue
		}
		if i, ok := index[item.ProductID]; ok {
			plan[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(plan)
		plan = append(plan, Decrement{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	return plan
}
