package cart

import (
	"github.com/google/uuid"

	"tafaya_back_end/internal/models"
)

// SelectedVariant est l'option retenue par le client pour un axe de
// personnalisation, avec son modificateur de prix figé à l'ajout au panier.
type SelectedVariant struct {
	Name          string  `json:"name"`
	Option        string  `json:"option"`
	PriceModifier float64 `json:"priceModifier,omitempty"`
}

// Item est une ligne du panier : un instantané du produit (nom, prix, image),
// la variante choisie et la quantité. CartID identifie la ligne localement,
// distinct de l'id produit pour qu'un même produit en deux variantes donne
// deux lignes.
type Item struct {
	CartID    string           `json:"cartId"`
	ProductID string           `json:"id"`
	Name      string           `json:"name"`
	Price     float64          `json:"price"`
	Image     string           `json:"image,omitempty"`
	Variant   *SelectedVariant `json:"variant,omitempty"`
	Quantity  int              `json:"quantity"`
}

// Cart est le panier pré-commande, indépendant du serveur jusqu'au checkout
type Cart struct {
	Items []Item `json:"items"`
}

func variantName(v *SelectedVariant) string {
	if v == nil {
		return ""
	}
	return v.Name
}

// Add ajoute un produit au panier. Si une ligne existe déjà pour le même
// produit et le même nom d'axe de variante, sa quantité est incrémentée ;
// sinon une nouvelle ligne est créée. Ne peut pas échouer.
func (c *Cart) Add(p models.Product, variant *SelectedVariant, quantity int) Item {
	if quantity < 1 {
		quantity = 1
	}

	productID := p.ID.String()
	for i := range c.Items {
		if c.Items[i].ProductID == productID && variantName(c.Items[i].Variant) == variantName(variant) {
			c.Items[i].Quantity += quantity
			return c.Items[i]
		}
	}

	item := Item{
		CartID:    uuid.NewString(),
		ProductID: productID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Variant:   variant,
		Quantity:  quantity,
	}
	c.Items = append(c.Items, item)
	return item
}

// Remove supprime la ligne identifiée par cartID ; no-op si elle n'existe pas
func (c *Cart) Remove(cartID string) bool {
	for i := range c.Items {
		if c.Items[i].CartID == cartID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// SetQuantity remplace la quantité d'une ligne. Une quantité < 1 est ignorée.
func (c *Cart) SetQuantity(cartID string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	for i := range c.Items {
		if c.Items[i].CartID == cartID {
			c.Items[i].Quantity = quantity
			return true
		}
	}
	return false
}

// Clear vide le panier
func (c *Cart) Clear() {
	c.Items = nil
}

// Total calcule le montant du panier : (prix unitaire + modificateur de la
// variante choisie) × quantité, ligne par ligne
func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		price := item.Price
		if item.Variant != nil {
			price += item.Variant.PriceModifier
		}
		total += price * float64(item.Quantity)
	}
	return total
}

// Count retourne la somme des quantités, pour le badge du panier
func (c Cart) Count() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
