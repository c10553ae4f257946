package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Statuts de commande. Aucun graphe de transition n'est imposé : l'admin peut
// passer d'un statut à n'importe quel autre.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type OrderCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// OrderVariant est l'instantané de l'option choisie au moment de la commande
type OrderVariant struct {
	Name   string `json:"name"`
	Option string `json:"option"`
}

type OrderItem struct {
	ProductID string        `json:"productId,omitempty"`
	Name      string        `json:"name"`
	Variant   *OrderVariant `json:"variant,omitempty"`
	Price     float64       `json:"price"`
	Quantity  int           `json:"quantity"`
}

type Order struct {
	ID        gocql.UUID    `json:"id"`
	Customer  OrderCustomer `json:"customer"`
	Items     []OrderItem   `json:"items"`
	Total     float64       `json:"total"`
	Status    string        `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// ShortRef retourne la référence courte affichée au client (6 derniers
// caractères de l'identifiant)
func (o Order) ShortRef() string {
	id := o.ID.String()
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}

// StockAdjustment trace une décrémentation de stock qui n'a pas pu être
// appliquée après l'enregistrement d'une commande, pour reprise hors ligne.
type StockAdjustment struct {
	ID        gocql.UUID `json:"id"`
	OrderID   gocql.UUID `json:"orderId"`
	ProductID string     `json:"productId"`
	Quantity  int        `json:"quantity"`
	Reason    string     `json:"reason"`
	CreatedAt time.Time  `json:"createdAt"`
}
