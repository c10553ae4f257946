package models

import (
	"time"

	"github.com/gocql/gocql"
)

type Review struct {
	ID        gocql.UUID `json:"id"`
	ProductID gocql.UUID `json:"productId"`
	UserName  string     `json:"userName"`
	Rating    int        `json:"rating"` // 1-5 attendu, non borné côté serveur
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"createdAt"`
}
