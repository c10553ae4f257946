package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/gocql/gocql"
)

// Catégorie par défaut de la boutique
const DefaultCategory = "Ashtrays"

// Stock d'un produit. Un stock absent ("" ou null côté admin) signifie
// "fabriqué à la commande" : quantité illimitée.
// En base, la sentinelle -1 représente l'illimité (gocql ne distingue pas
// null de zéro sur un int).
type Stock struct {
	Limited bool
	Count   int
}

const unlimitedSentinel = -1

func LimitedStock(n int) Stock {
	return Stock{Limited: true, Count: n}
}

func UnlimitedStock() Stock {
	return Stock{}
}

// StockFromDB convertit la valeur stockée en base
func StockFromDB(n int) Stock {
	if n == unlimitedSentinel {
		return UnlimitedStock()
	}
	return LimitedStock(n)
}

// DB retourne la valeur à écrire en base
func (s Stock) DB() int {
	if !s.Limited {
		return unlimitedSentinel
	}
	return s.Count
}

func (s Stock) MarshalJSON() ([]byte, error) {
	if !s.Limited {
		return []byte("null"), nil
	}
	return json.Marshal(s.Count)
}

// UnmarshalJSON normalise les saisies du formulaire admin : null, "" et
// chaîne vide deviennent "illimité", un nombre (ou une chaîne numérique)
// devient un stock fini.
func (s *Stock) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*s = UnlimitedStock()
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		if str == "" {
			*s = UnlimitedStock()
			return nil
		}
		n, err := strconv.Atoi(str)
		if err != nil {
			return fmt.Errorf("stock invalide: %q", str)
		}
		*s = LimitedStock(n)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("stock invalide: %s", data)
	}
	*s = LimitedStock(n)
	return nil
}

type VariantOption struct {
	Value         string  `json:"value"`
	PriceModifier float64 `json:"priceModifier,omitempty"`
	Stock         *int    `json:"stock,omitempty"`
}

// Variant est un axe de personnalisation (ex: "Couleur") avec ses options
type Variant struct {
	Name    string          `json:"name"`
	Options []VariantOption `json:"options"`
}

type Product struct {
	ID          gocql.UUID `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Image       string     `json:"image,omitempty"`
	Images      []string   `json:"images"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	Stock       Stock      `json:"stock"`
	Views       int64      `json:"views"`
	Variants    []Variant  `json:"variants"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// VariantModifier retourne le modificateur de prix d'une option choisie
func (p Product) VariantModifier(group, option string) float64 {
	for _, v := range p.Variants {
		if v.Name != group {
			continue
		}
		for _, o := range v.Options {
			if o.Value == option {
				return o.PriceModifier
			}
		}
	}
	return 0
}
