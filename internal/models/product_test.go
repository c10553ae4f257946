package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Stock
	}{
		{"chaîne vide devient illimité", `""`, UnlimitedStock()},
		{"null devient illimité", `null`, UnlimitedStock()},
		{"nombre", `12`, LimitedStock(12)},
		{"zéro reste un stock fini", `0`, LimitedStock(0)},
		{"chaîne numérique", `"7"`, LimitedStock(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Stock
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.want, s)
		})
	}
}

func TestStockUnmarshalInvalide(t *testing.T) {
	var s Stock
	assert.Error(t, json.Unmarshal([]byte(`"beaucoup"`), &s))
}

func TestStockMarshal(t *testing.T) {
	out, err := json.Marshal(UnlimitedStock())
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = json.Marshal(LimitedStock(3))
	require.NoError(t, err)
	assert.Equal(t, "3", string(out))
}

func TestStockSentinelleDB(t *testing.T) {
	assert.Equal(t, -1, UnlimitedStock().DB())
	assert.Equal(t, 0, LimitedStock(0).DB())
	assert.Equal(t, UnlimitedStock(), StockFromDB(-1))
	assert.Equal(t, LimitedStock(5), StockFromDB(5))
}

// La création puis relecture d'un produit ne doit perdre aucun champ
func TestProductRoundTripJSON(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	stock := 4
	p := Product{
		ID:          gocql.TimeUUID(),
		Name:        "Cendrier berbère",
		Description: "Fait main à Fès",
		Price:       150,
		Image:       "http://minio/products/cendrier.jpg",
		Images:      []string{"http://minio/products/cendrier.jpg", "http://minio/products/cendrier-2.jpg"},
		Category:    DefaultCategory,
		Tags:        []string{"fait-main", "céramique"},
		Stock:       LimitedStock(9),
		Views:       3,
		Variants: []Variant{{
			Name: "Couleur",
			Options: []VariantOption{
				{Value: "Bleu", PriceModifier: 10, Stock: &stock},
				{Value: "Naturel"},
			},
		}},
		CreatedAt: now,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var back Product
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, p, back)
}

func TestVariantModifier(t *testing.T) {
	p := Product{Variants: []Variant{{
		Name: "Taille",
		Options: []VariantOption{
			{Value: "Petit"},
			{Value: "Grand", PriceModifier: 25},
		},
	}}}

	assert.Equal(t, 25.0, p.VariantModifier("Taille", "Grand"))
	assert.Equal(t, 0.0, p.VariantModifier("Taille", "Petit"))
	assert.Equal(t, 0.0, p.VariantModifier("Couleur", "Bleu"))
}
