package cart

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tafaya_back_end/internal/models"
)

func produit(name string, price float64) models.Product {
	return models.Product{
		ID:    gocql.TimeUUID(),
		Name:  name,
		Price: price,
	}
}

// Ajouter deux fois le même produit avec le même axe de variante fusionne en
// une seule ligne avec les quantités additionnées
func TestAddFusionneLignesIdentiques(t *testing.T) {
	p := produit("Cendrier rond", 100)
	variant := &SelectedVariant{Name: "Couleur", Option: "Bleu"}

	var c Cart
	c.Add(p, variant, 1)
	c.Add(p, variant, 2)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 3, c.Items[0].Quantity)
}

// Comportement connu : la clé de fusion ne compare que le NOM de l'axe de
// variante, pas l'option choisie. Deux options différentes du même axe
// fusionnent donc aussi.
func TestAddFusionneMemeAxeOptionDifferente(t *testing.T) {
	p := produit("Cendrier rond", 100)

	var c Cart
	c.Add(p, &SelectedVariant{Name: "Couleur", Option: "Bleu"}, 1)
	c.Add(p, &SelectedVariant{Name: "Couleur", Option: "Rouge"}, 1)

	require.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Items[0].Quantity)
	assert.Equal(t, "Bleu", c.Items[0].Variant.Option)
}

func TestAddSansVarianteEtAvecVariante(t *testing.T) {
	p := produit("Cendrier rond", 100)

	var c Cart
	c.Add(p, nil, 1)
	c.Add(p, &SelectedVariant{Name: "Couleur", Option: "Bleu"}, 1)

	assert.Len(t, c.Items, 2)
}

func TestAddQuantiteMinimale(t *testing.T) {
	var c Cart
	item := c.Add(produit("Cendrier", 50), nil, 0)
	assert.Equal(t, 1, item.Quantity)
}

func TestRemove(t *testing.T) {
	var c Cart
	item := c.Add(produit("Cendrier", 50), nil, 1)

	assert.True(t, c.Remove(item.CartID))
	assert.Empty(t, c.Items)
	assert.False(t, c.Remove("inconnu"))
}

// setQuantity(0) et setQuantity(-1) sont ignorés, la ligne reste intacte
func TestSetQuantityPlancher(t *testing.T) {
	var c Cart
	item := c.Add(produit("Cendrier", 50), nil, 2)

	assert.False(t, c.SetQuantity(item.CartID, 0))
	assert.False(t, c.SetQuantity(item.CartID, -1))
	assert.Equal(t, 2, c.Items[0].Quantity)

	assert.True(t, c.SetQuantity(item.CartID, 5))
	assert.Equal(t, 5, c.Items[0].Quantity)
}

// Ligne A: 100 × 2 sans modificateur, ligne B: (50 + 10) × 1 → total 260
func TestTotal(t *testing.T) {
	var c Cart
	c.Add(produit("A", 100), nil, 2)
	c.Add(produit("B", 50), &SelectedVariant{Name: "Taille", Option: "Grand", PriceModifier: 10}, 1)

	assert.Equal(t, 260.0, c.Total())
}

// Un prix manquant compte pour 0 dans le total
func TestTotalPrixManquant(t *testing.T) {
	var c Cart
	c.Add(produit("Sur devis", 0), nil, 3)

	assert.Equal(t, 0.0, c.Total())
}

func TestCount(t *testing.T) {
	var c Cart
	c.Add(produit("A", 10), nil, 2)
	c.Add(produit("B", 20), nil, 3)

	assert.Equal(t, 5, c.Count())

	c.Clear()
	assert.Equal(t, 0, c.Count())
}

// Une valeur absente ou corrompue se dégrade en panier vide
func TestDecodeDegradeEnPanierVide(t *testing.T) {
	assert.Empty(t, Decode(nil).Items)
	assert.Empty(t, Decode([]byte("{pas du json")).Items)

	c := Decode([]byte(`{"items":[{"cartId":"l1","id":"p1","name":"Cendrier","price":80,"quantity":2}]}`))
	require.Len(t, c.Items, 1)
	assert.Equal(t, 160.0, c.Total())
}
