package order

import (
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tafaya_back_end/internal/models"
)

func clientValide() models.OrderCustomer {
	return models.OrderCustomer{
		Name:    "Amina El Idrissi",
		Phone:   "212600000000",
		Address: "12 rue des Potiers, Fès",
	}
}

func TestValidateChampsRequis(t *testing.T) {
	base := CreateOrderRequest{
		Customer: clientValide(),
		Items:    []models.OrderItem{{Name: "Cendrier", Price: 100, Quantity: 1}},
		Total:    100,
	}
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*CreateOrderRequest)
	}{
		{"nom manquant", func(r *CreateOrderRequest) { r.Customer.Name = "" }},
		{"téléphone manquant", func(r *CreateOrderRequest) { r.Customer.Phone = "" }},
		{"adresse manquante", func(r *CreateOrderRequest) { r.Customer.Address = "" }},
		{"aucun article", func(r *CreateOrderRequest) { r.Items = nil }},
		{"total vide", func(r *CreateOrderRequest) { r.Total = 0 }},
		{"quantité nulle", func(r *CreateOrderRequest) { r.Items[0].Quantity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			req.Items = append([]models.OrderItem(nil), base.Items...)
			tt.mutate(&req)
			assert.Error(t, req.Validate())
		})
	}
}

// Le total faisant foi vient du catalogue, pas du client : prix produit +
// modificateur de variante, le prix figé ne servant que de repli
func TestComputeTotal(t *testing.T) {
	idA := gocql.TimeUUID()
	idB := gocql.TimeUUID()

	catalogue := map[string]models.Product{
		idA.String(): {ID: idA, Price: 100},
		idB.String(): {ID: idB, Price: 50, Variants: []models.Variant{{
			Name:    "Taille",
			Options: []models.VariantOption{{Value: "Grand", PriceModifier: 10}},
		}}},
	}
	lookup := func(id string) (models.Product, bool) {
		p, ok := catalogue[id]
		return p, ok
	}

	items := []models.OrderItem{
		{ProductID: idA.String(), Name: "A", Price: 1, Quantity: 2}, // prix client mensonger, ignoré
		{ProductID: idB.String(), Name: "B", Price: 50, Quantity: 1,
			Variant: &models.OrderVariant{Name: "Taille", Option: "Grand"}},
	}

	assert.Equal(t, 260.0, ComputeTotal(items, lookup))
}

// Une ligne dont le produit n'existe plus garde son prix figé
func TestComputeTotalProduitDisparu(t *testing.T) {
	lookup := func(string) (models.Product, bool) { return models.Product{}, false }

	items := []models.OrderItem{
		{ProductID: "inconnu", Name: "Ancien modèle", Price: 80, Quantity: 2},
		{Name: "Sans référence", Price: 20, Quantity: 1},
	}

	assert.Equal(t, 180.0, ComputeTotal(items, lookup))
}

// Une ligne sans référence produit ne déclenche aucun décrément de stock
func TestPlanDecrementsIgnoreLignesSansReference(t *testing.T) {
	items := []models.OrderItem{
		{Name: "Personnalisé", Price: 200, Quantity: 1},
		{ProductID: "p1", Name: "A", Quantity: 2},
	}

	plan := PlanDecrements(items)
	require.Len(t, plan, 1)
	assert.Equal(t, Decrement{ProductID: "p1", Quantity: 2}, plan[0])
}

// Deux lignes du même produit (variantes différentes) cumulent leurs quantités
func TestPlanDecrementsAgregeParProduit(t *testing.T) {
	items := []models.OrderItem{
		{ProductID: "p1", Quantity: 2, Variant: &models.OrderVariant{Name: "Couleur", Option: "Bleu"}},
		{ProductID: "p1", Quantity: 1, Variant: &models.OrderVariant{Name: "Couleur", Option: "Rouge"}},
		{ProductID: "p2", Quantity: 4},
	}

	plan := PlanDecrements(items)
	require.Len(t, plan, 2)
	assert.Equal(t, Decrement{ProductID: "p1", Quantity: 3}, plan[0])
	assert.Equal(t, Decrement{ProductID: "p2", Quantity: 4}, plan[1])
}
