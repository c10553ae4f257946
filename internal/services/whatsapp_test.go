package services

import (
	"strings"
	"testing"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tafaya_back_end/internal/models"
)

func commandeTest(t *testing.T) models.Order {
	t.Helper()
	id, err := gocql.ParseUUID("a5f0e3d2-1b4c-4d6e-8f90-123456abcdef")
	require.NoError(t, err)

	return models.Order{
		ID: id,
		Customer: models.OrderCustomer{
			Name:    "Amina El Idrissi",
			Phone:   "212600000000",
			Address: "12 rue des Potiers, Fès",
		},
		Items: []models.OrderItem{
			{Name: "Cendrier rond", Quantity: 2},
			{Name: "Cendrier carré", Quantity: 1, Variant: &models.OrderVariant{Name: "Couleur", Option: "Bleu"}},
		},
		Total:  260,
		Status: models.StatusPending,
	}
}

func TestBuildOrderMessage(t *testing.T) {
	msg := BuildOrderMessage(commandeTest(t))

	// Référence courte = 6 derniers caractères de l'id
	assert.Contains(t, msg, "Ref: #abcdef")
	assert.Contains(t, msg, "- 2x Cendrier rond \n")
	assert.Contains(t, msg, "- 1x Cendrier carré (Couleur: Bleu) \n")
	assert.Contains(t, msg, "Total: 260 MAD")
	assert.Contains(t, msg, "Amina El Idrissi")
	assert.Contains(t, msg, "12 rue des Potiers, Fès")
}

func TestOrderDeepLink(t *testing.T) {
	t.Setenv("SHOP_WHATSAPP_PHONE", "212684048574")

	link := OrderDeepLink(commandeTest(t))

	assert.True(t, strings.HasPrefix(link, "https://wa.me/212684048574?text="), link)
	// encodage style encodeURIComponent : espaces en %20, jamais en +
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "%20")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "260", formatAmount(260))
	assert.Equal(t, "99.5", formatAmount(99.5))
}
