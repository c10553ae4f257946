package services

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"tafaya_back_end/internal/models"
)

// Textes du message de commande remis au client sur WhatsApp
const (
	whatsappGreeting = "Bonjour! Je voudrais passer commande pour vos cendriers Tafaya faits main."
	orderSummary     = "Récapitulatif de la commande"
)

// BuildOrderMessage construit le message de passation : salutation, référence
// courte, lignes avec annotation de variante, total en MAD et coordonnées de
// livraison.
func BuildOrderMessage(o models.Order) string {
	var b strings.Builder

	b.WriteString(whatsappGreeting + " \n")
	b.WriteString(fmt.Sprintf("Ref: #%s \n\n", o.ShortRef()))
	b.WriteString("* " + orderSummary + ":*\n")

	for _, item := range o.Items {
		variantText := ""
		if item.Variant != nil {
			variantText = fmt.Sprintf(" (%s: %s)", item.Variant.Name, item.Variant.Option)
		}
		b.WriteString(fmt.Sprintf("- %dx %s%s \n", item.Quantity, item.Name, variantText))
	}

	b.WriteString(fmt.Sprintf("\n * Total: %s MAD *\n\n", formatAmount(o.Total)))
	b.WriteString(fmt.Sprintf("* Info:*\n%s \n%s ", o.Customer.Name, o.Customer.Address))

	return b.String()
}

// OrderDeepLink retourne l'URL wa.me pré-remplie vers le numéro de la boutique
func OrderDeepLink(o models.Order) string {
	return DeepLink(os.Getenv("SHOP_WHATSAPP_PHONE"), BuildOrderMessage(o))
}

// DeepLink construit une URL wa.me ouvrant WhatsApp avec un message pré-rempli
func DeepLink(phone, message string) string {
	escaped := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, escaped)
}

// formatAmount affiche un montant sans zéros inutiles (150 plutôt que 150.00)
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
