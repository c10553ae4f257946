package services

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"tafaya_back_end/internal/models"
)

// NotifyNewOrder prévient la boutique par e-mail qu'une commande vient d'être
// passée. Meilleur effort : si le SMTP n'est pas configuré ou échoue, la
// commande est déjà enregistrée et on se contente de logger.
func NotifyNewOrder(order models.Order) {
	to := os.Getenv("SHOP_NOTIFY_EMAIL")
	host := os.Getenv("SMTP_HOST")
	if to == "" || host == "" {
		return
	}

	msg := mail.NewMsg()
	if err := msg.From("noreply@tafaya-shop.com"); err != nil {
		log.Println("⚠️ Notification commande: expéditeur invalide:", err)
		return
	}
	if err := msg.To(to); err != nil {
		log.Println("⚠️ Notification commande: destinataire invalide:", err)
		return
	}
	msg.Subject(fmt.Sprintf("Nouvelle commande #%s — %s MAD", order.ShortRef(), formatAmount(order.Total)))
	msg.SetBodyString(mail.TypeTextHTML, generateOrderHTML(order))

	client, err := mail.NewClient(host,
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		log.Println("⚠️ Notification commande: client SMTP:", err)
		return
	}

	if err := client.DialAndSend(msg); err != nil {
		log.Println("⚠️ Notification commande: envoi échoué:", err)
		return
	}
	log.Println("📤 Notification de commande envoyée à", to)
}

// generateOrderHTML génère le HTML du récapitulatif envoyé à la boutique
func generateOrderHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		variant := ""
		if item.Variant != nil {
			variant = fmt.Sprintf(" (%s: %s)", item.Variant.Name, item.Variant.Option)
		}
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s%s</td>
				<td>%d</td>
				<td>%.2f MAD</td>
				<td>%.2f MAD</td>
			</tr>`, item.Name, variant, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Nouvelle commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Nouvelle commande #%s</h2>
		<p>%s — %s</p>
		<p>%s</p>

		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>

		<p style="font-size: 18px;"><strong>Total: %s MAD</strong></p>
	</div>
</body>
</html>`, order.ShortRef(), order.Customer.Name, order.Customer.Phone, order.Customer.Address, itemsHTML, formatAmount(order.Total))
}
