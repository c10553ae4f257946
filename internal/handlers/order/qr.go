package order

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	qrcode "github.com/skip2/go-qrcode"

	"tafaya_back_end/internal/database"
	"tafaya_back_end/internal/services"
)

// WhatsAppQR rend le lien de passation en QR code PNG, pour que les clients
// sur ordinateur puissent reprendre la conversation sur leur téléphone
func WhatsAppQR(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	session, err := database.GetSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	order, err := fetchOrder(session, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	png, err := qrcode.Encode(services.OrderDeepLink(order), qrcode.Medium, 256)
	if err != nil {
		log.Printf("❌ Erreur génération QR %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
