package product

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tafaya_back_end/internal/database"
)

// IncrementViews compte une visite de la fiche produit et retourne le nouveau
// total. Chaque appel compte : un rafraîchissement de page aussi, c'est assumé,
// le compteur est indicatif. L'incrément lui-même est atomique (colonne
// counter).
func IncrementViews(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var existing gocql.UUID
	if err := session.Query(`SELECT product_id FROM products WHERE product_id = ?`, id).Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	if err := session.Query(`UPDATE product_views SET views = views + 1 WHERE product_id = ?`, id).Exec(); err != nil {
		log.Printf("❌ Erreur incrément vues %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur compteur de vues"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"views": loadViews(session, id)})
}
