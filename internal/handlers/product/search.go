package product

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tafaya_back_end/internal/database"
	"tafaya_back_end/internal/models"
	"tafaya_back_end/internal/services"
)

// SearchProducts cherche dans le catalogue. Elasticsearch d'abord ; s'il est
// indisponible ou vide, on retombe sur un scan ScyllaDB filtré en mémoire
// (acceptable pour un catalogue artisanal de cette taille).
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 1️⃣ Recherche dans Elasticsearch (prioritaire)
	results, err := services.SearchProducts(query)
	if err == nil && len(results) > 0 {
		c.JSON(http.StatusOK, results)
		return
	}

	// 🔁 2️⃣ Fallback ScyllaDB
	session, err := database.GetSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()

	products := []models.Product{}
	var row productRow
	for iter.Scan(row.dest()...) {
		p := row.product()
		if containsIgnoreCase(p.Name, query) || containsIgnoreCase(p.Description, query) || containsTagsIgnoreCase(p.Tags, query) {
			products = append(products, p)
		}
		row = productRow{}
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func containsTagsIgnoreCase(tags []string, query string) bool {
	for _, tag := range tags {
		if containsIgnoreCase(tag, query) {
			return true
		}
	}
	return false
}
