package product

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tafaya_back_end/internal/database"
	"tafaya_back_end/internal/models"
)

// CreateReview ajoute un avis visiteur sur un produit. Pas de compte, pas de
// modération : un nom, une note et un commentaire suffisent. La note n'est pas
// bornée côté serveur.
func CreateReview(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var req struct {
		UserName string `json:"userName" binding:"required"`
		Rating   int    `json:"rating" binding:"required"`
		Comment  string `json:"comment" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides", "details": err.Error()})
		return
	}

	session, err := database.GetSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Vérifier que le produit existe
	var existing gocql.UUID
	if err := session.Query(`SELECT product_id FROM products WHERE product_id = ?`, productID).Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	review := models.Review{
		ID:        gocql.TimeUUID(),
		ProductID: productID,
		UserName:  req.UserName,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	err = session.Query(`
		INSERT INTO reviews_by_product (product_id, review_id, user_name, rating, comment, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, review.ProductID, review.ID, review.UserName, review.Rating, review.Comment, review.CreatedAt).Exec()

	if err != nil {
		log.Printf("❌ Erreur création avis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création avis"})
		return
	}

	log.Printf("⭐ Avis créé: %s pour produit %s (note: %d/5)", review.ID, productID, review.Rating)

	c.JSON(http.StatusCreated, review)
}

// GetProductReviews liste les avis d'un produit, du plus récent au plus ancien
// (ordre de clustering de la table)
func GetProductReviews(c *gin.Context) {
	productID, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`
		SELECT review_id, user_name, rating, comment, created_at
		FROM reviews_by_product WHERE product_id = ?
	`, productID).Iter()

	reviews := []models.Review{}
	var review models.Review
	for iter.Scan(&review.ID, &review.UserName, &review.Rating, &review.Comment, &review.CreatedAt) {
		review.ProductID = productID
		reviews = append(reviews, review)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture avis: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture avis"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}
