package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tafaya_back_end/internal/database"
	"tafaya_back_end/internal/models"
	"tafaya_back_end/internal/services"
)

const cacheKeyAll = "products:all"

const productColumns = `product_id, name, description, price, image, image_urls, category, tags, stock, variants, created_at, updated_at`

// productRow tamponne une ligne de la table products avant conversion
// (stock sentinelle -1 = illimité, variantes stockées en JSON)
type productRow struct {
	p            models.Product
	stock        int
	variantsJSON string
	updatedAt    time.Time
}

func (r *productRow) dest() []interface{} {
	return []interface{}{&r.p.ID, &r.p.Name, &r.p.Description, &r.p.Price, &r.p.Image,
		&r.p.Images, &r.p.Category, &r.p.Tags, &r.stock, &r.variantsJSON, &r.p.CreatedAt, &r.updatedAt}
}

func (r *productRow) product() models.Product {
	p := r.p
	p.Stock = models.StockFromDB(r.stock)
	if r.variantsJSON != "" {
		if err := json.Unmarshal([]byte(r.variantsJSON), &p.Variants); err != nil {
			log.Printf("⚠️ Variantes illisibles pour %s: %v", p.ID, err)
		}
	}
	if !r.updatedAt.IsZero() {
		updatedAt := r.updatedAt
		p.UpdatedAt = &updatedAt
	}
	return p
}

// loadProduct récupère un produit par id, vues comprises
func loadProduct(session *gocql.Session, id gocql.UUID) (models.Product, error) {
	var row productRow
	q := session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id)
	if err := q.Scan(row.dest()...); err != nil {
		return models.Product{}, err
	}
	p := row.product()
	p.Views = loadViews(session, id)
	return p, nil
}

func loadViews(session *gocql.Session, id gocql.UUID) int64 {
	var views int64
	if err := session.Query(`SELECT views FROM product_views WHERE product_id = ?`, id).Scan(&views); err != nil {
		// Pas encore de compteur : aucune visite
		return 0
	}
	return views
}

func invalidateCache(ctx context.Context) {
	database.RedisClient.Del(ctx, cacheKeyAll)
}

// CreateProduct crée un produit du catalogue (admin)
func CreateProduct(c *gin.Context) {
	var p models.Product

	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les champs 'name' et 'description' sont obligatoires"})
		return
	}

	if p.Category == "" {
		p.Category = models.DefaultCategory
	}

	session, err := database.GetSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p.ID = gocql.TimeUUID()
	p.CreatedAt = time.Now()
	p.UpdatedAt = nil
	p.Views = 0

	variantsJSON, _ := json.Marshal(p.Variants)

	query := `INSERT INTO products (` + productColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := session.Query(query, p.ID, p.Name, p.Description, p.Price, p.Image, p.Images,
		p.Category, p.Tags, p.Stock.DB(), string(variantsJSON), p.CreatedAt, time.Time{}).Exec(); err != nil {
		log.Printf("❌ Erreur création produit: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	invalidateCache(context.Background())

	// 🔄 Indexation Elasticsearch
	go services.IndexProduct(p)

	c.JSON(http.StatusCreated, p)
}

// GetAllProducts liste le catalogue, du plus récent au plus ancien
func GetAllProducts(c *gin.Context) {
	ctx := context.Background()

	// ✅ Vérifie le cache Redis
	if val, err := database.RedisClient.Get(ctx, cacheKeyAll).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	session, err := database.GetSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + productColumns + ` FROM products`).Iter()

	var products []models.Product
	var row productRow
	for iter.Scan(row.dest()...) {
		products = append(products, row.product())
		row = productRow{} // Reset pour la prochaine itération
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	// Compteurs de vues en une passe
	views := make(map[gocql.UUID]int64)
	viewsIter := session.Query(`SELECT product_id, views FROM product_views`).Iter()
	var vid gocql.UUID
	var v int64
	for viewsIter.Scan(&vid, &v) {
		views[vid] = v
	}
	viewsIter.Close()

	for i := range products {
		products[i].Views = views[products[i].ID]
	}

	// Du plus récent au plus ancien
	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})

	if products == nil {
		products = []models.Product{}
	}

	// ✅ Met en cache
	if data, err := json.Marshal(products); err == nil {
		database.RedisClient.Set(ctx, cacheKeyAll, data, time.Hour)
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct récupère un produit ; introuvable et erreur serveur sont distincts
func GetProduct(c *gin.Context) {
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

	p, err := loadProduct(session, id)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		log.Printf("❌ Erreur lecture produit %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// UpdateProduct applique une mise à jour partielle (admin)
func UpdateProduct(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	// Stock en RawMessage pour distinguer "absent" (inchangé) de
	// null/"" (repasser en illimité)
	var patch struct {
		Name        *string           `json:"name"`
		Description *string           `json:"description"`
		Price       *float64          `json:"price"`
		Image       *string           `json:"image"`
		Images      *[]string         `json:"images"`
		Category    *string           `json:"category"`
		Tags        *[]string         `json:"tags"`
		Stock       json.RawMessage   `json:"stock"`
		Variants    *[]models.Variant `json:"variants"`
	}

	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p, err := loadProduct(session, id)
	if err == gocql.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produit"})
		return
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	if patch.Variants != nil {
		p.Variants = *patch.Variants
	}
	if len(patch.Stock) > 0 {
		var s models.Stock
		if err := json.Unmarshal(patch.Stock, &s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock invalide"})
			return
		}
		p.Stock = s
	}

	now := time.Now()
	p.UpdatedAt = &now

	variantsJSON, _ := json.Marshal(p.Variants)

	query := `UPDATE products SET name = ?, description = ?, price = ?, image = ?, image_urls = ?,
	          category = ?, tags = ?, stock = ?, variants = ?, updated_at = ? WHERE product_id = ?`
	if err := session.Query(query, p.Name, p.Description, p.Price, p.Image, p.Images,
		p.Category, p.Tags, p.Stock.DB(), string(variantsJSON), now, id).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour produit %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	invalidateCache(context.Background())

	// 🔄 Réindexation Elasticsearch
	go services.IndexProduct(p)

	c.JSON(http.StatusOK, p)
}

// DeleteProduct supprime définitivement un produit (admin)
func DeleteProduct(c *gin.Context) {
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

	if err := session.Query(`DELETE FROM products WHERE product_id = ?`, id).Exec(); err != nil {
		log.Printf("❌ Erreur suppression produit %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	// Compteur de vues et index de recherche suivent le produit
	if err := session.Query(`DELETE FROM product_views WHERE product_id = ?`, id).Exec(); err != nil {
		log.Printf("⚠️ Erreur suppression compteur de vues %s: %v", id, err)
	}

	invalidateCache(context.Background())
	go services.RemoveProduct(id.String())

	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé avec succès"})
}
