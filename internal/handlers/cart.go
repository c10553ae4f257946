package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tafaya_back_end/internal/cart"
	"tafaya_back_end/internal/database"
	"tafaya_back_end/internal/models"
)

// Le panier reste la propriété du navigateur (localStorage) ; ces endpoints en
// sont le jumeau côté serveur pour les clients qui veulent le retrouver d'un
// appareil à l'autre. Clé : en-tête X-Guest-ID.

func guestID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-Guest-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "En-tête 'X-Guest-ID' manquant"})
		return "", false
	}
	return id, true
}

func cartStore() *cart.Store {
	return cart.NewStore(database.Redis)
}

func cartJSON(c *gin.Context, basket cart.Cart, message string) {
	if basket.Items == nil {
		basket.Items = []cart.Item{}
	}
	resp := gin.H{
		"items": basket.Items,
		"total": basket.Total(),
		"count": basket.Count(),
	}
	if message != "" {
		resp["message"] = message
	}
	c.JSON(http.StatusOK, resp)
}

// GetCart retourne le panier invité (vide si inconnu ou corrompu)
func GetCart(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}
	cartJSON(c, cartStore().Load(c.Request.Context(), id), "")
}

// AddToCart ajoute un produit du catalogue au panier invité. Même produit et
// même axe de variante : la ligne existante est simplement incrémentée.
func AddToCart(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}

	var req struct {
		ProductID string `json:"productId" binding:"required"`
		Variant   *struct {
			Name   string `json:"name"`
			Option string `json:"option"`
		} `json:"variant"`
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	productID, err := gocql.ParseUUID(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var p models.Product
	var stock int
	var variantsJSON string
	err = session.Query(`SELECT product_id, name, price, image, variants, stock FROM products WHERE product_id = ?`, productID).
		Scan(&p.ID, &p.Name, &p.Price, &p.Image, &variantsJSON, &stock)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if variantsJSON != "" {
		json.Unmarshal([]byte(variantsJSON), &p.Variants)
	}

	var selected *cart.SelectedVariant
	if req.Variant != nil {
		selected = &cart.SelectedVariant{
			Name:          req.Variant.Name,
			Option:        req.Variant.Option,
			PriceModifier: p.VariantModifier(req.Variant.Name, req.Variant.Option),
		}
	}

	store := cartStore()
	basket := store.Load(c.Request.Context(), id)
	basket.Add(p, selected, req.Quantity)

	if err := store.Save(c.Request.Context(), id, basket); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	cartJSON(c, basket, "Ajouté au panier: "+p.Name)
}

// UpdateCartItem remplace la quantité d'une ligne. Une quantité < 1 est
// ignorée, la ligne reste telle quelle.
func UpdateCartItem(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	store := cartStore()
	basket := store.Load(c.Request.Context(), id)

	if req.Quantity >= 1 {
		if !basket.SetQuantity(c.Param("lineId"), req.Quantity) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ligne introuvable dans le panier"})
			return
		}
		if err := store.Save(c.Request.Context(), id, basket); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
			return
		}
	}

	cartJSON(c, basket, "")
}

// RemoveCartItem supprime une ligne ; no-op si elle n'existe pas
func RemoveCartItem(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}

	store := cartStore()
	basket := store.Load(c.Request.Context(), id)

	message := "Ligne déjà absente du panier"
	if basket.Remove(c.Param("lineId")) {
		if err := store.Save(c.Request.Context(), id, basket); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
			return
		}
		message = "Retiré du panier"
	}

	cartJSON(c, basket, message)
}

// ClearCart vide le panier invité sans condition
func ClearCart(c *gin.Context) {
	id, ok := guestID(c)
	if !ok {
		return
	}

	if err := cartStore().Clear(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression panier"})
		return
	}

	cartJSON(c, cart.Cart{}, "Panier vidé")
}
