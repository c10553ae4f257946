package order

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"tafaya_back_end/internal/cart"
	"tafaya_back_end/internal/database"
	"tafaya_back_end/internal/models"
	"tafaya_back_end/internal/services"
)

const orderColumns = `order_id, customer_name, customer_phone, customer_address, items, total, status, created_at, updated_at`

// catalogProduct charge les champs du catalogue utiles au checkout
func catalogProduct(session *gocql.Session, productID string) (models.Product, bool) {
	id, err := gocql.ParseUUID(productID)
	if err != nil {
		return models.Product{}, false
	}

	var p models.Product
	var stock int
	var variantsJSON string
	err = session.Query(`SELECT product_id, name, price, stock, variants FROM products WHERE product_id = ?`, id).
		Scan(&p.ID, &p.Name, &p.Price, &stock, &variantsJSON)
	if err != nil {
		return models.Product{}, false
	}

	p.Stock = models.StockFromDB(stock)
	if variantsJSON != "" {
		json.Unmarshal([]byte(variantsJSON), &p.Variants)
	}
	return p, true
}

// CreateOrder enregistre une commande et lance la passation WhatsApp.
// Séquence : validation → contrôle de disponibilité → écriture de la commande
// → décréments de stock. Passé l'écriture de la commande, plus aucun échec
// n'est remonté au client : la vente est capturée, le stock se rattrape via
// pending_stock_adjustments.
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande. Veuillez réessayer."})
		return
	}

	lookup := func(productID string) (models.Product, bool) {
		return catalogProduct(session, productID)
	}

	// Contrôle de disponibilité avant toute écriture : un stock fini
	// insuffisant refuse la commande entière
	plan := PlanDecrements(req.Items)
	for _, d := range plan {
		p, ok := lookup(d.ProductID)
		if !ok {
			// Référence inconnue : traitée au moment du décrément (loggée,
			// jamais bloquante)
			continue
		}
		if p.Stock.Limited && p.Stock.Count < d.Quantity {
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Stock insuffisant",
				"productId": d.ProductID,
				"available": p.Stock.Count,
				"requested": d.Quantity,
			})
			return
		}
	}

	now := time.Now()
	order := models.Order{
		ID:        gocql.TimeUUID(),
		Customer:  req.Customer,
		Items:     req.Items,
		Total:     ComputeTotal(req.Items, lookup),
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	itemsJSON, _ := json.Marshal(order.Items)

	query := `INSERT INTO orders (` + orderColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if err := session.Query(query, order.ID, order.Customer.Name, order.Customer.Phone,
		order.Customer.Address, string(itemsJSON), order.Total, order.Status,
		order.CreatedAt, order.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Erreur écriture commande: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande. Veuillez réessayer."})
		return
	}

	// La commande existe : les décréments sont appliqués au mieux
	for _, d := range plan {
		applyDecrement(session, order.ID, d)
	}

	// Vide le panier invité si le front nous a donné sa clé
	if req.GuestID != "" {
		if err := cart.NewStore(database.Redis).Clear(context.Background(), req.GuestID); err != nil {
			log.Printf("⚠️ Panier invité %s non vidé: %v", req.GuestID, err)
		}
	}

	log.Printf("🛒 Commande %s enregistrée (%.2f MAD, %d articles)", order.ShortRef(), order.Total, len(order.Items))

	// 📤 Notification boutique, meilleur effort
	go services.NotifyNewOrder(order)

	c.JSON(http.StatusCreated, orderResponse{
		Order:       order,
		WhatsappURL: services.OrderDeepLink(order),
	})
}

type orderResponse struct {
	models.Order
	WhatsappURL string `json:"whatsappUrl"`
}

// applyDecrement décrémente le stock d'un produit par compare-and-set (LWT),
// plancher zéro. Tout échec est tracé dans pending_stock_adjustments pour
// reprise hors ligne, jamais remonté au client.
func applyDecrement(session *gocql.Session, orderID gocql.UUID, d Decrement) {
	id, err := gocql.ParseUUID(d.ProductID)
	if err != nil {
		recordAdjustment(session, orderID, d, "référence produit invalide")
		return
	}

	var stock int
	if err := session.Query(`SELECT stock FROM products WHERE product_id = ?`, id).Scan(&stock); err != nil {
		recordAdjustment(session, orderID, d, "produit introuvable")
		return
	}

	current := models.StockFromDB(stock)
	if !current.Limited {
		// Fabriqué à la commande : rien à décompter
		return
	}

	// Boucle CAS : on ne décrémente que si la valeur n'a pas bougé, et jamais
	// sous zéro
	for attempt := 0; attempt < 5; attempt++ {
		newCount := current.Count - d.Quantity
		if newCount < 0 {
			recordAdjustment(session, orderID, d, "stock insuffisant au décrément")
			return
		}

		var prev int
		applied, err := session.Query(
			`UPDATE products SET stock = ? WHERE product_id = ? IF stock = ?`,
			newCount, id, current.Count,
		).ScanCAS(&prev)
		if err != nil {
			recordAdjustment(session, orderID, d, "erreur stockage: "+err.Error())
			return
		}
		if applied {
			return
		}

		// Un autre checkout est passé entre-temps
		current = models.StockFromDB(prev)
		if !current.Limited {
			return
		}
	}

	recordAdjustment(session, orderID, d, "contention CAS persistante")
}

func recordAdjustment(session *gocql.Session, orderID gocql.UUID, d Decrement, reason string) {
	log.Printf("⚠️ Décrément de stock non appliqué (commande %s, produit %s, qté %d): %s",
		orderID, d.ProductID, d.Quantity, reason)

	err := session.Query(`
		INSERT INTO pending_stock_adjustments (id, order_id, product_id, quantity, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, gocql.TimeUUID(), orderID, d.ProductID, d.Quantity, reason, time.Now()).Exec()
	if err != nil {
		log.Printf("❌ Ajustement de stock non tracé: %v", err)
	}
}

// fetchOrder relit une commande complète
func fetchOrder(session *gocql.Session, id gocql.UUID) (models.Order, error) {
	var o models.Order
	var itemsJSON string

	err := session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, id).
		Scan(&o.ID, &o.Customer.Name, &o.Customer.Phone, &o.Customer.Address,
			&itemsJSON, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return o, err
	}

	if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
		log.Printf("⚠️ Articles illisibles pour la commande %s: %v", id, err)
	}
	return o, nil
}

// GetOrders liste les commandes pour la console admin, plus récentes d'abord
func GetOrders(c *gin.Context) {
	session, err := database.GetSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT ` + orderColumns + ` FROM orders`).Iter()

	orders := []models.Order{}
	for {
		var o models.Order
		var itemsJSON string
		if !iter.Scan(&o.ID, &o.Customer.Name, &o.Customer.Phone, &o.Customer.Address,
			&itemsJSON, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt) {
			break
		}
		if err := json.Unmarshal([]byte(itemsJSON), &o.Items); err != nil {
			log.Printf("⚠️ Articles illisibles pour la commande %s: %v", o.ID, err)
		}
		orders = append(orders, o)
	}

	if err := iter.Close(); err != nil {
		log.Printf("❌ Erreur lecture commandes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	c.JSON(http.StatusOK, orders)
}

// UpdateOrderStatus change le statut d'une commande (admin). La valeur doit
// être un statut connu mais aucune transition n'est interdite.
func UpdateOrderStatus(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}

	if !models.IsValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Statut inconnu: " + req.Status})
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

	now := time.Now()
	if err := session.Query(`UPDATE orders SET status = ?, updated_at = ? WHERE order_id = ?`,
		req.Status, now, id).Exec(); err != nil {
		log.Printf("❌ Erreur mise à jour statut %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour statut"})
		return
	}

	order.Status = req.Status
	order.UpdatedAt = now

	c.JSON(http.StatusOK, order)
}
