package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"tafaya_back_end/internal/config"
	"tafaya_back_end/internal/database"
	"tafaya_back_end/internal/routes"
)

func main() {
	config.Load()

	if os.Getenv("ADMIN_PASSWORD") == "" {
		log.Fatal("❌ ADMIN_PASSWORD manquant : impossible de protéger la console admin")
	}
	if os.Getenv("SHOP_WHATSAPP_PHONE") == "" {
		log.Fatal("❌ SHOP_WHATSAPP_PHONE manquant : impossible de construire les liens de commande")
	}

	database.ConnectDatabases()
	defer database.CloseScylla()

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Tafaya lancé sur le port", port)
	r.Run(":" + port)
}
