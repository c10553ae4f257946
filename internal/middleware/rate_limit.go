package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tafaya_back_end/internal/database"
)

const (
	// Limites de connexion admin (compte unique partagé, donc clé par IP)
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
	loginAttemptTTL  = 15 * time.Minute
)

// LoginRateLimit bloque les IP en cooldown après trop de tentatives échouées
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		cooldownKey := "login_cooldown:" + c.ClientIP()

		if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
			ttl := database.Redis.TTL(ctx, cooldownKey).Val()
			minutes := int(ttl.Minutes())
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       fmt.Sprintf("Trop de tentatives échouées. Réessayez dans %d minutes", minutes),
				"retry_after": int(ttl.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// RecordLoginFailure incrémente le compteur d'échecs d'une IP et déclenche le
// cooldown une fois la limite atteinte
func RecordLoginFailure(ctx context.Context, ip string) {
	key := "login_attempts:" + ip

	attempts, err := database.Redis.Incr(ctx, key).Result()
	if err != nil {
		return
	}
	database.Redis.Expire(ctx, key, loginAttemptTTL)

	if attempts >= LoginMaxAttempts {
		database.Redis.Set(ctx, "login_cooldown:"+ip, "1", LoginCooldown)
		database.Redis.Del(ctx, key)
	}
}

// ResetLoginAttempts efface les échecs après une connexion réussie
func ResetLoginAttempts(ctx context.Context, ip string) {
	database.Redis.Del(ctx, "login_attempts:"+ip)
}
