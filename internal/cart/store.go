package cart

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Clé fixe par invité, miroir de la clé localStorage "cart" du front
const keyPrefix = "cart:"

// Durée de vie d'un panier invité côté serveur
const cartTTL = 30 * 24 * time.Hour

// Store persiste les paniers invités dans Redis. Chaque mutation réécrit le
// panier complet sous sa clé ; une valeur absente ou corrompue se dégrade en
// panier vide, jamais en erreur.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Decode désérialise un panier. Tout contenu invalide donne un panier vide.
func Decode(data []byte) Cart {
	if len(data) == 0 {
		return Cart{}
	}
	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		log.Printf("⚠️ Panier corrompu ignoré: %v", err)
		return Cart{}
	}
	return c
}

func (s *Store) Load(ctx context.Context, guestID string) Cart {
	val, err := s.rdb.Get(ctx, keyPrefix+guestID).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("⚠️ Erreur lecture panier %s: %v", guestID, err)
		}
		return Cart{}
	}
	return Decode(val)
}

func (s *Store) Save(ctx context.Context, guestID string, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+guestID, data, cartTTL).Err()
}

func (s *Store) Clear(ctx context.Context, guestID string) error {
	return s.rdb.Del(ctx, keyPrefix+guestID).Err()
}
