package database

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gocql/gocql"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
)

// --- Configuration ScyllaDB ---
type ScyllaConfig struct {
	Hosts       []string
	Keyspace    string
	Username    string
	Password    string
	SSLEnabled  bool
	CACertPath  string
	Timeout     time.Duration
	NumConns    int
	Consistency gocql.Consistency
}

// --- Variables Globales ---
var (
	Redis         *redis.Client
	RedisClient   *redis.Client // Alias pour compatibilité
	ElasticClient *elasticsearch.Client
	MinioClient   *minio.Client

	scyllaSession *gocql.Session
	scyllaConfig  ScyllaConfig
	scyllaMu      sync.Mutex
)

// --- Initialisation ---
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. Initialiser ScyllaDB (keyspace boutique)
	if err := InitScyllaDB(); err != nil {
		log.Fatalf("❌ Échec initialisation ScyllaDB: %v", err)
	}

	// 2. Initialiser Redis (cache catalogue + paniers invités + rate limiting)
	connectRedis(ctx)

	// 3. Initialiser Elasticsearch (recherche produits)
	connectElastic()

	// 4. Initialiser MinIO (images produits)
	connectMinIO(ctx)

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// SCYLLA DB
// =============================================

// InitScyllaDB initialise la session ScyllaDB de la boutique
func InitScyllaDB() error {
	scyllaConfig = loadScyllaConfig()
	if scyllaConfig.Keyspace == "" {
		return fmt.Errorf("SCYLLA_KEYSPACE non configuré")
	}

	_, err := GetSession()
	if err != nil {
		return fmt.Errorf("échec initialisation keyspace %s: %v", scyllaConfig.Keyspace, err)
	}

	// Note: Les tables doivent être créées via scripts/scylladb_init.cql
	return nil
}

// loadScyllaConfig charge la configuration depuis .env
func loadScyllaConfig() ScyllaConfig {
	return ScyllaConfig{
		Hosts:       strings.Split(os.Getenv("SCYLLA_HOSTS"), ","),
		Keyspace:    os.Getenv("SCYLLA_KEYSPACE"),
		Username:    os.Getenv("SCYLLA_ROLE"),
		Password:    os.Getenv("SCYLLA_PASSWORD"),
		SSLEnabled:  strings.ToLower(os.Getenv("SCYLLA_SSL_ENABLED")) == "true",
		CACertPath:  os.Getenv("SCYLLA_SSL_CA_PATH"),
		Timeout:     5 * time.Second,
		NumConns:    20,
		Consistency: gocql.Quorum,
	}
}

// createScyllaCluster crée la configuration de cluster
func createScyllaCluster(config ScyllaConfig) (*gocql.ClusterConfig, error) {
	cluster := gocql.NewCluster(config.Hosts...)
	cluster.Keyspace = config.Keyspace
	cluster.Consistency = config.Consistency
	cluster.Timeout = config.Timeout
	cluster.NumConns = config.NumConns

	cluster.MaxWaitSchemaAgreement = 30 * time.Second
	cluster.ReconnectInterval = 1 * time.Second
	cluster.Authenticator = gocql.PasswordAuthenticator{
		Username: config.Username,
		Password: config.Password,
	}

	if config.SSLEnabled && config.CACertPath != "" {
		caCert, err := os.ReadFile(config.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("impossible de lire le certificat CA: %v", err)
		}

		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("impossible de parser le certificat CA")
		}

		cluster.SslOpts = &gocql.SslOptions{
			Config: &tls.Config{RootCAs: caCertPool},
		}
	}

	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	return cluster, nil
}

// GetSession retourne la session ScyllaDB, en la recréant si elle est invalide
func GetSession() (*gocql.Session, error) {
	scyllaMu.Lock()
	defer scyllaMu.Unlock()

	if scyllaSession != nil {
		if err := scyllaSession.Query("SELECT now() FROM system.local").Exec(); err == nil {
			return scyllaSession, nil
		}
		scyllaSession.Close()
	}

	cluster, err := createScyllaCluster(scyllaConfig)
	if err != nil {
		return nil, fmt.Errorf("erreur configuration cluster: %v", err)
	}

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("erreur création session: %v", err)
	}

	scyllaSession = session
	log.Printf("✅ Session ScyllaDB ouverte sur keyspace '%s' (utilisateur: %s)",
		scyllaConfig.Keyspace, scyllaConfig.Username)

	return session, nil
}

// CloseScylla ferme la session ScyllaDB
func CloseScylla() {
	scyllaMu.Lock()
	defer scyllaMu.Unlock()

	if scyllaSession != nil {
		scyllaSession.Close()
		scyllaSession = nil
		log.Printf("🔌 Session ScyllaDB fermée pour keyspace '%s'", scyllaConfig.Keyspace)
	}
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_HOST"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	RedisClient = Redis // Alias pour compatibilité

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}

// =============================================
// ELASTICSEARCH
// =============================================
func connectElastic() {
	cfg := elasticsearch.Config{
		Addresses: []string{os.Getenv("ELASTIC_URL")},
		Username:  os.Getenv("ELASTIC_USER"),
		Password:  os.Getenv("ELASTIC_PASSWORD"),
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		log.Fatal("❌ Erreur création client Elasticsearch:", err)
	}

	res, err := client.Info()
	if err != nil {
		// La recherche retombe sur un scan ScyllaDB si Elastic est absent
		log.Println("⚠️ Elasticsearch injoignable, recherche en mode dégradé:", err)
		return
	}
	defer res.Body.Close()

	ElasticClient = client
	log.Println("✅ Connecté à Elasticsearch")
}

// =============================================
// MINIO
// =============================================
func connectMinIO(ctx context.Context) {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false, // ⚠️ à passer à true si tu as HTTPS
	})
	if err != nil {
		log.Println("⚠️ MinIO non configuré :", err)
		return
	}

	bucket := os.Getenv("MINIO_BUCKET")
	exists, err := client.BucketExists(ctx, bucket)
	if err == nil && !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			log.Println("⚠️ Impossible de créer le bucket MinIO:", err)
		}
	}

	MinioClient = client
	log.Println("✅ Connecté à MinIO :", endpoint)
}
