package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/ml-service/pkg/e"
	"github.com/DRSN-tech/ml-service/pkg/logger"
	"github.com/jimlawless/whereami"
)

// Источники каталога товаров.
const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Http       *HTTPConfig
	Catalog    *CatalogCfg
	Embeddings *EmbeddingsCfg
	Extractor  *ExtractorCfg
	Redis      *RedisCfg
	Minio      *MinIOCfg // nil, если MinIO не настроен
	Kafka      *KafkaCfg // nil, если события отключены
	Db         *PGDBCfg  // nil при файловом каталоге
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// CatalogCfg описывает источник каталога товаров.
type CatalogCfg struct {
	Source   string // file | postgres
	FilePath string // путь к products.json при файловом источнике
}

// EmbeddingsCfg — пути к персистентным файлам хранилища эмбеддингов.
type EmbeddingsCfg struct {
	VectorsPath string
	IDsPath     string
}

// ExtractorCfg — настройки клиента CNN-экстрактора.
type ExtractorCfg struct {
	Addr          string
	MaxConcurrent int
	MaxRetries    int
	Timeout       time.Duration
	ImageTimeout  time.Duration // таймаут скачивания одного изображения при сборке эмбеддингов
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	RecsTTL     time.Duration // TTL кэша рекомендаций и карточек товаров
}

type MinIOCfg struct {
	MinioEndpoint     string
	BucketName        string
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

type PGDBCfg struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalog, db, err := loadCatalogCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	extractor, err := loadExtractorCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:       http,
		Catalog:    catalog,
		Embeddings: loadEmbeddingsCfg(),
		Extractor:  extractor,
		Redis:      redis,
		Minio:      loadMinIOCfg(),
		Kafka:      kafka,
		Db:         db,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8000"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 30 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadCatalogCfg(log logger.Logger) (*CatalogCfg, *PGDBCfg, error) {
	const (
		defaultSource   = CatalogSourceFile
		defaultFilePath = "data/products.json"
	)

	source := getEnvOrDefault("CATALOG_SOURCE", defaultSource)

	switch source {
	case CatalogSourceFile:
		return &CatalogCfg{
			Source:   source,
			FilePath: getEnvOrDefault("CATALOG_FILE", defaultFilePath),
		}, nil, nil
	case CatalogSourcePostgres:
		db, err := loadPGDBCfg(log)
		if err != nil {
			return nil, nil, err
		}
		return &CatalogCfg{Source: source}, db, nil
	default:
		return nil, nil, e.Wrap(source, e.ErrUnknownCatalogSource)
	}
}

func loadEmbeddingsCfg() *EmbeddingsCfg {
	const (
		defaultVectorsPath = "data/image_embeddings.bin"
		defaultIDsPath     = "data/product_ids.json"
	)

	return &EmbeddingsCfg{
		VectorsPath: getEnvOrDefault("EMBEDDINGS_VECTORS_PATH", defaultVectorsPath),
		IDsPath:     getEnvOrDefault("EMBEDDINGS_IDS_PATH", defaultIDsPath),
	}
}

func loadExtractorCfg(log logger.Logger) (*ExtractorCfg, error) {
	const (
		defaultHost          = "extractor"
		defaultPort          = "9000"
		defaultMaxConcurrent = 8
		defaultMaxRetries    = 3
		defaultTimeout       = 30 * time.Second
		defaultImageTimeout  = 5 * time.Second
	)

	host := getEnvOrDefault("EXTRACTOR_HOST", defaultHost)
	port := getEnvOrDefault("EXTRACTOR_PORT", defaultPort)

	maxConcurrent, err := parseIntEnv("EXTRACTOR_MAX_CONCURRENT", defaultMaxConcurrent)
	if err != nil {
		return nil, e.Wrap("EXTRACTOR_MAX_CONCURRENT", err)
	}

	maxRetries, err := parseIntEnv("EXTRACTOR_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("EXTRACTOR_MAX_RETRIES", err)
	}

	timeout, err := parseDurationEnv("EXTRACTOR_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid EXTRACTOR_TIMEOUT")
		return nil, err
	}

	imageTimeout, err := parseDurationEnv("IMAGE_DOWNLOAD_TIMEOUT", defaultImageTimeout)
	if err != nil {
		log.Errorf(err, "invalid IMAGE_DOWNLOAD_TIMEOUT")
		return nil, err
	}

	return &ExtractorCfg{
		Addr:          "http://" + host + ":" + port,
		MaxConcurrent: maxConcurrent,
		MaxRetries:    maxRetries,
		Timeout:       timeout,
		ImageTimeout:  imageTimeout,
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultRecsTTL      = 3 * time.Minute
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	recsTTL, err := parseDurationEnv("RECS_TTL", defaultRecsTTL)
	if err != nil {
		log.Errorf(err, "invalid RECS_TTL")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		RecsTTL:     recsTTL,
	}, nil
}

// loadMinIOCfg возвращает nil, если MINIO_ENDPOINT не задан:
// тогда изображения при сборке эмбеддингов скачиваются только по внешним URL.
func loadMinIOCfg() *MinIOCfg {
	endpoint := getEnv("MINIO_ENDPOINT")
	if endpoint == "" {
		return nil
	}

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", "false"))
	if err != nil {
		useSSL = false
	}

	return &MinIOCfg{
		MinioEndpoint:     endpoint,
		BucketName:        getEnv("BUCKET_NAME"),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
	}
}

// loadKafkaCfg возвращает nil, если KAFKA_BROKERS не задан: события сборки отключены.
func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultTopic             = "ml.embeddings.events"
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}
	brokers := strings.Split(brokerStr, ",")

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost    = "localhost"
		defaultPort    = "5432"
		defaultSSLMode = "disable"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:     getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:     getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:     user,
		Password: password,
		DBName:   dbName,
		SSLMode:  getEnvOrDefault("SSL_MODE", defaultSSLMode),
	}, nil
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
