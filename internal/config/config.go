// Package config loads and holds the application configuration.
package config

import (
	"fmt"
	"strconv"

	"github.com/spf13/viper"
)

// Conf is the global configuration loaded at startup.
var Conf Config

// Config mirrors the structure of configs/config.yaml.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Search   SearchConfig   `mapstructure:"search"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Vision   VisionConfig   `mapstructure:"vision"`
	Source   SourceConfig   `mapstructure:"source"`
	Ingest   IngestConfig   `mapstructure:"ingest"`
	Database DatabaseConfig `mapstructure:"database"`
	MinIO    MinIOConfig    `mapstructure:"minio"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// SearchConfig holds the vector search engine connection settings.
type SearchConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	AdminKey string `mapstructure:"admin_key"`
}

// OpenAIConfig holds the text embedding endpoint settings.
// EmbeddingDimensions stays a string on purpose: the value comes from an
// environment-style setting and consumers parse it, failing fast when it is
// not numeric.
type OpenAIConfig struct {
	Endpoint            string `mapstructure:"endpoint"`
	APIKey              string `mapstructure:"api_key"`
	EmbeddingModel      string `mapstructure:"embedding_model"`
	EmbeddingDeployment string `mapstructure:"embedding_deployment"`
	EmbeddingDimensions string `mapstructure:"embedding_dimensions"`
}

// Dimensions parses the configured embedding dimension.
func (c OpenAIConfig) Dimensions() (int, error) {
	dims, err := strconv.Atoi(c.EmbeddingDimensions)
	if err != nil || dims <= 0 {
		return 0, fmt.Errorf("invalid embedding dimensions %q", c.EmbeddingDimensions)
	}
	return dims, nil
}

// VisionConfig holds the image vectorization endpoint settings.
type VisionConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Key      string `mapstructure:"key"`
}

// SourceConfig describes where golf ball records are loaded from.
// Kind selects the loader: "csv" (local file), "minio" (object storage)
// or "mysql" (staging table).
type SourceConfig struct {
	Kind       string `mapstructure:"kind"`
	CSVFile    string `mapstructure:"csv_file"`
	Bucket     string `mapstructure:"bucket"`
	ObjectName string `mapstructure:"object_name"`
}

// IngestConfig tunes the embedding pipeline.
type IngestConfig struct {
	Workers int `mapstructure:"workers"`
}

// DatabaseConfig groups the MySQL and Redis connections.
type DatabaseConfig struct {
	MySQL MySQLConfig `mapstructure:"mysql"`
	Redis RedisConfig `mapstructure:"redis"`
}

// MySQLConfig holds the MySQL settings.
type MySQLConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RedisConfig holds the Redis settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// MinIOConfig holds the object storage settings.
type MinIOConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"`
}

// KafkaConfig holds the job queue settings.
type KafkaConfig struct {
	Brokers string `mapstructure:"brokers"`
	Topic   string `mapstructure:"topic"`
}

// AdminConfig holds the shared key guarding destructive index operations.
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Init reads the YAML file at configPath into Conf.
func Init(configPath string) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("failed to read config file: %w", err))
	}

	if err := viper.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("failed to unmarshal config: %w", err))
	}

	if err := validate(Conf); err != nil {
		panic(err)
	}
}

// validate rejects a config missing any value the core cannot run without.
func validate(c Config) error {
	required := map[string]string{
		"search.endpoint":             c.Search.Endpoint,
		"search.admin_key":            c.Search.AdminKey,
		"openai.endpoint":             c.OpenAI.Endpoint,
		"openai.api_key":              c.OpenAI.APIKey,
		"openai.embedding_model":      c.OpenAI.EmbeddingModel,
		"openai.embedding_deployment": c.OpenAI.EmbeddingDeployment,
		"openai.embedding_dimensions": c.OpenAI.EmbeddingDimensions,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("configuration value %s is missing or empty", name)
		}
	}
	return nil
}
