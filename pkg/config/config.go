package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Assembly AssemblyAIConfig
	Groq     GroqConfig
	Upload   UploadConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meeting_summarizer"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration. An empty host disables the
// record cache entirely.
type RedisConfig struct {
	Host     string        `envconfig:"REDIS_HOST" default:""`
	Port     string        `envconfig:"REDIS_PORT" default:"6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_RECORD_TTL" default:"1h"`
}

// StorageConfig holds object storage configuration for raw audio
// archival. An empty endpoint disables archival.
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:""`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meeting-audio"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL" default:""`
}

// AssemblyAIConfig holds transcription collaborator configuration
type AssemblyAIConfig struct {
	APIKey     string        `envconfig:"ASSEMBLYAI_API_KEY" default:""`
	BaseURL    string        `envconfig:"ASSEMBLYAI_API_URL" default:""`
	Timeout    time.Duration `envconfig:"ASSEMBLYAI_TIMEOUT" default:"5m"`
	MaxRetries uint64        `envconfig:"ASSEMBLYAI_MAX_RETRIES" default:"3"`
}

// GroqConfig holds summarization collaborator configuration
type GroqConfig struct {
	APIKey     string        `envconfig:"GROQ_API_KEY" default:""`
	BaseURL    string        `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	Model      string        `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
	Timeout    time.Duration `envconfig:"GROQ_TIMEOUT" default:"60s"`
	MaxRetries uint64        `envconfig:"GROQ_MAX_RETRIES" default:"3"`
}

// UploadConfig holds upload validation configuration
type UploadConfig struct {
	AcceptedTypes []string `envconfig:"UPLOAD_ACCEPTED_TYPES" default:"audio/mpeg,audio/mp3,audio/wav,audio/x-wav,audio/mp4,audio/m4a,audio/x-m4a,audio/ogg,audio/webm,audio/flac"`
	MaxBytes      int64    `envconfig:"UPLOAD_MAX_BYTES" default:"209715200"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Upload.AcceptedTypes) == 0 {
		return fmt.Errorf("UPLOAD_ACCEPTED_TYPES must list at least one audio MIME type")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// AcceptsContentType reports whether the declared upload MIME type is
// in the configured accepted set. Parameters after ";" are ignored.
func (c *Config) AcceptsContentType(contentType string) bool {
	mime := strings.TrimSpace(strings.ToLower(contentType))
	if i := strings.Index(mime, ";"); i != -1 {
		mime = strings.TrimSpace(mime[:i])
	}
	for _, accepted := range c.Upload.AcceptedTypes {
		if mime == strings.TrimSpace(strings.ToLower(accepted)) {
			return true
		}
	}
	return false
}
