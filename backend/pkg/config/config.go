package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// App
	Port string
	Env  string

	// Neo4j
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string

	// Chat service (external microservice, OpenAI-compatible API)
	ChatServiceURL string
	ChatModel      string
	ChatAPIKey     string

	// Tooling
	ReportsDir       string
	IconRegistryPath string

	// Deployment endpoints used by the smoke-test harness
	APIBaseURL string
	WebBaseURL string

	// CORS
	CORSOrigins []string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		Neo4jURI:         getEnv("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:        getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword:    getEnv("NEO4J_PASSWORD", "password"),
		Neo4jDatabase:    getEnv("NEO4J_DATABASE", "neo4j"),
		ChatServiceURL:   getEnv("CHAT_SERVICE_URL", "http://localhost:8100"),
		ChatModel:        getEnv("CHAT_MODEL", "graph-assistant"),
		ChatAPIKey:       getEnv("CHAT_API_KEY", ""),
		ReportsDir:       getEnv("REPORTS_DIR", "reports"),
		IconRegistryPath: getEnv("ICON_REGISTRY_PATH", "frontend/src/icons/registry.json"),
		APIBaseURL:       getEnv("API_BASE_URL", "http://localhost:8080"),
		WebBaseURL:       getEnv("WEB_BASE_URL", "http://localhost:5173"),
		CORSOrigins:      getEnvList("CORS_ORIGINS", []string{"http://localhost:5173"}),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set
func (c *Config) Validate() error {
	if c.Neo4jURI == "" {
		return fmt.Errorf("NEO4J_URI is required")
	}
	if c.Neo4jUser == "" {
		return fmt.Errorf("NEO4J_USER is required")
	}
	if c.Neo4jPassword == "" {
		return fmt.Errorf("NEO4J_PASSWORD is required")
	}
	// Chat credentials are optional: the chat smoke test validates them itself.
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
