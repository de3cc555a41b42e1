package config

import (
	"errors"
	"os"
)

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Config struct {
	// PrivateAPIURL is the base URL of the instagrapi-style REST bridge
	// that performs session login and media publishing.
	PrivateAPIURL string
	GraphAPIURL   string
	OembedAPIURL  string
	PostgresURI   string
	RedisURI      string
	StorageDir    string
	R2            R2
	SecretKey     string
	CookieName    string
	OperatorUser  string
	OperatorPass  string
}

func LoadConfig() *Config {
	return &Config{
		PrivateAPIURL: getEnv("IG_PRIVATE_API_URL", ""),
		GraphAPIURL:   getEnv("GRAPH_API_URL", "https://graph.facebook.com/v12.0"),
		OembedAPIURL:  getEnv("OEMBED_API_URL", "https://api.instagram.com/oembed"),
		PostgresURI:   getEnv("POSTGRES_URI", ""),
		RedisURI:      getEnv("REDIS_URI", ""),
		StorageDir:    getEnv("STORAGE_DIR", "storage"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		SecretKey:    getEnv("SECRET_KEY", ""),
		CookieName:   getEnv("COOKIE_NAME", "repostflow_session"),
		OperatorUser: getEnv("OPERATOR_USERNAME", "admin"),
		OperatorPass: getEnv("OPERATOR_PASSWORD", ""),
	}
}

// Validate reports the first missing required value. The private API base
// URL must be known before any traffic is served, not discovered per request.
func (c *Config) Validate() error {
	if c.PrivateAPIURL == "" {
		return errors.New("IG_PRIVATE_API_URL is required")
	}
	if c.PostgresURI == "" {
		return errors.New("POSTGRES_URI is required")
	}
	if c.RedisURI == "" {
		return errors.New("REDIS_URI is required")
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.OperatorPass == "" {
		return errors.New("OPERATOR_PASSWORD is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
