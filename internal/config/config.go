package config

import (
	"crypto/rsa"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	Env           string
	DatabaseURL   string
	RedisAddress  string
	RedisPassword string
	CORSOrigins   []string
	TokenTTL      time.Duration

	JWTPrivateKey *rsa.PrivateKey
	JWTPublicKey  *rsa.PublicKey
}

// Load reads configuration from the environment (and an optional .env
// file) and parses the RSA signing keys. The database connection string
// is mandatory; everything else has a sensible default.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("REDIS_ADDRESS", "localhost:6379")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("PRIVATE_KEY_PATH", "/etc/certs/private.pem")
	v.SetDefault("PUBLIC_KEY_PATH", "/etc/certs/public.pem")

	for _, key := range []string{
		"PORT", "ENV", "DB_CONNECTION_STRING", "REDIS_ADDRESS", "REDIS_PASSWORD",
		"CORS_ORIGINS", "TOKEN_TTL", "PRIVATE_KEY_PATH", "PUBLIC_KEY_PATH",
	} {
		_ = v.BindEnv(key)
	}

	// The .env file is a development convenience, not a requirement.
	_ = v.ReadInConfig()

	dbURL := v.GetString("DB_CONNECTION_STRING")
	if dbURL == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is required")
	}

	tokenTTL, err := time.ParseDuration(v.GetString("TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	privateKey, err := loadPrivateKey(v.GetString("PRIVATE_KEY_PATH"))
	if err != nil {
		return nil, fmt.Errorf("load private key: %w", err)
	}
	publicKey, err := loadPublicKey(v.GetString("PUBLIC_KEY_PATH"))
	if err != nil {
		return nil, fmt.Errorf("load public key: %w", err)
	}

	return &Config{
		Port:          v.GetString("PORT"),
		Env:           v.GetString("ENV"),
		DatabaseURL:   dbURL,
		RedisAddress:  v.GetString("REDIS_ADDRESS"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		CORSOrigins:   splitOrigins(v.GetString("CORS_ORIGINS")),
		TokenTTL:      tokenTTL,
		JWTPrivateKey: privateKey,
		JWTPublicKey:  publicKey,
	}, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPrivateKeyFromPEM(keyData)
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	keyData, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return jwt.ParseRSAPublicKeyFromPEM(keyData)
}
