package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// RelayConfig is the minimal configuration the outbox relay binary needs.
type RelayConfig struct {
	DatabaseURL    string
	RabbitMQURL    string
	ClaimQueueName string
	Env            string
	HealthPort     string
}

func LoadRelayConfig() (*RelayConfig, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("CLAIM_QUEUE_NAME", "claim-decisions")
	v.SetDefault("ENV", "development")
	v.SetDefault("RELAY_HEALTH_PORT", "8081")

	for _, key := range []string{
		"DB_CONNECTION_STRING", "RABBITMQ_URL", "CLAIM_QUEUE_NAME", "ENV", "RELAY_HEALTH_PORT",
	} {
		_ = v.BindEnv(key)
	}
	_ = v.ReadInConfig()

	dbURL := v.GetString("DB_CONNECTION_STRING")
	if dbURL == "" {
		return nil, fmt.Errorf("DB_CONNECTION_STRING is required")
	}
	rabbitURL := v.GetString("RABBITMQ_URL")
	if rabbitURL == "" {
		return nil, fmt.Errorf("RABBITMQ_URL is required")
	}

	return &RelayConfig{
		DatabaseURL:    dbURL,
		RabbitMQURL:    rabbitURL,
		ClaimQueueName: v.GetString("CLAIM_QUEUE_NAME"),
		Env:            v.GetString("ENV"),
		HealthPort:     v.GetString("RELAY_HEALTH_PORT"),
	}, nil
}
