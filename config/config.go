// Package config loads runtime settings from the environment.
package config

import (
	"os"
)

// Config holds the Neo4j connection settings and the token verification key.
type Config struct {
	Neo4jURI      string
	Neo4jUser     string
	Neo4jPassword string
	Neo4jDatabase string
	TokenSecret   string
}

// LoadConfig reads the configuration, falling back to local development values.
func LoadConfig() *Config {
	return &Config{
		Neo4jURI:      getEnv("NEO4J_URI", "neo4j://localhost:7687"),
		Neo4jUser:     getEnv("NEO4J_USER", "neo4j"),
		Neo4jPassword: getEnv("NEO4J_PASSWORD", "neo4j"),
		Neo4jDatabase: getEnv("NEO4J_DATABASE", "neo4j"),
		// dev fallback; replace in prod
		TokenSecret: getEnv("TOKEN_SECRET", "replace-this-with-a-strong-secret"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
