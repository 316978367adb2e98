package config

import (
	"encoding/json"
	"os"
	"strconv"
)

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

// getEnvRaw returns the raw environment variable value, or "" if unset.
func getEnvRaw(key string) string {
	return os.Getenv(key)
}

// getEnvAsInt gets an environment variable as an integer or returns a
// default value.
func getEnvAsInt(key string, defaultVal int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultVal
	}
	return value
}

// jsonUnmarshal is a thin wrapper so config.go doesn't need its own
// "encoding/json" import alongside internal/rules' decoder.
func jsonUnmarshal(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}
