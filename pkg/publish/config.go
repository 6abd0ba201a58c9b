// Package publish pushes geocoded detections onto a kafka topic, so
// downstream consumers can build maps without scraping coords.json
// files out of output dirs.
package publish

import(
	"fmt"
	"os"
)

// Config comes from the environment (a .env file works too, the
// commands load one when present). Defaults suit a local broker.
type Config struct {
	BootstrapServers string
	Topic            string
	Acks             string
	CompressionType  string
	LingerMS         int
}

func NewConfig() Config {
	return Config{
		BootstrapServers: getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092"),
		Topic:            getEnv("KAFKA_TOPIC", "geocoded-detections"),
		Acks:             getEnv("KAFKA_ACKS", "all"),
		CompressionType:  getEnv("KAFKA_COMPRESSION_TYPE", "snappy"),
		LingerMS:         getEnvInt("KAFKA_LINGER_MS", 10),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intValue int
		if _, err := fmt.Sscanf(value, "%d", &intValue); err == nil {
			return intValue
		}
	}
	return defaultValue
}
