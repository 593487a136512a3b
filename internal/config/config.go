package config

import (
	"fmt"
	"os"
	"strconv"
)

// Store drivers selectable at startup.
const (
	DriverMemory = "memory"
	DriverMySQL  = "mysql"
	DriverMongo  = "mongo"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	StoreDriver string
	MySQLDSN    string
	MongoURI    string
	MongoDB     string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	CORSOrigin  string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		StoreDriver: getEnv("STORE_DRIVER", DriverMemory),
		MySQLDSN:    os.Getenv("MYSQL_DSN"),
		MongoURI:    os.Getenv("MONGO_URI"),
		MongoDB:     getEnv("MONGO_DB", "kivutrips"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "*"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// Validate checks that configuration required for startup is present.
// A missing signing secret or a missing DSN/URI for the selected store
// driver is fatal.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is not set")
	}
	switch c.StoreDriver {
	case DriverMemory:
	case DriverMySQL:
		if c.MySQLDSN == "" {
			return fmt.Errorf("STORE_DRIVER=mysql requires MYSQL_DSN")
		}
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("STORE_DRIVER=mongo requires MONGO_URI")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
