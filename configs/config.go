package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      string
	DBDriver  string
	DBSource  string
	JWTSecret string
	JWTTTL    time.Duration
	Timezone  string

	LogLevel       string
	LogFormat      string
	TracingEnabled bool
	CORSOrigins    []string

	// seeded accounts; skipped when the password is empty
	AdminUsername    string
	AdminPassword    string
	DeliveryUsername string
	DeliveryPassword string

	UPIPayeeVPA  string
	UPIPayeeName string
}

func LoadConfig() *Config {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("reading .env: %v", err)
	}

	return &Config{
		Port:      getEnv("PORT", "8000"),
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBSource:  getEnv("DB_SOURCE", "biryani_club.db"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),
		Timezone:  getEnv("TIMEZONE", "Asia/Kolkata"),

		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		TracingEnabled: getBool("TRACING_ENABLED", false),
		CORSOrigins:    getList("CORS_ORIGINS", []string{"*"}),

		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    os.Getenv("ADMIN_PASSWORD"),
		DeliveryUsername: getEnv("DELIVERY_USERNAME", "delivery"),
		DeliveryPassword: os.Getenv("DELIVERY_PASSWORD"),

		UPIPayeeVPA:  getEnv("UPI_PAYEE_VPA", "biryaniclub@paytm"),
		UPIPayeeName: getEnv("UPI_PAYEE_NAME", "Biryani Club"),
	}
}

// Location falls back to UTC when the zone database does not know Timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("unknown TIMEZONE %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}

// comma separated; blank entries are dropped
func getList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// accepts Go durations ("12h") or plain hours ("24")
func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if h, err := strconv.Atoi(v); err == nil {
		return time.Duration(h) * time.Hour
	}
	return fallback
}
