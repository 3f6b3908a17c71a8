package configs

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Env       string
	Port      string
	DBDriver  string
	DBSource  string
	LogLevel  string
	JWTSecret string
	JWTTTL    time.Duration

	BcryptCost  int
	CookieName  string
	CORSOrigins []string

	// TrustedProxies are the IPs/CIDRs allowed to set X-Forwarded-For.
	// Empty means the socket peer is the client.
	TrustedProxies []string

	TipCurrency       string
	DemoStaffFallback bool
	AuthRateLimit     float64
	AuthRateBurst     int
	SeedDemo          bool
	AdminEmail        string
	AdminPassword     string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoadConfig reads .env when present and falls back to the process
// environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file, using process environment")
	}

	cfg := &Config{
		Env:               getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8000"),
		DBDriver:          getEnv("DB_DRIVER", "sqlite"),
		DBSource:          getEnv("DB_SOURCE", "tapr.db"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		JWTSecret:         getEnv("JWT_SECRET", "changeme"),
		JWTTTL:            getEnvDuration("JWT_TTL", 7*24*time.Hour),
		BcryptCost:        getEnvInt("BCRYPT_COST", 12),
		CookieName:        getEnv("COOKIE_NAME", "tapr_token"),
		CORSOrigins:       getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		TrustedProxies:    getEnvList("TRUSTED_PROXIES", nil),
		TipCurrency:       getEnv("TIP_CURRENCY", "USD"),
		DemoStaffFallback: getEnvBool("TIPS_DEMO_STAFF_FALLBACK", false),
		AuthRateLimit:     getEnvFloat("AUTH_RATE_LIMIT", 5),
		AuthRateBurst:     getEnvInt("AUTH_RATE_BURST", 10),
		SeedDemo:          getEnvBool("SEED_DEMO", false),
		AdminEmail:        getEnv("ADMIN_EMAIL", ""),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		ReadTimeout:       getEnvDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:      getEnvDuration("WRITE_TIMEOUT", 15*time.Second),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.DBDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (sqlite or postgres)", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && (c.JWTSecret == "changeme" || len(c.JWTSecret) < 32) {
		return errors.New("JWT_SECRET must be at least 32 characters in production")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	if c.BcryptCost < 10 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST %d out of range [10,31]", c.BcryptCost)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	for _, o := range c.CORSOrigins {
		if o == "*" && c.IsProduction() {
			return errors.New("CORS_ORIGINS=* is not allowed in production with credentialed requests")
		}
	}
	for _, p := range c.TrustedProxies {
		if _, _, err := net.ParseCIDR(p); err != nil && net.ParseIP(p) == nil {
			return fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", p)
		}
	}
	if len(c.TipCurrency) != 3 {
		return fmt.Errorf("TIP_CURRENCY must be an ISO 4217 code, got %q", c.TipCurrency)
	}
	if c.AuthRateLimit <= 0 || c.AuthRateBurst <= 0 {
		return errors.New("AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvList(key string, fallback []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
