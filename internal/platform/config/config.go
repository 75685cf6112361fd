package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

type Config struct {
	Addr                       string
	Environment                string
	DBDriver                   string
	DatabaseURL                string
	MigrationsDir              string
	SessionSecret              string
	SessionTTL                 time.Duration
	CookieSecure               bool
	DataEncryptionKey          string
	MediaRoot                  string
	SeedAdminEmail             string
	SeedAdminPassword          string
	RunMigrations              bool
	RunSeed                    bool
	MaxBodyBytes               int64
	TrustedProxies             []string
	LoginRateLimitPerMinute    int
	MutationRateLimitPerMinute int
	MetricsEnabled             bool
	EmailEnabled               bool
	EmailFrom                  string
	SMTPHost                   string
	SMTPPort                   int
	SMTPUser                   string
	SMTPPassword               string
	HousingAllowance           float64
	TransportAllowance         float64
	LogLevel                   string
	LogFormat                  string
}

// Load reads an optional dotenv file and then the process environment.
// Variables already present in the environment win over the file.
func Load() Config {
	loadDotEnv(getEnv("ENV_FILE", ".env"))

	return Config{
		Addr:                       getEnv("APP_ADDR", ":8080"),
		Environment:                getEnv("APP_ENV", "development"),
		DBDriver:                   strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL:                getEnv("DATABASE_URL", ""),
		MigrationsDir:              getEnv("MIGRATIONS_DIR", "migrations"),
		SessionSecret:              getEnv("SESSION_SECRET", ""),
		SessionTTL:                 getEnvDuration("SESSION_TTL", 8*time.Hour),
		CookieSecure:               getEnvBool("COOKIE_SECURE", false),
		DataEncryptionKey:          getEnv("DATA_ENCRYPTION_KEY", ""),
		MediaRoot:                  getEnv("MEDIA_ROOT", "media"),
		SeedAdminEmail:             getEnv("SEED_ADMIN_EMAIL", ""),
		SeedAdminPassword:          getEnv("SEED_ADMIN_PASSWORD", ""),
		RunMigrations:              getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:                    getEnvBool("RUN_SEED", true),
		MaxBodyBytes:               int64(getEnvInt("MAX_BODY_BYTES", 5*1024*1024)),
		TrustedProxies:             getEnvList("TRUSTED_PROXIES"),
		LoginRateLimitPerMinute:    getEnvInt("LOGIN_RATE_LIMIT_PER_MINUTE", 20),
		MutationRateLimitPerMinute: getEnvInt("MUTATION_RATE_LIMIT_PER_MINUTE", 60),
		MetricsEnabled:             getEnvBool("METRICS_ENABLED", true),
		EmailEnabled:               getEnvBool("EMAIL_ENABLED", false),
		EmailFrom:                  getEnv("EMAIL_FROM", "hr@false925.com"),
		SMTPHost:                   getEnv("SMTP_HOST", ""),
		SMTPPort:                   getEnvInt("SMTP_PORT", 587),
		SMTPUser:                   getEnv("SMTP_USER", ""),
		SMTPPassword:               getEnv("SMTP_PASSWORD", ""),
		HousingAllowance:           getEnvFloat("PAYSLIP_HOUSING_ALLOWANCE", 0),
		TransportAllowance:         getEnvFloat("PAYSLIP_TRANSPORT_ALLOWANCE", 0),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		LogFormat:                  getEnv("LOG_FORMAT", "json"),
	}
}

// TrustedProxyPrefixes parses TRUSTED_PROXIES. Entries are CIDRs or bare
// addresses.
func (c Config) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	out := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, raw := range c.TrustedProxies {
		if strings.Contains(raw, "/") {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("TRUSTED_PROXIES entry %q: %w", raw, err)
			}
			out = append(out, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(raw)
		if err != nil {
			return nil, fmt.Errorf("TRUSTED_PROXIES entry %q: %w", raw, err)
		}
		out = append(out, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
	}
	return out, nil
}

func loadDotEnv(path string) {
	if strings.TrimSpace(path) == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	// godotenv.Load never overrides variables that are already set.
	_ = godotenv.Load(path)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required for DB_DRIVER=%s", c.DBDriver)
		}
	case DriverMemory:
		if c.IsProduction() {
			return errors.New("DB_DRIVER=memory is not allowed in production")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.IsProduction() {
		if len(strings.TrimSpace(c.SessionSecret)) < 32 {
			return errors.New("SESSION_SECRET must be at least 32 characters in production")
		}
		if !c.CookieSecure {
			return errors.New("COOKIE_SECURE must be enabled in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return errors.New("SEED_ADMIN_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}
	if c.MaxBodyBytes < 1024 {
		return errors.New("MAX_BODY_BYTES must be at least 1024")
	}
	if _, err := c.TrustedProxyPrefixes(); err != nil {
		return err
	}
	if c.MutationRateLimitPerMinute < 0 {
		return errors.New("MUTATION_RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.LoginRateLimitPerMinute <= 0 {
		return errors.New("LOGIN_RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.EmailEnabled && c.SMTPHost == "" {
		return errors.New("SMTP_HOST must be set when EMAIL_ENABLED is true")
	}
	if c.HousingAllowance < 0 || c.TransportAllowance < 0 {
		return errors.New("payslip allowances must not be negative")
	}
	return nil
}
