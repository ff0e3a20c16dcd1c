package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file named by GARAGE_ENV (or .env by default), then
// the matching .secret sidecar if it exists. All config is flat env vars
// read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("GARAGE_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Missing files are fine; the environment may already be set.
	_ = godotenv.Load(envFile)
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func ServerPort() int {
	port := getInt("SERVER_PORT", 8080)
	if port <= 0 {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func RedisAddr() string {
	return getString("REDIS_ADDR", "localhost:6379")
}

func RedisPassword() string {
	return os.Getenv("REDIS_PASSWORD")
}

func RedisDB() int {
	return getInt("REDIS_DB", 0)
}

func JWTSecret() string {
	return os.Getenv("JWT_SECRET")
}

// SessionTTL defaults to one week.
func SessionTTL() time.Duration {
	h := getInt("SESSION_TTL_HOURS", 168)
	if h <= 0 {
		h = 168
	}
	return time.Duration(h) * time.Hour
}

func TenantCacheTTL() time.Duration {
	m := getInt("TENANT_CACHE_TTL_MINUTES", 10)
	if m <= 0 {
		m = 10
	}
	return time.Duration(m) * time.Minute
}

// DemoTenantSlug is the workshop served on demo hosts.
func DemoTenantSlug() string {
	return getString("DEMO_TENANT_SLUG", "aroni-moto")
}

// DemoHosts returns the hosts that always resolve to DemoTenantSlug. A
// "*" entry matches every host.
func DemoHosts() []string {
	raw := getString("DEMO_HOSTS", "localhost,127.0.0.1")
	var hosts []string
	for _, h := range strings.Split(raw, ",") {
		if h = strings.TrimSpace(strings.ToLower(h)); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// StorageDriver is "local" or "s3".
func StorageDriver() string {
	return getString("STORAGE_DRIVER", "local")
}

func UploadsPath() string {
	return getString("UPLOADS_PATH", "uploads")
}

func PublicBaseURL() string {
	return strings.TrimSuffix(getString("PUBLIC_BASE_URL", fmt.Sprintf("http://localhost:%d", ServerPort())), "/")
}

func AWSRegion() string {
	return getString("AWS_REGION", "eu-south-1")
}

func AWSAccessKeyID() string {
	return os.Getenv("AWS_ACCESS_KEY_ID")
}

func AWSSecretAccessKey() string {
	return os.Getenv("AWS_SECRET_ACCESS_KEY")
}

func S3BucketPrefix() string {
	return os.Getenv("S3_BUCKET_PREFIX")
}

// S3Endpoint overrides the AWS endpoint for S3-compatible stores.
func S3Endpoint() string {
	return os.Getenv("S3_ENDPOINT")
}

func AppTitleSuffix() string {
	return getString("APP_TITLE_SUFFIX", "Garage Connect")
}

func DefaultPrimaryColor() string {
	return getString("DEFAULT_PRIMARY_COLOR", "#dc2626")
}

func DefaultSecondaryColor() string {
	return getString("DEFAULT_SECONDARY_COLOR", "#1f2937")
}

func DefaultIconURL() string {
	return getString("DEFAULT_ICON_URL", "/favicon.svg")
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	return getString("LOG_LEVEL", "info")
}

// AppEnv is "production" unless set; "development" switches to the
// console logger.
func AppEnv() string {
	return getString("APP_ENV", "production")
}

func IsDevelopment() bool {
	return AppEnv() == "development"
}
