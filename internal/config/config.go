package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits list-valued variables
	"time"    // time parses duration-valued variables

	"github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Required values are enforced at startup via
// must(); credentials that are only needed for specific outbound calls
// (worker secrets, Telegram, media service) are read as-is and validated at
// call time so that a missing one fails the call, not the whole process.
type Config struct {
	Env            string   // application environment (e.g. "dev", "prod")
	Port           string   // HTTP port to listen on
	AllowedOrigins []string // CORS origin allowlist ("*" when unset)

	AdminPINHash   string // bcrypt hash of the admin PIN
	JWTSecret      string // secret used to sign access tokens
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days

	PaymentSecret string // shared secret for payment-gateway signature checks

	WorkerBaseURL string // base URL of the remote booking store worker
	ReadSecret    string // worker credential for read-level calls
	WriteSecret   string // worker credential for write-level calls
	AdminSecret   string // worker credential for admin-level calls

	TelegramBotToken string // bot token for the notification channel
	TelegramChatID   string // chat id the notifier posts to

	MediaCloudName string // hosted media service account name
	MediaAPIKey    string // hosted media service API key
	MediaAPISecret string // hosted media service API secret

	UPIPayeeVPA  string // UPI payee address for payment deep links
	UPIPayeeName string // UPI payee display name

	HTTPTimeout time.Duration // timeout applied to every outbound HTTP call
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is merged in first (it never
// overrides variables already set in the environment).  Required variables
// are enforced by must() and missing values cause the program to exit with a
// fatal log message.
func Load() Config {
	_ = godotenv.Load() // absence of .env is fine in deployed environments

	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           must("APP_PORT"),
		AllowedOrigins: splitList(getenv("ALLOWED_ORIGINS", "*")),

		AdminPINHash:   must("ADMIN_PIN_HASH"),
		JWTSecret:      must("ACCESS_TOKEN_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),

		PaymentSecret: must("PAYMENT_SECRET"),

		WorkerBaseURL: must("WORKER_BASE_URL"),
		ReadSecret:    os.Getenv("DB_READ_SECRET"),
		WriteSecret:   os.Getenv("DB_WRITE_SECRET"),
		AdminSecret:   os.Getenv("DB_ADMIN_SECRET"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),

		MediaCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		MediaAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		MediaAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		UPIPayeeVPA:  os.Getenv("UPI_PAYEE_VPA"),
		UPIPayeeName: os.Getenv("UPI_PAYEE_NAME"),

		HTTPTimeout: parseDur(getenv("HTTP_CLIENT_TIMEOUT", "10s")),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// splitList parses a comma-separated env value into trimmed entries.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
