package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultFeeRate is the documented transaction fee applied to every booking
// subtotal unless TRANSACTION_FEE_RATE overrides it.
const DefaultFeeRate = 0.0375

type Env struct {
	AppAddr string
	GinMode string

	MySQLDSN string

	JWTSecret string

	// Pricing
	TransactionFeeRate float64

	// Paymennt gateway
	PaymenntAPIURL    string
	PaymenntAPIKey    string
	PaymenntAPISecret string
	GatewayTimeout    time.Duration
	FrontendURL       string

	// Resend email
	ResendAPIKey string
	AdminEmail   string
	MailFrom     string

	CORSAllowedOrigins []string
}

func LoadEnv() Env {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := Env{
		AppAddr:            getEnv("APP_ADDR", ":8080"),
		GinMode:            strings.TrimSpace(os.Getenv("GIN_MODE")),
		MySQLDSN:           getEnv("MYSQL_DSN", "root:@tcp(127.0.0.1:3306)/tourism_app?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),
		JWTSecret:          getEnv("JWT_SECRET", "super-secret-key-change-me"),
		TransactionFeeRate: getEnvFloat("TRANSACTION_FEE_RATE", DefaultFeeRate),
		PaymenntAPIURL:     getEnv("PAYMENNT_API_URL", "https://pay.test.paymennt.com/checkout/web"),
		PaymenntAPIKey:     strings.TrimSpace(os.Getenv("PAYMENT_API_KEY")),
		PaymenntAPISecret:  strings.TrimSpace(os.Getenv("PAYMENT_SECRET_KEY")),
		GatewayTimeout:     getEnvDuration("GATEWAY_TIMEOUT", 15*time.Second),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
		ResendAPIKey:       strings.TrimSpace(os.Getenv("RESEND_API_KEY")),
		AdminEmail:         strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		MailFrom:           getEnv("MAIL_FROM", "Desert Planners Tourism LLC <onboarding@resend.dev>"),
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSAllowedOrigins = append(env.CORSAllowedOrigins, o)
			}
		}
	} else {
		env.CORSAllowedOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}
	}

	return env
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
