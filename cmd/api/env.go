package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"kisansetu/internal/ratelimiter"
)

func getString(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		fmt.Printf("Invalid %s, defaulting to %d\n", key, fallback)
		return fallback
	}
	return parsed
}

func getInt64(key string, fallback int64) int64 {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	parsed, err := strconv.ParseInt(val, 10, 64)
	if err != nil || parsed < 0 {
		fmt.Printf("Invalid %s, defaulting to %d\n", key, fallback)
		return fallback
	}
	return parsed
}

func getBool(key string, fallback bool) bool {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		fmt.Println("Invalid", key, "defaulting to", fallback)
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val, ok := os.LookupEnv(key)
	if !ok || val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil || parsed <= 0 {
		fmt.Println("Invalid", key, "defaulting to", fallback)
		return fallback
	}
	return parsed
}

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	return ratelimiter.Config{
		RequestsPerTimeFrame: getInt("RATELIMITER_REQUESTS_COUNT", 200),
		TimeFrame:            5 * time.Second,
		Enabled:              getBool("RATE_LIMITER_ENABLED", false),
	}
}

func loadConfig() config {
	return config{
		addr:   getString("ADDR", ":8080"),
		env:    getString("ENV", "development"),
		apiURL: getString("EXTERNAL_URL", "localhost:8080"),
		db: dbConfig{
			addr:        os.Getenv("DB_ADDR"),
			maxConns:    getInt("DB_MAX_CONNS", 30),
			maxIdleTime: getString("DB_MAX_IDLE_TIME", "15m"),
		},
		auth: authConfig{
			basic: basicConfig{
				user: os.Getenv("AUTH_BASIC_USER"),
				pass: os.Getenv("AUTH_BASIC_PASS"),
			},
			token: tokenConfig{
				secret: os.Getenv("AUTH_TOKEN_SECRET"),
				exp:    getDuration("SESSION_TTL", 24*time.Hour),
				iss:    "KisanSetu",
			},
		},
		session: sessionConfig{
			ttl: getDuration("SESSION_TTL", 24*time.Hour),
		},
		checkout: checkoutConfig{
			shippingFeeCents: getInt64("CHECKOUT_SHIPPING_FEE_CENTS", 4000),
			taxRateBPS:       getInt64("CHECKOUT_TAX_RATE_BPS", 500),
			currency:         getString("CHECKOUT_CURRENCY", "INR"),
			receiptSalt:      os.Getenv("CHECKOUT_RECEIPT_SALT"),
		},
		payment: paymentConfig{
			defaultMethod: os.Getenv("PAYMENT_DEFAULT_METHOD"),
			merchantName:  getString("PAYMENT_MERCHANT_NAME", "KisanSetu"),
			razorpay: razorpayConfig{
				keyID:     os.Getenv("RAZORPAY_KEY_ID"),
				keySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
			},
			sandboxSecret: os.Getenv("SANDBOX_PAYMENT_SECRET"),
		},
		mail: mailConfig{
			fromEmail: os.Getenv("SMTP_FROM_EMAIL"),
			smtp: smtpConfig{
				host:     os.Getenv("SMTP_HOST"),
				port:     getInt("SMTP_PORT", 587),
				username: os.Getenv("SMTP_USERNAME"),
				password: os.Getenv("SMTP_PASSWORD"),
			},
		},
		rateLimiter: LoadRateLimiterConfig(),
	}
}
