package main

import (
	"errors"
	"expvar"
	"fmt"
	"io/fs"
	"log"
	"os"
	"runtime"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"kisansetu/internal/auth"
	"kisansetu/internal/catalog"
	"kisansetu/internal/checkout"
	"kisansetu/internal/db"
	"kisansetu/internal/mailer"
	"kisansetu/internal/media"
	"kisansetu/internal/payments"
	"kisansetu/internal/ratelimiter"
	"kisansetu/internal/session"
)

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)

	level := zapcore.InfoLevel

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	logger := zap.New(core)

	return logger.Sugar(), nil
}

var version = "0.3.0"

//	@title			KisanSetu API
//	@description	Cart and checkout API for the KisanSetu farmer marketplace.

//	@BasePath					/v1
//	@securityDefinitions.apikey	ApiKeyAuth
//	@in							header
//	@name						Authorization

func main() {
	if err := godotenv.Load(); err != nil {
		// a missing .env is fine when the environment is injected
		if !errors.Is(err, fs.ErrNotExist) || os.Getenv("ENV") == "production" {
			log.Fatalf("Error loading .env file: %v", err)
		}
	}

	cfg := loadConfig()

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if cfg.auth.token.secret == "" {
		logger.Fatal("AUTH_TOKEN_SECRET is required")
	}

	// Database
	pool, err := db.New(
		cfg.db.addr,
		int32(cfg.db.maxConns),
		cfg.db.maxIdleTime,
	)
	if err != nil {
		logger.Fatal(err)
	}
	defer pool.Close()
	logger.Info("database connection pool established")

	// Payments
	pm := payments.NewPaymentManager()
	if cfg.payment.razorpay.keyID != "" {
		pm.RegisterGateway("razorpay", payments.NewRazorpayAdapter(
			cfg.payment.razorpay.keyID,
			cfg.payment.razorpay.keySecret,
			cfg.payment.merchantName,
		))
	}
	if cfg.payment.sandboxSecret != "" || cfg.env != "production" {
		if cfg.payment.sandboxSecret == "" {
			logger.Warn("SANDBOX_PAYMENT_SECRET not set, sandbox signatures use a per-process random secret")
		}
		pm.RegisterGateway("sandbox", payments.NewSandboxAdapter(cfg.payment.sandboxSecret))
	}
	if len(pm.Methods()) == 0 {
		logger.Fatal("no payment gateway configured")
	}
	if cfg.payment.defaultMethod == "" {
		cfg.payment.defaultMethod = pm.Methods()[0]
	}
	logger.Infow("payment gateways registered", "methods", pm.Methods(), "default", cfg.payment.defaultMethod)

	// Checkout and sessions
	receipts, err := checkout.NewReceiptGenerator(cfg.checkout.receiptSalt)
	if err != nil {
		logger.Fatal(err)
	}
	sessions := session.NewRegistry(session.Config{
		TTL: cfg.session.ttl,
		Checkout: checkout.Config{
			Pricing: checkout.Pricing{
				ShippingFeeCents: cfg.checkout.shippingFeeCents,
				TaxRateBPS:       cfg.checkout.taxRateBPS,
				Currency:         cfg.checkout.currency,
			},
			Receipts: receipts,
		},
	}, logger)
	defer sessions.Close()

	// Mail
	var mail mailer.Client
	if cfg.mail.smtp.host != "" {
		m, err := mailer.NewSMTPMailer(
			cfg.mail.smtp.host,
			cfg.mail.smtp.port,
			cfg.mail.smtp.username,
			cfg.mail.smtp.password,
			cfg.mail.fromEmail,
		)
		if err != nil {
			logger.Fatal(err)
		}
		mail = m
	} else {
		logger.Warn("SMTP_HOST not set, order confirmation emails are disabled")
	}

	// Cloudinary
	var thumbnails *media.Thumbnailer
	if cloudinaryURL := os.Getenv("CLOUDINARY_URL"); cloudinaryURL != "" {
		cld, err := cloudinary.NewFromURL(cloudinaryURL)
		if err != nil {
			logger.Fatal(err)
		}
		thumbnails = media.NewThumbnailer(cld)
	}

	// Rate limiter
	var limiter ratelimiter.Limiter
	if cfg.rateLimiter.Enabled {
		rl := ratelimiter.NewFixedWindowLimiter(
			cfg.rateLimiter.RequestsPerTimeFrame,
			cfg.rateLimiter.TimeFrame,
		)
		defer rl.Stop()
		limiter = rl
	}

	authenticator := auth.NewJWTAuthenticator(
		cfg.auth.token.secret,
		cfg.auth.token.iss,
		cfg.auth.token.iss,
		cfg.auth.token.exp,
	)

	app := &application{
		config:        cfg,
		logger:        logger,
		catalog:       catalog.NewRepository(pool),
		sessions:      sessions,
		payments:      pm,
		mailer:        mail,
		thumbnails:    thumbnails,
		authenticator: authenticator,
		rateLimiter:   limiter,
	}

	//Metrics collected http://localhost:8080/v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("database", expvar.Func(func() any {
		return pool.Stat().TotalConns()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))
	expvar.Publish("sessions", expvar.Func(func() any {
		return sessions.Len()
	}))

	mux := app.mount()

	if err := app.run(mux); err != nil {
		logger.Error(err)
	}
}
