package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"kisansetu/docs" // registers the swagger spec
	"kisansetu/internal/auth"
	"kisansetu/internal/catalog"
	"kisansetu/internal/mailer"
	"kisansetu/internal/media"
	"kisansetu/internal/payments"
	"kisansetu/internal/ratelimiter"
	"kisansetu/internal/session"
)

type application struct {
	config        config
	logger        *zap.SugaredLogger
	catalog       catalog.Store
	sessions      *session.Registry
	payments      *payments.PaymentManager
	mailer        mailer.Client
	thumbnails    *media.Thumbnailer
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter

	// background jobs, waited on at shutdown
	wg sync.WaitGroup
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	mail        mailConfig
	auth        authConfig
	session     sessionConfig
	checkout    checkoutConfig
	payment     paymentConfig
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	exp    time.Duration
	iss    string
}

type basicConfig struct {
	user string
	pass string
}

type sessionConfig struct {
	ttl time.Duration
}

type checkoutConfig struct {
	shippingFeeCents int64
	taxRateBPS       int64
	currency         string
	receiptSalt      string
}

type paymentConfig struct {
	defaultMethod string
	merchantName  string
	razorpay      razorpayConfig
	sandboxSecret string
}

type razorpayConfig struct {
	keyID     string
	keySecret string
}

type mailConfig struct {
	fromEmail string
	smtp      smtpConfig
}

type smtpConfig struct {
	host     string
	port     int
	username string
	password string
}

type dbConfig struct {
	addr        string
	maxConns    int
	maxIdleTime string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	r.Use(app.RateLimiterMiddleware)

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		docsURL := fmt.Sprintf("%s/v1/swagger/doc.json", app.config.apiURL)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.Post("/sessions", app.createSessionHandler)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", app.listCatalogHandler)
			r.Get("/{itemID}", app.getCatalogItemHandler)
		})

		r.Group(func(r chi.Router) {
			r.Use(app.SessionTokenMiddleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", app.getCartHandler)
				r.Delete("/", app.clearCartHandler)
				r.Post("/items", app.addCartItemHandler)
				r.Patch("/items/{itemID}", app.updateCartItemHandler)
				r.Delete("/items/{itemID}", app.removeCartItemHandler)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Post("/", app.beginCheckoutHandler)
				r.Get("/", app.getCheckoutHandler)
				r.Delete("/", app.abandonCheckoutHandler)
				r.Put("/shipping", app.submitShippingHandler)
				r.Post("/back", app.checkoutBackHandler)
				r.Post("/payment", app.initiatePaymentHandler)
				r.Post("/payment/callback", app.paymentCallbackHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.Host = app.config.apiURL
	docs.SwaggerInfo.BasePath = "/v1"

	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Implementing graceful shutdown
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		err := srv.Shutdown(ctx)

		app.logger.Infow("waiting for background jobs")
		app.wg.Wait()

		shutdown <- err
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
