package main

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"opsdash/docs" //this is required to generate swagger docs
	"opsdash/internal/auth"
	"opsdash/internal/domain/bookings"
	"opsdash/internal/domain/storage"
	"opsdash/internal/expenses"
	"opsdash/internal/mailer"
	"opsdash/internal/ratelimiter"
	"opsdash/internal/recon"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

type application struct {
	config        config
	store         *storage.Container
	logger        *zap.SugaredLogger
	cld           *cloudinary.Cloudinary
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	// recon is nil when the Razorpay credentials are not configured; the
	// reconciliation endpoint then reports a configuration error.
	recon       *recon.Aggregator
	expenses    *expenses.Sheet
	bookingRefs *bookings.ReferenceCodec
}

type config struct {
	addr        string
	db          dbConfig
	env         string
	apiURL      string
	frontendURL string
	mail        mailConfig
	auth        authConfig
	razorpay    razorpayConfig
	expenseURL  string
	refSalt     string
	rateLimiter ratelimiter.Config
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret          string
	refreshSecret   string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	iss             string
}

type basicConfig struct {
	user string
	pass string
}

type mailConfig struct {
	exp       time.Duration
	fromEmail string
	mailtrap  mailTrapConfig
}

type mailTrapConfig struct {
	apiKey string
}

type razorpayConfig struct {
	keyID     string
	keySecret string
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
	r.Use(app.RateLimiterMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Request-scoped timeout; slow upstreams surface through ctx.Done().
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		docsURL := fmt.Sprintf("%s/swagger/doc.json", app.config.addr)
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(docsURL)))

		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Public routes
		r.Route("/authentication", func(r chi.Router) {
			r.Post("/token", app.createTokenHandler)
			r.Post("/refresh", app.refreshTokenHandler)
			r.Put("/activate/{token}", app.activateOperatorHandler)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Get("/me", app.currentUserHandler)
			r.Post("/logout", app.logoutHandler)
		})

		// Role-gated dashboard pages.
		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.With(app.RequirePermission(permDashboardRead)).Get("/overview", app.adminOverviewHandler)

			r.Route("/bookings", func(r chi.Router) {
				r.Use(app.RequirePermission(permBookingsRead))
				r.Get("/", app.adminListBookingsHandler)
				r.Get("/status-counts", app.adminBookingStatusCountsHandler)
				r.Get("/{bookingRef}", app.adminGetBookingHandler)
			})

			r.Route("/partners", func(r chi.Router) {
				r.With(app.RequirePermission(permPartnersRead)).Get("/", app.adminListPartnersHandler)
				r.With(app.RequirePermission(permPartnersRead)).Get("/{partnerID}", app.adminGetPartnerHandler)
				r.With(app.RequirePermission(permPartnersWrite)).Patch("/{partnerID}/status", app.adminUpdatePartnerStatusHandler)
				r.With(app.RequirePermission(permPartnersWrite)).Post("/{partnerID}/photo", app.adminUploadPartnerPhotoHandler)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Use(app.RequirePermission(permCustomersRead))
				r.Get("/", app.adminListCustomersHandler)
				r.Get("/{customerID}", app.adminGetCustomerHandler)
			})

			r.With(app.RequirePermission(permPaymentsRead)).
				Get("/payments/reconciliation", app.paymentsReconciliationHandler)

			r.With(app.RequirePermission(permExpensesRead)).
				Get("/expenses", app.adminExpensesHandler)

			r.Route("/operators", func(r chi.Router) {
				r.Use(app.RequirePermission(permUsersManage))
				r.Post("/", app.inviteOperatorHandler)
				r.Get("/", app.adminListOperatorsHandler)

				r.Route("/{operatorID}/roles", func(r chi.Router) {
					r.Get("/", app.adminGetOperatorRolesHandler)
					r.Post("/", app.adminAssignOperatorRoleHandler)
					r.Delete("/{roleName}", app.adminRemoveOperatorRoleHandler)
				})
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	// Docs
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

		shutdown <- srv.Shutdown(ctx)
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
