package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/order"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/handler"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/mailer"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/otp"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/passreset"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/payment"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/storage/memory"
	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/storage/mongodb"
	"github.com/nitishpjpt/Radhe-laptop-client-project/pkg/ginmiddleware"
	"github.com/nitishpjpt/Radhe-laptop-client-project/pkg/health"
)

// mongoPinger adapts the driver client to the health check's Pinger.
type mongoPinger struct {
	client *mongo.Client
}

func (p mongoPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx, readpref.Primary())
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Metrics, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	client, db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return errors.Wrap(err, "connect mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			lg.Warn("Mongo disconnect error", zap.Error(err))
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "ensure indexes")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		return errors.Wrap(err, "create upload dir")
	}

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddReadinessCheck("mongodb", 5*time.Second, health.PingCheck(mongoPinger{client: client}))
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.Start(ctx, 10*time.Second)
	healthSvc.SetReady(true)

	// Repositories.
	productRepo := mongodb.NewProductRepository(db)
	customerRepo := mongodb.NewCustomerRepository(db)
	serverCarts := mongodb.NewCartRepository(db)
	guestCarts := memory.NewGuestCartRepository(ctx, cfg.GuestCartTTL)
	testimonialRepo := mongodb.NewTestimonialRepository(db)
	contactRepo := mongodb.NewContactRepository(db)
	otpStore := mongodb.NewOTPStore(db)
	resetStore := mongodb.NewPasswordResetStore(db)

	// External collaborators.
	gateway := payment.NewRazorpay(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	smtp := mailer.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	notifier := mailer.NewOrderNotifier(smtp, cfg.SMTP.From)
	otpSvc := otp.NewService(otpStore, smtp, cfg.OTPTTL)
	resetSvc := passreset.NewService(resetStore, smtp, cfg.ResetTokenTTL, cfg.FrontendBaseURL)

	// Domain services.
	checkout := order.NewService(customerRepo, productRepo, gateway, notifier)

	// HTTP surface.
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		ginmiddleware.RequestID(),
		ginmiddleware.Logger(zctx.From(ctx)),
		ginmiddleware.Recovery(),
		cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.Origins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "Authorization", "X-Guest-Cart-Id"},
			ExposeHeaders:    []string{"X-Guest-Cart-Id", "X-Request-ID"},
			AllowCredentials: cfg.CORS.AllowCredentials,
			MaxAge:           24 * time.Hour,
		}),
		ginmiddleware.RateLimit(ctx, ginmiddleware.RateLimitConfig{
			Max:    cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
		}),
	)

	h := handler.New(
		handler.Config{
			JWTSecret:    cfg.JWTSecret,
			UploadDir:    cfg.UploadDir,
			ImageBaseURL: cfg.ImageBaseURL,
		},
		productRepo,
		customerRepo,
		serverCarts,
		guestCarts,
		checkout,
		testimonialRepo,
		contactRepo,
		otpSvc,
		resetSvc,
	)
	h.Register(engine)

	// Mux: health endpoints bypass the API middleware chain.
	mux := http.NewServeMux()
	mux.HandleFunc("/livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("/readyz", healthSvc.ReadyEndpoint)
	mux.Handle("/", engine)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: otelhttp.NewHandler(mux, "shop-api",
			otelhttp.WithTracerProvider(m.TracerProvider()),
			otelhttp.WithMeterProvider(m.MeterProvider()),
		),
	}

	// Graceful shutdown: wait for context cancellation, drain, then stop.
	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		healthSvc.Stop()
		close(shutdownDone)
	}()

	lg.Info("Server listening", zap.String("addr", cfg.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}
