package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the complete application configuration, loadable from
// environment variables (SHOP_ prefix), flags, or YAML config files.
type Config struct {
	Addr          string `default:"0.0.0.0:8080" usage:"API server listen address"`
	MongoURI      string `usage:"MongoDB connection URI (SHOP_MONGO_URI or MONGO_URL)" flag:"mongo-uri"`
	MongoDatabase string `default:"radhelaptops" usage:"MongoDB database name" flag:"mongo-database"`
	ImageBaseURL  string `default:"" usage:"Base URL prefixed to stored image paths" flag:"image-base-url"`
	UploadDir     string `default:"uploads" usage:"Directory for uploaded images" flag:"upload-dir"`
	JWTSecret     string `usage:"HMAC secret for auth tokens (SHOP_JWT_SECRET)" flag:"jwt-secret"`

	GuestCartTTL  time.Duration `default:"24h" usage:"Idle lifetime of guest carts" flag:"guest-cart-ttl"`
	OTPTTL        time.Duration `default:"10m" usage:"Lifetime of email verification codes" flag:"otp-ttl"`
	ResetTokenTTL time.Duration `default:"1h" usage:"Lifetime of password reset links" flag:"reset-token-ttl"`

	// FrontendBaseURL is the origin the emailed password-reset link points
	// at; the frontend serves /reset-password/:token.
	FrontendBaseURL string `default:"http://localhost:5173" usage:"Frontend origin for emailed links" flag:"frontend-base-url"`

	Razorpay  RazorpayConfig
	SMTP      SMTPConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Graceful  GracefulConfig
}

// RazorpayConfig carries the payment provider credentials.
type RazorpayConfig struct {
	KeyID     string `usage:"Razorpay key ID" flag:"razorpay-key-id"`
	KeySecret string `usage:"Razorpay key secret" flag:"razorpay-key-secret"`
}

// SMTPConfig controls the outbound mail transport.
type SMTPConfig struct {
	Host     string `usage:"SMTP host"`
	Port     int    `default:"587" usage:"SMTP port"`
	Username string `usage:"SMTP username"`
	Password string `usage:"SMTP password"`
	From     string `usage:"From address for outgoing mail"`
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and applies platform-specific defaults.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOP",
		Files:     []string{"config.yaml", "/etc/shop/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if cfg.MongoURI == "" {
		return nil, errors.New("mongo URI is required: set SHOP_MONGO_URI or MONGO_URL")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT secret is required: set SHOP_JWT_SECRET")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like MONGO_URL and PORT to
// the application's SHOP_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.MongoURI == "" {
		for _, name := range []string{"MONGO_PUBLIC_URL", "MONGO_URL", "MONGODB_URI"} {
			if v := os.Getenv(name); v != "" {
				c.MongoURI = v
				break
			}
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
