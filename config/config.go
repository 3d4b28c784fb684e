package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Mail       MailConfig       `mapstructure:"mail"`
	Site       SiteConfig       `mapstructure:"site"`
	Newsletter NewsletterConfig `mapstructure:"newsletter"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Log        LogConfig        `mapstructure:"log"`
}

type ServerConfig struct {
	Port       string `mapstructure:"port"`
	GinMode    string `mapstructure:"gin_mode"`
	CORSOrigin string `mapstructure:"cors_origin"`
	// AppURL is the public base URL used in links sent by mail.
	AppURL string `mapstructure:"app_url"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	URL    string `mapstructure:"url"`
}

type AuthConfig struct {
	JWTSecret     string       `mapstructure:"jwt_secret"`
	AdminName     string       `mapstructure:"admin_name"`
	AdminEmail    string       `mapstructure:"admin_email"`
	AdminPassword string       `mapstructure:"admin_password"`
	Google        GoogleConfig `mapstructure:"google"`
}

type GoogleConfig struct {
	ClientID         string `mapstructure:"client_id"`
	ClientSecret     string `mapstructure:"client_secret"`
	RedirectURL      string `mapstructure:"redirect_url"`
	FrontendRedirect string `mapstructure:"frontend_redirect"`
}

// Enabled reports whether owner sign-in with Google is configured.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURL != ""
}

type StorageConfig struct {
	Backend string             `mapstructure:"backend"`
	Local   LocalStorageConfig `mapstructure:"local"`
	S3      S3StorageConfig    `mapstructure:"s3"`
}

type LocalStorageConfig struct {
	BasePath     string `mapstructure:"base_path"`
	PublicPrefix string `mapstructure:"public_prefix"`
}

type S3StorageConfig struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	PublicURL       string `mapstructure:"public_url"`
}

type MailConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
}

type SiteConfig struct {
	Name       string `mapstructure:"name"`
	OwnerEmail string `mapstructure:"owner_email"`
	// Locale is the BCP 47 tag used to collate gallery group names.
	Locale string `mapstructure:"locale"`
}

const (
	UnsubscribeDelete     = "delete"
	UnsubscribeDeactivate = "deactivate"
)

type NewsletterConfig struct {
	UnsubscribeMode string `mapstructure:"unsubscribe_mode"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// envKeys maps config keys to the environment variables that set them.
var envKeys = map[string]string{
	"server.port":        "PORT",
	"server.gin_mode":    "GIN_MODE",
	"server.cors_origin": "CORS_ORIGIN",
	"server.app_url":     "APP_URL",

	"database.driver": "DB_DRIVER",
	"database.url":    "DB_URL",

	"auth.jwt_secret":               "JWT_SECRET",
	"auth.admin_name":               "ADMIN_NAME",
	"auth.admin_email":              "ADMIN_EMAIL",
	"auth.admin_password":           "ADMIN_PASSWORD",
	"auth.google.client_id":         "GOOGLE_CLIENT_ID",
	"auth.google.client_secret":     "GOOGLE_CLIENT_SECRET",
	"auth.google.redirect_url":      "GOOGLE_REDIRECT_URL",
	"auth.google.frontend_redirect": "GOOGLE_FRONTEND_REDIRECT",

	"storage.backend":              "STORAGE_BACKEND",
	"storage.local.base_path":      "STORAGE_PATH",
	"storage.local.public_prefix":  "STORAGE_PUBLIC_PREFIX",
	"storage.s3.bucket":            "S3_BUCKET",
	"storage.s3.region":            "S3_REGION",
	"storage.s3.endpoint":          "S3_ENDPOINT",
	"storage.s3.access_key_id":     "S3_ACCESS_KEY_ID",
	"storage.s3.secret_access_key": "S3_SECRET_ACCESS_KEY",
	"storage.s3.public_url":        "S3_PUBLIC_URL",

	"mail.driver":    "MAIL_DRIVER",
	"mail.host":      "SMTP_HOST",
	"mail.port":      "SMTP_PORT",
	"mail.username":  "SMTP_USERNAME",
	"mail.password":  "SMTP_PASSWORD",
	"mail.from":      "SMTP_FROM",
	"mail.from_name": "MAIL_FROM_NAME",

	"site.name":        "SITE_NAME",
	"site.owner_email": "OWNER_EMAIL",
	"site.locale":      "GALLERY_LOCALE",

	"newsletter.unsubscribe_mode": "NEWSLETTER_UNSUBSCRIBE_MODE",

	"rate_limit.rps":   "RATE_LIMIT_RPS",
	"rate_limit.burst": "RATE_LIMIT_BURST",

	"log.level":  "LOG_LEVEL",
	"log.format": "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.gin_mode", "debug")
	v.SetDefault("server.cors_origin", "http://localhost:5173")
	v.SetDefault("server.app_url", "http://localhost:8080")

	v.SetDefault("database.driver", "postgres")

	v.SetDefault("auth.admin_name", "Admin")

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.local.base_path", "./storage/app/public")
	v.SetDefault("storage.local.public_prefix", "/storage")
	v.SetDefault("storage.s3.region", "eu-west-1")

	v.SetDefault("mail.driver", "smtp")
	v.SetDefault("mail.port", 587)

	v.SetDefault("site.name", "Atelier")
	v.SetDefault("site.locale", "nl")

	v.SetDefault("newsletter.unsubscribe_mode", UnsubscribeDelete)

	v.SetDefault("rate_limit.rps", 1.0)
	v.SetDefault("rate_limit.burst", 5)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Load reads .env (when present) and the environment on top of the defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}
	return load()
}

func load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Server.AppURL = strings.TrimRight(cfg.Server.AppURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Database.Driver))
	}
	if c.Database.URL == "" {
		errs = append(errs, errors.New("missing required environment variable: DB_URL"))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("missing required environment variable: JWT_SECRET"))
	}

	switch c.Storage.Backend {
	case "local":
	case "s3":
		if c.Storage.S3.Bucket == "" {
			errs = append(errs, errors.New("S3_BUCKET is required when STORAGE_BACKEND=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend))
	}

	switch c.Mail.Driver {
	case "log":
	case "smtp":
		if c.Mail.Host == "" || c.Mail.From == "" {
			errs = append(errs, errors.New("SMTP_HOST and SMTP_FROM are required when MAIL_DRIVER=smtp"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown MAIL_DRIVER %q", c.Mail.Driver))
	}

	switch c.Newsletter.UnsubscribeMode {
	case UnsubscribeDelete, UnsubscribeDeactivate:
	default:
		errs = append(errs, fmt.Errorf("NEWSLETTER_UNSUBSCRIBE_MODE must be %q or %q", UnsubscribeDelete, UnsubscribeDeactivate))
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive"))
	}

	return errors.Join(errs...)
}
