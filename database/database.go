package database

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"artist-site/config"
	"artist-site/internal/domain/events"
	"artist-site/internal/domain/newsletter"
	"artist-site/internal/domain/users"
	"artist-site/internal/domain/works"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB connects, migrates and seeds the database, exiting on failure.
func InitDB(cfg *config.Config, zl *zap.Logger) {
	db, err := Open(cfg.Database.Driver, cfg.Database.URL, zl)
	if err != nil {
		zl.Fatal("failed to connect to database", zap.Error(err))
	}
	DB = db

	if err := Migrate(DB); err != nil {
		zl.Fatal("auto-migrate failed", zap.Error(err))
	}
	if err := SeedTags(DB); err != nil {
		zl.Fatal("seeding tags failed", zap.Error(err))
	}
	if cfg.Auth.AdminEmail != "" {
		if err := SeedAdmin(DB, cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
			zl.Fatal("seeding admin user failed", zap.Error(err))
		}
	}

	zl.Info("connected and migrated", zap.String("driver", cfg.Database.Driver))
}

// Open connects with gorm's logger routed through zap.
func Open(driver, dsn string, zl *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	gormLogger := logger.New(
		log.New(zapWriter{zl.Sugar()}, "", 0),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// one connection so an in-memory database is shared by every query
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&works.Tag{},
		&works.Artwork{},
		&events.Event{},
		&newsletter.Subscriber{},
	)
}

// SeedTags inserts the default tag set into an empty tags table.
func SeedTags(db *gorm.DB) error {
	var n int64
	if err := db.Model(&works.Tag{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	tags := make([]works.Tag, len(works.DefaultTags))
	copy(tags, works.DefaultTags)
	return db.Create(&tags).Error
}

// SeedAdmin creates the admin account when no user with email exists.
// The email is stored lowercased, the form logins look it up by.
func SeedAdmin(db *gorm.DB, name, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	var existing users.User
	err := db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if password == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required to create admin %s", email)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	h := string(hashed)
	return db.Create(&users.User{
		Name:         name,
		Email:        email,
		Password:     &h,
		AuthProvider: "local",
		Role:         users.RoleAdmin,
	}).Error
}

type zapWriter struct {
	s *zap.SugaredLogger
}

func (w zapWriter) Write(p []byte) (int, error) {
	w.s.Info(string(p))
	return len(p), nil
}
