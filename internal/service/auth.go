package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"artist-site/internal/apperr"
	"artist-site/internal/domain/users"
	"artist-site/internal/validation"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenTTL = 24 * time.Hour

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordInput struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

// GoogleIdentity is the verified subset of a Google ID token.
type GoogleIdentity struct {
	Sub           string
	Email         string
	EmailVerified bool
	Name          string
}

type AuthService struct {
	db         *gorm.DB
	secret     []byte
	ownerEmail string
	validate   *validation.Validator
	log        *zap.Logger
	now        func() time.Time
}

// NewAuthService signs tokens with secret. ownerEmail, when set, is the only
// Google account allowed to sign in.
func NewAuthService(db *gorm.DB, secret, ownerEmail string, v *validation.Validator, log *zap.Logger) *AuthService {
	return &AuthService{
		db:         db,
		secret:     []byte(secret),
		ownerEmail: normalizeEmail(ownerEmail),
		validate:   v,
		log:        log,
		now:        time.Now,
	}
}

// Login checks the password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Validate(in); err != nil {
		return "", err
	}

	var u users.User
	err := s.db.WithContext(ctx).Where("email = ?", in.Email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperr.Unauthorized("invalid credentials")
	}
	if err != nil {
		return "", dbError(err, "user")
	}
	if u.Password == nil || *u.Password == "" {
		return "", apperr.Unauthorized("this account uses Google sign-in")
	}
	if bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(in.Password)) != nil {
		return "", apperr.Unauthorized("invalid credentials")
	}
	return s.issue(ctx, &u)
}

func (s *AuthService) Me(ctx context.Context, id uint) (*users.User, error) {
	var u users.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, dbError(err, "user")
	}
	return &u, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, id uint, in ChangePasswordInput) error {
	if err := s.validate.Validate(in); err != nil {
		return err
	}
	u, err := s.Me(ctx, id)
	if err != nil {
		return err
	}
	if u.Password == nil || *u.Password == "" {
		return apperr.InvalidField("old_password", "this account has no password")
	}
	if bcrypt.CompareHashAndPassword([]byte(*u.Password), []byte(in.OldPassword)) != nil {
		return apperr.InvalidField("old_password", "is incorrect")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal("failed to hash password", err)
	}
	if err := s.db.WithContext(ctx).Model(u).Update("password", string(hashed)).Error; err != nil {
		return dbError(err, "user")
	}
	s.log.Info("password changed", zap.Uint("user_id", u.ID))
	return nil
}

// GoogleSignIn links or creates the owner account for a verified Google
// identity and returns a signed token.
func (s *AuthService) GoogleSignIn(ctx context.Context, id GoogleIdentity) (string, error) {
	email := normalizeEmail(id.Email)
	if id.Sub == "" || email == "" || !id.EmailVerified {
		return "", apperr.Unauthorized("google account has no verified email")
	}
	if s.ownerEmail == "" || email != s.ownerEmail {
		return "", apperr.Forbidden("this Google account may not sign in")
	}

	var u users.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("google_sub = ?", id.Sub).First(&u).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		sub := id.Sub
		err = tx.Where("email = ?", email).First(&u).Error
		switch {
		case err == nil:
			u.GoogleSub = &sub
			return tx.Model(&u).Update("google_sub", sub).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			u = users.User{
				Name:         id.Name,
				Email:        email,
				AuthProvider: "google",
				GoogleSub:    &sub,
				Role:         users.RoleAdmin,
			}
			return tx.Create(&u).Error
		default:
			return err
		}
	})
	if err != nil {
		return "", dbError(err, "user")
	}
	return s.issue(ctx, &u)
}

// ParseToken validates a token and returns the user id and role it carries.
func (s *AuthService) ParseToken(raw string) (uint, string, error) {
	return ParseToken(s.secret, raw)
}

func (s *AuthService) issue(ctx context.Context, u *users.User) (string, error) {
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"role":    u.Role,
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	})
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", apperr.Internal("could not create token", err)
	}

	if err := s.db.WithContext(ctx).Model(u).Update("last_login_at", now).Error; err != nil {
		s.log.Warn("recording last login failed", zap.Uint("user_id", u.ID), zap.Error(err))
	}
	return signed, nil
}

// ParseToken checks an HS256 token signed with secret.
func ParseToken(secret []byte, raw string) (uint, string, error) {
	raw = strings.TrimSpace(raw)
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return 0, "", apperr.Unauthorized("invalid or expired token")
	}

	idf, ok := claims["user_id"].(float64)
	if !ok || idf <= 0 {
		return 0, "", apperr.Unauthorized("invalid token claims")
	}
	role, _ := claims["role"].(string)
	return uint(idf), role, nil
}
