package service

import (
	"context"
	"errors"
	"strings"

	"artist-site/config"
	"artist-site/internal/apperr"
	"artist-site/internal/domain/newsletter"
	"artist-site/internal/mail"
	"artist-site/internal/telemetry"
	"artist-site/internal/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubscribeInput struct {
	Email string `json:"email" validate:"required,email,max=255"`
}

type NewsletterOptions struct {
	SiteName string
	// AppURL is the public base URL; unsubscribe links are built from it.
	AppURL          string
	UnsubscribeMode string
}

type NewsletterService struct {
	db       *gorm.DB
	mailer   mail.Mailer
	validate *validation.Validator
	opts     NewsletterOptions
	log      *zap.Logger
}

func NewNewsletterService(db *gorm.DB, m mail.Mailer, v *validation.Validator, opts NewsletterOptions, log *zap.Logger) *NewsletterService {
	if opts.UnsubscribeMode == "" {
		opts.UnsubscribeMode = config.UnsubscribeDelete
	}
	opts.AppURL = strings.TrimRight(opts.AppURL, "/")
	return &NewsletterService{db: db, mailer: m, validate: v, opts: opts, log: log}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UnsubscribeURL is the link mailed to a subscriber.
func (s *NewsletterService) UnsubscribeURL(token string) string {
	return s.opts.AppURL + "/newsletter/unsubscribe/" + token
}

// Subscribe enrolls email. The confirmation mail is best effort: a failed
// send is logged and the subscription stands.
func (s *NewsletterService) Subscribe(ctx context.Context, in SubscribeInput) (*newsletter.Subscriber, error) {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Validate(in); err != nil {
		telemetry.NewsletterEventsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	exists, err := s.findByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if exists != nil {
		telemetry.NewsletterEventsTotal.WithLabelValues("rejected").Inc()
		return nil, apperr.Conflict("email", "this email address is already subscribed")
	}

	sub := newsletter.Subscriber{Email: in.Email, IsActive: true}
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email", "this email address is already subscribed")
		}
		return nil, dbError(err, "subscriber")
	}
	telemetry.NewsletterEventsTotal.WithLabelValues("subscribed").Inc()

	data := mail.NewsletterWelcomeData{
		SiteName:       s.opts.SiteName,
		SiteURL:        s.opts.AppURL,
		Email:          sub.Email,
		UnsubscribeURL: s.UnsubscribeURL(sub.UnsubscribeToken),
	}
	if err := s.mailer.Send(ctx, mail.TemplateNewsletterWelcome, sub.Email, data); err != nil {
		s.log.Warn("newsletter welcome mail failed",
			zap.Uint("subscriber_id", sub.ID),
			zap.Error(err),
		)
	}

	s.log.Info("newsletter subscription", zap.Uint("subscriber_id", sub.ID))
	return &sub, nil
}

// UnsubscribeByToken deletes the subscriber owning token. ok is false when
// the token is unknown, which callers present as an invalid link.
func (s *NewsletterService) UnsubscribeByToken(ctx context.Context, token string) (email string, ok bool, err error) {
	token = strings.TrimSpace(token)
	if len(token) != newsletter.TokenLength {
		return "", false, nil
	}

	var sub newsletter.Subscriber
	err = s.db.WithContext(ctx).Where("unsubscribe_token = ?", token).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, dbError(err, "subscriber")
	}

	res := s.db.WithContext(ctx).Delete(&newsletter.Subscriber{}, sub.ID)
	if res.Error != nil {
		return "", false, dbError(res.Error, "subscriber")
	}
	if res.RowsAffected == 0 {
		return "", false, nil
	}

	telemetry.NewsletterEventsTotal.WithLabelValues("unsubscribed").Inc()
	s.log.Info("newsletter unsubscribe by link", zap.Uint("subscriber_id", sub.ID))
	return sub.Email, true, nil
}

// UnsubscribeByEmail removes or deactivates the subscriber, depending on
// the configured mode. An unknown address is a validation error.
func (s *NewsletterService) UnsubscribeByEmail(ctx context.Context, in SubscribeInput) error {
	in.Email = normalizeEmail(in.Email)
	if err := s.validate.Validate(in); err != nil {
		return err
	}

	sub, err := s.findByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if sub == nil {
		return apperr.InvalidField("email", "is not subscribed")
	}

	if s.opts.UnsubscribeMode == config.UnsubscribeDeactivate {
		if err := s.db.WithContext(ctx).Model(sub).Update("is_active", false).Error; err != nil {
			return dbError(err, "subscriber")
		}
		telemetry.NewsletterEventsTotal.WithLabelValues("deactivated").Inc()
		s.log.Info("newsletter subscriber deactivated", zap.Uint("subscriber_id", sub.ID))
		return nil
	}

	if err := s.db.WithContext(ctx).Delete(&newsletter.Subscriber{}, sub.ID).Error; err != nil {
		return dbError(err, "subscriber")
	}
	telemetry.NewsletterEventsTotal.WithLabelValues("unsubscribed").Inc()
	s.log.Info("newsletter unsubscribe by email", zap.Uint("subscriber_id", sub.ID))
	return nil
}

// SubscriptionStatus is the read-only view of one address. IsSubscribed
// is true only for an active row.
type SubscriptionStatus struct {
	Exists       bool `json:"exists"`
	IsActive     bool `json:"is_active"`
	IsSubscribed bool `json:"is_subscribed"`
}

// Check reports whether email has a row. Absence is not an error.
func (s *NewsletterService) Check(ctx context.Context, email string) (*SubscriptionStatus, error) {
	email = normalizeEmail(email)
	if err := s.validate.Var("email", email, "required,email"); err != nil {
		return nil, err
	}
	sub, err := s.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &SubscriptionStatus{}, nil
	}
	return &SubscriptionStatus{Exists: true, IsActive: sub.IsActive, IsSubscribed: sub.IsActive}, nil
}

// List returns subscribers newest first together with their stats.
func (s *NewsletterService) List(ctx context.Context) ([]newsletter.Subscriber, newsletter.Stats, error) {
	subs, err := s.All(ctx)
	if err != nil {
		return nil, newsletter.Stats{}, err
	}
	return subs, newsletter.CountStats(subs), nil
}

func (s *NewsletterService) All(ctx context.Context) ([]newsletter.Subscriber, error) {
	var subs []newsletter.Subscriber
	err := s.db.WithContext(ctx).Order("subscribed_at DESC").Order("id DESC").Find(&subs).Error
	if err != nil {
		return nil, dbError(err, "subscribers")
	}
	return subs, nil
}

// Toggle flips is_active and returns the updated row.
func (s *NewsletterService) Toggle(ctx context.Context, id uint) (*newsletter.Subscriber, error) {
	var sub newsletter.Subscriber
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&sub, id).Error; err != nil {
			return err
		}
		sub.IsActive = !sub.IsActive
		return tx.Model(&sub).Update("is_active", sub.IsActive).Error
	})
	if err != nil {
		return nil, dbError(err, "subscriber")
	}
	telemetry.NewsletterEventsTotal.WithLabelValues("toggled").Inc()
	return &sub, nil
}

func (s *NewsletterService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&newsletter.Subscriber{}, id)
	if res.Error != nil {
		return dbError(res.Error, "subscriber")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("subscriber not found")
	}
	telemetry.NewsletterEventsTotal.WithLabelValues("deleted").Inc()
	s.log.Info("newsletter subscriber deleted", zap.Uint("subscriber_id", id))
	return nil
}

func (s *NewsletterService) findByEmail(ctx context.Context, email string) (*newsletter.Subscriber, error) {
	var sub newsletter.Subscriber
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError(err, "subscriber")
	}
	return &sub, nil
}
