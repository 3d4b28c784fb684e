package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"
	"sync"

	"artist-site/internal/api/respond"
	"artist-site/internal/apperr"
	"artist-site/internal/service"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleIssuer    = "https://accounts.google.com"
	stateCookie     = "oauth_state"
	stateCookieSecs = 300
)

// idTokenVerifier turns a raw ID token into a verified identity.
type idTokenVerifier interface {
	Verify(ctx context.Context, rawIDToken string) (*service.GoogleIdentity, error)
}

type oidcVerifier struct {
	v *oidc.IDTokenVerifier
}

func (o oidcVerifier) Verify(ctx context.Context, raw string) (*service.GoogleIdentity, error) {
	tok, err := o.v.Verify(ctx, raw)
	if err != nil {
		return nil, err
	}
	var claims struct {
		Sub           string `json:"sub"`
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := tok.Claims(&claims); err != nil {
		return nil, err
	}
	return &service.GoogleIdentity{
		Sub:           claims.Sub,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
	}, nil
}

var verifierMu sync.Mutex

func (h *Handler) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.google.ClientID,
		ClientSecret: h.google.ClientSecret,
		RedirectURL:  h.google.RedirectURL,
		Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

func (h *Handler) idVerifier(ctx context.Context) (idTokenVerifier, error) {
	verifierMu.Lock()
	defer verifierMu.Unlock()
	if h.verifier != nil {
		return h.verifier, nil
	}
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, err
	}
	h.verifier = oidcVerifier{v: provider.Verifier(&oidc.Config{ClientID: h.google.ClientID})}
	return h.verifier, nil
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func (h *Handler) GoogleStart(c *gin.Context) {
	if !h.google.Enabled() {
		respond.Error(c, apperr.NotFound("google sign-in is not configured"))
		return
	}
	state, err := randomState()
	if err != nil {
		respond.Error(c, apperr.Internal("failed to generate state", err))
		return
	}

	secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, stateCookieSecs, "/", "", secure, true)

	c.Redirect(http.StatusFound, h.oauthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /auth/google/callback
func (h *Handler) GoogleCallback(c *gin.Context) {
	if !h.google.Enabled() {
		respond.Error(c, apperr.NotFound("google sign-in is not configured"))
		return
	}
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		respond.Error(c, apperr.Validation("missing code or state"))
		return
	}

	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState != state {
		respond.Error(c, apperr.Validation("invalid oauth state"))
		return
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	ctx := c.Request.Context()
	tok, err := h.oauthConfig().Exchange(ctx, code)
	if err != nil {
		respond.Logger(c).Warn("google code exchange failed", zap.Error(err))
		respond.Error(c, apperr.Unauthorized("failed to exchange code"))
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		respond.Error(c, apperr.Unauthorized("missing id_token"))
		return
	}

	verifier, err := h.idVerifier(ctx)
	if err != nil {
		respond.Error(c, apperr.DependencyFailure("failed to reach google", err))
		return
	}
	identity, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		respond.Error(c, apperr.Unauthorized("invalid id_token"))
		return
	}

	tokenString, err := h.auth.GoogleSignIn(ctx, *identity)
	if err != nil {
		respond.Error(c, err)
		return
	}

	redirect := h.google.FrontendRedirect
	if redirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+url.QueryEscape(tokenString))
}
