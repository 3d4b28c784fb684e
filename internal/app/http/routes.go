package routes

import (
	adminapi "artist-site/internal/api/admin"
	authapi "artist-site/internal/api/auth"
	contactapi "artist-site/internal/api/contact"
	eventsapi "artist-site/internal/api/events"
	galleryapi "artist-site/internal/api/gallery"
	newsletterapi "artist-site/internal/api/newsletter"
	usersapi "artist-site/internal/api/users"
	worksapi "artist-site/internal/api/works"
	"artist-site/internal/app/http/middleware"
	"artist-site/internal/domain/events"
	"artist-site/internal/domain/users"
	"artist-site/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the handlers and settings the router is built from.
type Deps struct {
	Works      *worksapi.Handler
	Events     *eventsapi.Handler
	Gallery    *galleryapi.Handler
	Newsletter *newsletterapi.Handler
	Contact    *contactapi.Handler
	Auth       *authapi.Handler
	Users      *usersapi.Handler
	Admin      *adminapi.Handler

	JWTSecret string
	// FormLimiter throttles public form posts; nil disables it.
	FormLimiter *middleware.RateLimiter
	// StoragePrefix and StoragePath serve uploaded files when the local
	// backend is active. Both empty means nothing is served.
	StoragePrefix string
	StoragePath   string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if d.StoragePrefix != "" && d.StoragePath != "" {
		r.Static(d.StoragePrefix, d.StoragePath)
	}

	forms := []gin.HandlerFunc{}
	if d.FormLimiter != nil {
		forms = append(forms, d.FormLimiter.Middleware())
	}
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, forms...), h)
	}

	// Public, read only
	r.GET("/api/artworks", d.Works.ListArtworks)
	r.GET("/api/artworks/for-sale", d.Works.ListForSale)
	r.GET("/api/artworks/sold", d.Works.ListSold)
	r.GET("/api/artworks/:id", d.Works.GetArtwork)
	r.GET("/api/tags", d.Works.ListTags)
	r.GET("/api/gallery", d.Gallery.Show)

	r.GET("/api/events", d.Events.List)
	r.GET("/api/events/current", d.Events.ByStatus(events.StatusCurrent))
	r.GET("/api/events/upcoming", d.Events.ByStatus(events.StatusUpcoming))
	r.GET("/api/events/past", d.Events.ByStatus(events.StatusPast))
	r.GET("/api/events/homepage", d.Events.Homepage)
	r.GET("/api/events/:id", d.Events.Get)
	r.GET("/api/home", d.Events.Home)

	r.GET("/api/newsletter/check", d.Newsletter.Check)
	r.GET("/newsletter/unsubscribe/:token", d.Newsletter.UnsubscribePage)

	r.POST("/login", limited(d.Auth.Login)...)
	r.GET("/auth/google", d.Auth.GoogleStart)
	r.GET("/auth/google/callback", d.Auth.GoogleCallback)

	// Public forms, sanitized
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/api/newsletter/subscribe", limited(d.Newsletter.Subscribe)...)
	public.POST("/api/newsletter/unsubscribe", limited(d.Newsletter.Unsubscribe)...)
	public.POST("/api/contact", limited(d.Contact.Send)...)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(d.JWTSecret), middleware.RequireRole(users.RoleAdmin))
	admin.GET("/dashboard", d.Admin.Dashboard)
	admin.GET("/me", d.Users.GetCurrentUser)
	admin.POST("/change-password", d.Auth.ChangePassword)

	artworkUpload := middleware.BodyLimit(service.ArtworkImages.MaxBytes)
	admin.GET("/artworks", d.Works.ListArtworks)
	admin.POST("/artworks", artworkUpload, d.Works.CreateArtwork)
	admin.GET("/artworks/:id", d.Works.GetArtwork)
	admin.PUT("/artworks/:id", artworkUpload, d.Works.UpdateArtwork)
	admin.DELETE("/artworks/:id", d.Works.DeleteArtwork)

	admin.GET("/tags", d.Works.ListTags)
	admin.POST("/tags", d.Works.CreateTag)
	admin.GET("/tags/:id", d.Works.GetTag)
	admin.PUT("/tags/:id", d.Works.UpdateTag)
	admin.DELETE("/tags/:id", d.Works.DeleteTag)

	eventUpload := middleware.BodyLimit(service.EventImages.MaxBytes)
	admin.GET("/events", d.Events.List)
	admin.POST("/events", eventUpload, d.Events.Create)
	admin.GET("/events/:id", d.Events.Get)
	admin.PUT("/events/:id", eventUpload, d.Events.Update)
	admin.DELETE("/events/:id", d.Events.Delete)

	admin.GET("/newsletter", d.Admin.ListSubscribers)
	admin.PATCH("/newsletter/:id/toggle", d.Admin.ToggleSubscriber)
	admin.DELETE("/newsletter/:id", d.Admin.DeleteSubscriber)
}
