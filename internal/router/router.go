// Package router wires handlers, middleware and capability guards into an
// echo instance.
package router

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/course-enrollment/internal/config"
	"github.com/iliyamo/course-enrollment/internal/handler"
	"github.com/iliyamo/course-enrollment/internal/middleware"
	"github.com/iliyamo/course-enrollment/internal/service"
)

// multipartOverhead is allowed on top of the avatar size for form framing.
const multipartOverhead = 64 << 10

// Deps is everything the HTTP layer needs.
type Deps struct {
	Log            *slog.Logger
	DB             *sql.DB
	Redis          *redis.Client // nil disables rate limiting
	Sessions       *middleware.Sessions
	Account        *service.Account
	Catalog        *service.Catalog
	Enrollment     *service.Enrollment
	Support        *service.Support
	RateLimit      config.RateLimitConfig
	ClientCache    config.ClientCacheConfig
	CORSOrigins    []string
	UploadDir      string
	AvatarMaxBytes int64
}

// New builds the echo instance with every route registered.
func New(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.ErrorHandler(d.Log)

	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	if len(d.CORSOrigins) > 0 {
		e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins:     d.CORSOrigins,
			AllowCredentials: true,
			AllowMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut,
				http.MethodPatch, http.MethodDelete, http.MethodOptions,
			},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept, "Accept-Language"},
		}))
	}
	e.Use(d.Sessions.Middleware())

	RegisterRoutes(e, d.DB, d.Redis, d.UploadDir)
	RegisterAuth(e, handler.NewAuthHandler(d.Account, d.Sessions),
		middleware.NewTokenBucket(d.RateLimit, d.Redis, d.Log))
	RegisterCourses(e, handler.NewCourseHandler(d.Catalog), middleware.NewClientCache(d.ClientCache))
	RegisterApplications(e, handler.NewApplicationHandler(d.Enrollment))
	RegisterProfile(e, handler.NewProfileHandler(d.Account), d.AvatarMaxBytes)
	RegisterSupport(e, handler.NewSupportHandler(d.Support))
	RegisterReviews(e, handler.NewReviewHandler(d.Enrollment))
	return e
}

// RegisterRoutes registers the health checks and the static avatar directory.
func RegisterRoutes(e *echo.Echo, db *sql.DB, rdb *redis.Client, uploadDir string) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db, rdb))
	if uploadDir != "" {
		e.Static("/uploads", uploadDir)
	}
}

// RegisterAuth registers the action-dispatch auth endpoint behind the
// login rate limiter.
func RegisterAuth(e *echo.Echo, h *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	e.POST("/api/auth", h.Dispatch, limiter)
	e.GET("/api/auth/session", h.Session, middleware.Authenticated)
}

// RegisterCourses registers the catalog. Reads are public; writes are
// admin only.
func RegisterCourses(e *echo.Echo, h *handler.CourseHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/api/courses")
	g.GET("", h.List)
	g.GET("/popular", h.Popular, cache)
	g.GET("/search", h.Search)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, middleware.AdminOnly)
	g.PUT("/:id", h.Update, middleware.AdminOnly)
	g.DELETE("/:id", h.Delete, middleware.AdminOnly)
}

// RegisterApplications registers the enrollment lifecycle. Status updates
// are open to any logged-in user; the service decides what members may do.
func RegisterApplications(e *echo.Echo, h *handler.ApplicationHandler) {
	g := e.Group("/api/applications")
	g.POST("", h.Create, middleware.MemberOnly)
	g.GET("", h.List, middleware.Authenticated)
	g.PUT("", h.UpdateStatus, middleware.Authenticated)
	g.PUT("/:id", h.UpdateStatus, middleware.Authenticated)
	g.PATCH("", h.LeaveFeedback, middleware.MemberOnly)
	g.PATCH("/:id", h.LeaveFeedback, middleware.MemberOnly)
}

// RegisterProfile registers the caller's own profile.
func RegisterProfile(e *echo.Echo, h *handler.ProfileHandler, avatarMaxBytes int64) {
	g := e.Group("/api/profile", middleware.MemberOnly)
	g.GET("", h.Get)
	g.PUT("", h.Update)
	g.POST("/avatar", h.UploadAvatar,
		echomw.BodyLimit(strconv.FormatInt(avatarMaxBytes+multipartOverhead, 10)+"B"))
}

// RegisterSupport registers the ticket queue.
func RegisterSupport(e *echo.Echo, h *handler.SupportHandler) {
	g := e.Group("/api/support", middleware.Authenticated)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, middleware.MemberOnly)
	g.PUT("", h.Update)
	g.PUT("/:id", h.Update)
}

// RegisterReviews registers the public feedback feed.
func RegisterReviews(e *echo.Echo, h *handler.ReviewHandler) {
	e.GET("/api/reviews", h.List)
}
