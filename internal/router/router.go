package router // package router registers the HTTP routes of the API

import (
    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"
    "go.uber.org/zap"

    "github.com/iliyamo/tutor-marketplace/internal/config"
    "github.com/iliyamo/tutor-marketplace/internal/handler"
    "github.com/iliyamo/tutor-marketplace/internal/middleware"
    "github.com/iliyamo/tutor-marketplace/internal/model"
)

// Guard carries what the route groups need to authenticate requests and to
// protect shared resources.
type Guard struct {
    Secret    string
    Sessions  middleware.SessionResolver
    Redis     *redis.Client // nil disables the cache and the token bucket
    RateLimit config.RateLimitConfig
    Cache     config.CacheConfig
    AuthLimit *middleware.LimiterStore
    Log       *zap.Logger
}

// RegisterRoutes registers routes that do not require authentication.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the identity routes. Register and login are open
// but limited per email; the rest require a live session.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, g Guard) {
    open := e.Group("/v1/auth", middleware.AuthRateLimit(g.AuthLimit))
    open.POST("/register", a.Register)
    open.POST("/login", a.Login)

    auth := e.Group("/v1", middleware.JWTAuth(g.Secret, g.Sessions))
    auth.POST("/auth/logout", a.Logout)
    auth.GET("/me", a.Me)
    auth.PATCH("/me", a.UpdateMe)
    auth.GET("/notifications", a.Notifications)
}

// RegisterCatalog registers tutor browsing and the catalog writes. Reads
// resolve the viewer when a token is present; profile reads go through the
// response cache, which every successful catalog write invalidates.
func RegisterCatalog(e *echo.Echo, t *handler.TutorHandler, g Guard) {
    pub := e.Group("/v1/tutors",
        middleware.NewTokenBucket(g.RateLimit, g.Redis, g.Log),
        middleware.OptionalJWT(g.Secret, g.Sessions),
    )
    pub.GET("", t.Search)
    pub.GET("/results", t.Results)
    pub.GET("/:id", t.Get, middleware.NewRedisCache(g.Cache, g.Redis))

    w := e.Group("/v1/tutors",
        middleware.JWTAuth(g.Secret, g.Sessions),
        middleware.InvalidateOnWrite(g.Cache, g.Redis, g.Log),
    )
    w.PATCH("/:id", t.UpdateProfile, middleware.RequireRole(model.RoleTutor))
    w.PUT("/:id/reviews/:reviewID/response", t.RespondToReview, middleware.RequireRole(model.RoleTutor))
    w.POST("/:id/reviews", t.AddReview, middleware.RequireRole(model.RoleStudent))
}
