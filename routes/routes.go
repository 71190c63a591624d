package routes

import (
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/saqibam92/BlashBerry-nextjs/config"
	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/middleware"
	"github.com/saqibam92/BlashBerry-nextjs/services"
	"github.com/saqibam92/BlashBerry-nextjs/uploads"
)

// Deps is everything the route tables hand to controllers.
type Deps struct {
	Services *services.Services
	Auth     middleware.Authenticator
	Uploads  *uploads.Store
}

// NewRouter builds the gin engine with the global middleware stack and every
// route group.
func NewRouter(cfg *config.Config, d Deps) *gin.Engine {
	useJSONFieldNames()

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Error().Err(err).Msg("invalid TRUSTED_PROXIES, trusting no proxy")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(middleware.Recovery(), middleware.RequestLogger())
	r.MaxMultipartMemory = 32 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Static(uploads.PublicPrefix, d.Uploads.Root())

	api := r.Group("/api")
	api.Use(middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware())
	SetupRoutes(api, d)

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "API endpoint not found: "+c.Request.URL.Path)
	})
	return r
}

// SetupRoutes is the single entry point that wires every group under /api.
func SetupRoutes(api *gin.RouterGroup, d Deps) {
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "BlashBerry API is running",
			"timestamp": time.Now().UTC(),
		})
	})

	SetupAuthRoutes(api, d)
	SetupProductRoutes(api, d)
	SetupOrderRoutes(api, d)
	SetupAdminRoutes(api, d)
}

var tagNameOnce sync.Once

// useJSONFieldNames makes binding errors report json field names.
func useJSONFieldNames() {
	tagNameOnce.Do(registerJSONTagNames)
}

func registerJSONTagNames() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	}
}
