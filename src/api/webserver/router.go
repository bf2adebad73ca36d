package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hellowinnielee/Art-detective/src/api/config"
	"github.com/hellowinnielee/Art-detective/src/api/data"
	"github.com/hellowinnielee/Art-detective/src/api/discover"
	"github.com/hellowinnielee/Art-detective/src/api/fetcher"
	"github.com/hellowinnielee/Art-detective/src/api/listing"
)

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "https://art-detective.app"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	listings := data.NewListingStore(db)
	svc := listing.NewService(
		fetcher.New(time.Duration(cfg.FetchTimeoutSec)*time.Second, cfg.ProxyBase),
		listings,
	)

	authH := NewAuth(db, []byte(cfg.JWTSecret))
	snapH := NewSnapshots(svc, rdb, cfg.PlaceholderMode)
	watchH := NewWatchlist(db, listings, snapH)
	followH := NewFollows(db)
	discoverH := NewDiscover(discover.NewClient(cfg.DiscoverAPIBase), rdb)

	// Public routes are limited per client IP; secured routes get a second,
	// per-user window once the JWT middleware has resolved the user id.
	ipLimiter := NewRateLimiter(30, time.Minute)
	userLimiter := NewRateLimiter(60, time.Minute)

	v1 := r.Group("/v1")
	v1.Use(RateLimitMiddleware(ipLimiter))
	{
		v1.POST("/auth/register", authH.Register)
		v1.POST("/auth/login", authH.Login)

		v1.POST("/snapshot", snapH.Build)
		v1.GET("/discover", discoverH.Feed)

		secured := v1.Group("")
		secured.Use(JWTMiddleware([]byte(cfg.JWTSecret)))
		secured.Use(RateLimitMiddleware(userLimiter))
		{
			secured.POST("/watchlist", watchH.Add)
			secured.GET("/watchlist", watchH.List)
			secured.DELETE("/watchlist/:listingId", watchH.Remove)
			secured.POST("/watchlist/:listingId/recheck", watchH.Recheck)

			secured.POST("/follows", followH.Create)
			secured.GET("/follows", followH.List)
			secured.DELETE("/follows/:id", followH.Delete)
		}
	}

	return r
}
