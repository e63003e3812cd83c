package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"puretask/internal/config"
	"puretask/internal/middleware"
	"puretask/internal/modules/booking"
	"puretask/internal/modules/payout"
	"puretask/internal/modules/pricing"
	"puretask/internal/pkg/jwt"
	"puretask/internal/pkg/lock"
	"puretask/internal/repository"
)

// App holds the wired services and the HTTP router.
type App struct {
	Router   *gin.Engine
	Pricing  *pricing.Service
	Payouts  *payout.Service
	Bookings *booking.Service
	Tokens   *jwt.Service
}

// NewLocker returns a redis locker when REDIS_ADDR is set, otherwise an
// in-process one. The returned func closes the redis client.
func NewLocker(ctx context.Context, cfg *config.Config) (lock.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		log.Println("level=info msg=\"using in-process payout lock\"")
		return lock.NewMemoryLocker(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	log.Printf("level=info msg=\"using redis payout lock\" addr=%s ttl=%s", cfg.RedisAddr, cfg.LockTTL)
	return lock.NewRedisLocker(client, cfg.LockTTL), func() { _ = client.Close() }, nil
}

func New(db *gorm.DB, cfg *config.Config, locker lock.Locker) *App {
	cleanerRepo := repository.NewCleanerRepository(db)
	ruleRepo := repository.NewPricingRuleRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	earningRepo := repository.NewEarningRepository(db)
	payoutRepo := repository.NewPayoutRepository(db)

	tokens := jwt.New(cfg.JWTSecret, cfg.JWTTTL)

	pricingService := pricing.NewService(cleanerRepo, ruleRepo, bookingRepo, cfg.BusinessLocation, log.Printf)
	payoutService := payout.NewService(earningRepo, payoutRepo, locker, cfg.Payout, cfg.BusinessLocation, log.Printf)
	bookingService := booking.NewService(bookingRepo, pricingService, payoutService, cleanerRepo, log.Printf)

	r := gin.New()
	if cfg.AppEnv != "test" {
		r.Use(gin.Logger())
	}
	r.Use(middleware.ErrorLogger(), middleware.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	authed := v1.Group("")
	authed.Use(middleware.JWTAuth(tokens))
	admin := v1.Group("/admin")
	admin.Use(middleware.JWTAuth(tokens), middleware.AdminOnly())
	cleaner := v1.Group("")
	cleaner.Use(middleware.JWTAuth(tokens), middleware.CleanerOnly())
	internal := v1.Group("/internal")
	internal.Use(middleware.InternalTokenAuth(cfg.InternalJobToken))

	pricing.NewHandler(pricingService).RegisterRoutes(authed, admin)
	booking.NewHandler(bookingService).RegisterRoutes(authed, admin)
	payout.NewHandler(payoutService).RegisterRoutes(cleaner, admin, internal)

	return &App{
		Router:   r,
		Pricing:  pricingService,
		Payouts:  payoutService,
		Bookings: bookingService,
		Tokens:   tokens,
	}
}
