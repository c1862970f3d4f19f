// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	_ "boothreserve/docs"
	"boothreserve/internal/availability"
	"boothreserve/internal/catalog"
	"boothreserve/internal/promos"
	"boothreserve/internal/reservations"
	"boothreserve/internal/shared/config"
	"boothreserve/internal/shared/database"
	"boothreserve/pkg/cache"
	"boothreserve/pkg/clock"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Router holds all route dependencies
type Router struct {
	config *config.Config
	db     *database.DB
	clock  clock.Clock

	booths    *catalog.Catalog
	promoRepo promos.Repository
	store     reservations.Store
	projector *availability.Projector
	sweeper   *reservations.Sweeper
	hooks     *reservations.CommitHooks
}

// NewRouter wires the reservation engine. The store driver decides between
// Postgres and process memory; Redis, when present, backs the availability cache.
func NewRouter(cfg *config.Config, db *database.DB, booths *catalog.Catalog, notifier reservations.Notifier, clk clock.Clock) *Router {
	r := &Router{
		config: cfg,
		db:     db,
		clock:  clk,
		booths: booths,
	}

	if db.GetPostgreSQL() != nil {
		r.promoRepo = promos.NewRepository(db.GetPostgreSQL())
		r.store = reservations.NewRepository(db.GetPostgreSQL())
	} else {
		r.promoRepo = promos.NewMemoryRepository()
		r.store = reservations.NewMemoryStore()
	}

	var availabilityCache availability.Cache
	if db.GetRedis() != nil {
		availabilityCache = cache.NewService(db.GetRedis())
	}
	r.projector = availability.NewProjector(r.store, booths, availabilityCache, clk, cfg.Reservation.AvailabilityCacheTTL)

	r.hooks = reservations.NewCommitHooks(notifier, r.projector)
	r.sweeper = reservations.NewSweeper(r.store, r.hooks, clk, reservations.SweeperConfig{
		Interval:  cfg.Reservation.SweepInterval,
		BatchSize: cfg.Reservation.SweepBatchSize,
	})
	if db.GetRedis() != nil {
		r.sweeper.SetLease(reservations.NewRedisLease(db.GetRedis(), reservations.SweepLeaseKey, cfg.Reservation.SweepLeaseTTL))
	}

	return r
}

// Sweeper returns the expiry sweeper so the caller can own its lifecycle
func (r *Router) Sweeper() *reservations.Sweeper {
	return r.sweeper
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupCatalogRoutes(api)
		r.setupPromoRoutes(api)
		r.setupReservationRoutes(api)
		r.setupAvailabilityRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "boothreserve",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "boothreserve",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":          "operational",
			"api_version":     r.config.APIVersion,
			"store_driver":    r.config.Reservation.StoreDriver,
			"redis":           r.db.GetRedis() != nil,
			"sweeper_running": r.sweeper.Running(),
			"booths":          r.booths.Len(),
			"timestamp":       time.Now(),
		})
	})
}

func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	catalog.SetupCatalogRoutes(rg, catalog.NewController(r.booths))
}

func (r *Router) setupPromoRoutes(rg *gin.RouterGroup) {
	promoService := promos.NewService(r.promoRepo, r.clock)
	promos.SetupPromoRoutes(rg, promos.NewController(promoService))
}

func (r *Router) setupReservationRoutes(rg *gin.RouterGroup) {
	reservationService := reservations.NewService(
		r.store,
		r.booths,
		promos.NewEvaluator(r.promoRepo),
		r.sweeper,
		r.hooks,
		r.clock,
		r.config.Reservation.HoldDuration,
	)
	reservations.SetupReservationRoutes(rg, reservations.NewController(reservationService))
}

func (r *Router) setupAvailabilityRoutes(rg *gin.RouterGroup) {
	availability.SetupAvailabilityRoutes(rg, availability.NewController(r.projector, r.clock))
}
