package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"spacecatalog-backend/internal/config"
	infraCache "spacecatalog-backend/internal/infrastructure/cache"
	"spacecatalog-backend/internal/infrastructure/database"
	"spacecatalog-backend/pkg/cache"
	"spacecatalog-backend/pkg/jwt"

	"spacecatalog-backend/internal/domains/space"
	spaceHandler "spacecatalog-backend/internal/domains/space/handler"
	spaceRepo "spacecatalog-backend/internal/domains/space/repository"
	spaceService "spacecatalog-backend/internal/domains/space/service"
	"spacecatalog-backend/internal/domains/taxonomy"
	taxonomyHandler "spacecatalog-backend/internal/domains/taxonomy/handler"
	taxonomyRepo "spacecatalog-backend/internal/domains/taxonomy/repository"
	taxonomyService "spacecatalog-backend/internal/domains/taxonomy/service"
	"spacecatalog-backend/internal/domains/user"
	userHandler "spacecatalog-backend/internal/domains/user/handler"
	userRepo "spacecatalog-backend/internal/domains/user/repository"
	userService "spacecatalog-backend/internal/domains/user/service"
)

// Container holds every dependency of the application. Initialization
// order matters: config → infrastructure → repositories → services →
// handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// Repositories
	UserRepo     user.Repository
	TaxonomyRepo taxonomy.Repository
	SpaceRepo    space.Repository

	// Reconciler validates taxonomy references for space mutations
	Reconciler *taxonomy.Reconciler

	// Services
	UserService     user.Service
	TypeService     taxonomy.Service
	CategoryService taxonomy.Service
	FeatureService  taxonomy.Service
	SpaceService    space.Service

	// Handlers
	UserHandler     *userHandler.UserHandler
	TypeHandler     *taxonomyHandler.TaxonomyHandler
	CategoryHandler *taxonomyHandler.TaxonomyHandler
	FeatureHandler  *taxonomyHandler.TaxonomyHandler
	SpaceHandler    *spaceHandler.SpaceHandler
}

// NewContainer builds the whole dependency graph. Any failure here stops
// the application from starting.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// Step 1: configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// Step 2: database
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	// Step 3: cache. Redis being down is not fatal, reads fall through to
	// the database.
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}
	c.Cache = redisCache

	// Step 4: JWT manager
	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.TaxonomyRepo = taxonomyRepo.NewPostgresRepository(pool)
	c.SpaceRepo = spaceRepo.NewPostgresRepository(pool)

	c.Reconciler = taxonomy.NewReconciler(c.TaxonomyRepo)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)

	// One taxonomy service per kind, sharing repository and cache
	c.TypeService = taxonomyService.NewTaxonomyService(taxonomy.KindType, c.TaxonomyRepo, c.Cache)
	c.CategoryService = taxonomyService.NewTaxonomyService(taxonomy.KindCategory, c.TaxonomyRepo, c.Cache)
	c.FeatureService = taxonomyService.NewTaxonomyService(taxonomy.KindFeature, c.TaxonomyRepo, c.Cache)

	c.SpaceService = spaceService.NewSpaceService(c.SpaceRepo, c.Reconciler)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.TypeHandler = taxonomyHandler.NewTaxonomyHandler(c.TypeService)
	c.CategoryHandler = taxonomyHandler.NewTaxonomyHandler(c.CategoryService)
	c.FeatureHandler = taxonomyHandler.NewTaxonomyHandler(c.FeatureService)
	c.SpaceHandler = spaceHandler.NewSpaceHandler(c.SpaceService)
}

// Cleanup releases resources on shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis: %v", err)
			} else {
				log.Println("✅ Redis connections closed")
			}
		}
	}
}
