package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"booklibrary-backend/internal/config"
	"booklibrary-backend/internal/domains/catalog"
	infraCache "booklibrary-backend/internal/infrastructure/cache"
	"booklibrary-backend/internal/infrastructure/database"
	"booklibrary-backend/internal/infrastructure/storage"
	"booklibrary-backend/pkg/cache"

	bookHandler "booklibrary-backend/internal/domains/book/handler"
	bookRepo "booklibrary-backend/internal/domains/book/repository"
	bookService "booklibrary-backend/internal/domains/book/service"
)

// Container holds every dependency of the application, wired in order:
// config, infrastructure, repositories, services, handlers.
type Container struct {
	Config  *config.Config
	DB      *database.PostgresDB
	Cache   cache.Cache
	Storage *storage.MinIOStorage

	BookRepo    bookRepo.BookRepository
	BookService *bookService.BookService
	BookHandler *bookHandler.Handler

	CatalogClient  *catalog.Client
	CatalogService *catalog.Service
	CatalogHandler *catalog.Handler

	redis *infraCache.RedisCache
}

func NewContainer() (*Container, error) {
	log.Println("[Container] Initializing...")

	c := &Container{}

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("[Container] Config loaded (environment: %s)", cfg.App.Environment)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 2. Database
	db := database.NewPostgresDB(cfg.DatabaseDBConfig())
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	c.DB = db
	log.Println("[Container] Database connected")

	// 3. Cache
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.redis = redisCache
	c.Cache = redisCache

	// 4. Object storage (covers)
	minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
	if err != nil {
		c.closeInfra()
		return nil, fmt.Errorf("failed to initialize minio: %w", err)
	}
	c.Storage = minioStorage
	log.Println("[Container] MinIO storage ready")

	// 5. Repositories
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool)

	// 6. Services
	c.BookService = bookService.NewService(c.BookRepo, c.Cache, c.Storage)
	c.CatalogClient = catalog.NewClient(cfg.OpenLibrary)
	c.CatalogService = catalog.NewService(c.CatalogClient, c.Cache)

	// 7. Handlers
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.CatalogHandler = catalog.NewHandler(c.CatalogService)

	log.Println("[Container] Ready")
	return c, nil
}

func (c *Container) Cleanup() {
	log.Println("[Container] Cleaning up...")
	c.closeInfra()
}

func (c *Container) closeInfra() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Printf("[Container] Redis close error: %v", err)
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
