package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/todolist/internal/identity/application/auth"
	"github.com/felixgeelhaar/todolist/internal/identity/application/users"
	identityDomain "github.com/felixgeelhaar/todolist/internal/identity/domain"
	identityPersistence "github.com/felixgeelhaar/todolist/internal/identity/infrastructure/persistence"
	"github.com/felixgeelhaar/todolist/internal/productivity/application/services"
	"github.com/felixgeelhaar/todolist/internal/productivity/domain/task"
	"github.com/felixgeelhaar/todolist/internal/productivity/infrastructure/persistence"
	sharedApplication "github.com/felixgeelhaar/todolist/internal/shared/application"
	"github.com/felixgeelhaar/todolist/internal/shared/infrastructure/database"
	_ "github.com/felixgeelhaar/todolist/internal/shared/infrastructure/database/postgres" // Register PostgreSQL driver
	_ "github.com/felixgeelhaar/todolist/internal/shared/infrastructure/database/sqlite"   // Register SQLite driver
	"github.com/felixgeelhaar/todolist/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/todolist/internal/shared/infrastructure/migrations"
	"github.com/felixgeelhaar/todolist/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database
	DBConn   database.Connection
	DBDriver database.Driver

	// Redis, nil when sessions are kept in memory
	RedisClient *redis.Client

	// Repositories
	UserRepo identityDomain.UserRepository
	TaskRepo task.Repository

	// Unit of Work
	UnitOfWork sharedApplication.UnitOfWork

	// Publishers
	EventPublisher    eventbus.Publisher
	DomainPublisher   *eventbus.DomainEventPublisher
	InProcessEventBus *eventbus.InProcessBus

	// Auth
	Hasher        *auth.PasswordHasher
	Tokens        *auth.TokenManager
	Sessions      auth.SessionStore
	Authenticator *auth.Authenticator

	// Services
	UserService *users.Service
	TaskService *services.TaskService
}

// NewContainer creates and wires all dependencies. In local mode the SQLite
// schema is migrated on start; PostgreSQL deployments run `todolist migrate`.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{
		Config: cfg,
		Logger: logger,
	}

	conn, err := openDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	c.DBConn = conn
	c.DBDriver = conn.Driver()
	logger.Info("connected to database", "driver", c.DBDriver)

	if cfg.IsLocalMode() {
		if _, err := migrations.Run(ctx, conn, logger); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Create repositories
	c.UserRepo = identityPersistence.NewUserRepository(conn)
	c.TaskRepo = persistence.NewTaskRepository(conn)
	c.UnitOfWork = database.NewUnitOfWork(conn)

	// Create event publisher
	if err := c.initPublisher(); err != nil {
		c.Close()
		return nil, err
	}

	// Create sessions
	if err := c.initSessions(ctx); err != nil {
		c.Close()
		return nil, err
	}

	// Create auth
	c.Hasher = auth.NewPasswordHasher(cfg.BcryptCost)
	c.Tokens = auth.NewTokenManager(auth.TokenConfig{
		Secret: cfg.JWTSecret,
		TTL:    cfg.JWTTTL,
	})
	c.Authenticator = auth.NewAuthenticator(c.UserRepo, c.Hasher, c.Sessions, c.Tokens, logger)

	// Create services
	c.UserService = users.NewService(c.UserRepo, c.Hasher, c.UnitOfWork, c.DomainPublisher, logger)
	c.TaskService = services.NewTaskService(c.TaskRepo, c.UserRepo, c.UnitOfWork, c.DomainPublisher, logger)

	logger.Info("container initialized",
		"local_mode", cfg.IsLocalMode(),
		"redis", c.RedisClient != nil,
	)

	return c, nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (database.Connection, error) {
	dbCfg := database.Config{
		Driver:     database.Driver(cfg.DatabaseDriver),
		URL:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
		MaxConns:   cfg.DatabaseMaxConns,
	}
	if cfg.IsLocalMode() {
		dbCfg.Driver = database.DriverSQLite
	}

	conn, err := database.NewConnection(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

// initPublisher picks RabbitMQ behind a circuit breaker when configured. Local
// mode logs events through the in-process bus; anything else drops them.
func (c *Container) initPublisher() error {
	cfg, logger := c.Config, c.Logger

	switch {
	case cfg.RabbitMQURL != "":
		publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			if !cfg.IsDevelopment() {
				return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
			}
			logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
			c.EventPublisher = eventbus.NewNoopPublisher(logger)
		} else {
			c.EventPublisher = eventbus.NewBreakerPublisher(publisher, eventbus.DefaultBreakerConfig(), logger)
		}
	case cfg.IsLocalMode():
		bus := eventbus.NewInProcessBus(logger)
		bus.Subscribe("#", eventbus.ActivityLogHandler(logger))
		c.InProcessEventBus = bus
		c.EventPublisher = bus
	default:
		c.EventPublisher = eventbus.NewNoopPublisher(logger)
	}

	c.DomainPublisher = eventbus.NewDomainEventPublisher(c.EventPublisher, logger)
	return nil
}

// initSessions uses Redis when configured and reachable. Development falls
// back to memory when Redis is down.
func (c *Container) initSessions(ctx context.Context) error {
	cfg, logger := c.Config, c.Logger

	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			if !cfg.IsDevelopment() {
				return fmt.Errorf("failed to parse Redis URL: %w", err)
			}
			logger.Warn("invalid Redis URL, sessions will be kept in memory", "error", err)
		} else {
			client := redis.NewClient(opt)
			if err := client.Ping(ctx).Err(); err != nil {
				_ = client.Close()
				if !cfg.IsDevelopment() {
					return fmt.Errorf("failed to connect to Redis: %w", err)
				}
				logger.Warn("Redis not available, sessions will be kept in memory", "error", err)
			} else {
				c.RedisClient = client
				c.Sessions = auth.NewRedisSessionStore(client, cfg.SessionTTL)
				logger.Info("connected to Redis")
				return nil
			}
		}
	}

	c.Sessions = auth.NewMemorySessionStore(cfg.SessionTTL)
	return nil
}

// Migrate applies pending schema migrations and returns their versions.
func (c *Container) Migrate(ctx context.Context) ([]string, error) {
	return migrations.Run(ctx, c.DBConn, c.Logger)
}

// Close cleans up all resources.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing Redis connection", "error", err)
		} else {
			c.Logger.Info("Redis connection closed")
		}
	}

	if c.DBConn != nil {
		if err := c.DBConn.Close(); err != nil {
			c.Logger.Warn("error closing database connection", "error", err)
		} else {
			c.Logger.Info("database connection closed", "driver", c.DBDriver)
		}
	}
}
