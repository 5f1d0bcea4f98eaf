package di

import (
	"todo-api/application/serviceimpl"
	"todo-api/domain/ports"
	"todo-api/domain/repositories"
	"todo-api/domain/services"
	natspkg "todo-api/infrastructure/nats"
	"todo-api/infrastructure/postgres"
	redispkg "todo-api/infrastructure/redis"
	"todo-api/interfaces/api/handlers"
	"todo-api/pkg/config"
	"todo-api/pkg/logger"
	"todo-api/pkg/scheduler"

	"gorm.io/gorm"
)

type Container struct {
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client // optional, rate limiting
	NATSClient     *natspkg.Client  // optional, lifecycle events
	EventPublisher ports.EventPublisher
	EventScheduler scheduler.EventScheduler

	// Repositories
	UserRepository repositories.UserRepository
	TodoRepository repositories.TodoRepository

	// Services
	UserService     services.UserService
	TodoService     services.TodoService
	ReminderService *serviceimpl.ReminderService
}

func NewContainer() *Container {
	return &Container{}
}

func (c *Container) Initialize() error {
	if err := c.initConfig(); err != nil {
		return err
	}
	if err := c.initLogger(); err != nil {
		return err
	}
	if err := c.initInfrastructure(); err != nil {
		return err
	}
	c.initRepositories()
	c.initServices()
	return c.initScheduler()
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized", "level", c.Config.Log.Level, "format", c.Config.Log.Format)
	return nil
}

func (c *Container) initInfrastructure() error {
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if err := postgres.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated")

	// Redis is optional; without it the rate limiter is a pass-through.
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, rate limiting disabled", "error", err)
		} else {
			c.RedisClient = redisClient
		}
	}

	// NATS is optional; without it lifecycle events are dropped.
	c.EventPublisher = natspkg.NewNoopPublisher()
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{URL: c.Config.NATS.URL})
		if err != nil {
			logger.Warn("NATS unavailable, event publishing disabled", "error", err)
		} else {
			c.NATSClient = natsClient
			c.EventPublisher = natspkg.NewPublisher(natsClient)
		}
	}

	return nil
}

func (c *Container) initRepositories() {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.TodoRepository = postgres.NewTodoRepository(c.DB)
}

func (c *Container) initServices() {
	c.UserService = serviceimpl.NewUserService(c.UserRepository, c.Config.JWT.Secret)
	c.TodoService = serviceimpl.NewTodoService(c.TodoRepository, c.EventPublisher)
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	c.ReminderService = serviceimpl.NewReminderService(
		serviceimpl.ReminderConfig{
			Cron:   c.Config.Reminder.Cron,
			Window: c.Config.Reminder.Window,
		},
		c.TodoRepository,
		c.EventPublisher,
		c.EventScheduler,
	)

	if err := c.ReminderService.RegisterSweepJob(); err != nil {
		return err
	}

	c.EventScheduler.Start()
	return nil
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		TodoService: c.TodoService,
		UserService: c.UserService,
	}
}

func (c *Container) Cleanup() error {
	if c.EventScheduler != nil {
		c.EventScheduler.Stop()
	}
	if c.NATSClient != nil {
		c.NATSClient.Close()
	}
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Redis close failed", "error", err)
		}
	}
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			return sqlDB.Close()
		}
	}
	return nil
}
