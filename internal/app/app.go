package app

import (
	"fmt"
	"io"
	"time"

	"vivaham/internal/config"
	"vivaham/internal/events"
	"vivaham/internal/handlers"
	"vivaham/internal/logger"
	"vivaham/internal/middleware"
	"vivaham/internal/repositories"
	"vivaham/internal/services"
	"vivaham/internal/sessions"
	"vivaham/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

// App is the assembled HTTP application and the resources it owns.
type App struct {
	Fiber *fiber.App
	Store *repositories.Store
	Auth  *services.AuthService

	mqClient *rabbitmq.Client
	closers  []io.Closer
}

// Option customises New.
type Option func(*options)

type options struct {
	broker events.Broker
}

// WithBroker publishes domain events to broker instead of dialing RabbitMQ.
func WithBroker(broker events.Broker) Option {
	return func(o *options) { o.broker = broker }
}

// New builds the store, sessions, services and routes described by cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	a := &App{}

	store, err := a.openStore(cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Store = store

	var storage fiber.Storage
	if cfg.Session.Store == "redis" {
		redisStorage := sessions.NewRedisStorage(cfg)
		a.closers = append(a.closers, redisStorage)
		storage = redisStorage
	}
	sessionManager := sessions.New(sessions.Options{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.CookieSecure,
		Storage:    storage,
	})

	publisher, eventsBackend, err := a.openPublisher(cfg, o.broker)
	if err != nil {
		a.Close()
		return nil, err
	}

	guard := services.NewIdentityGuard(store.Users)
	authService := services.NewAuthService(store.Users, guard, cfg.JWT.Secret, cfg.JWT.TTL)
	userService := services.NewUserService(store.Users, guard)
	preferenceService := services.NewPreferenceService(store.Preferences, store.Users)
	interestService := services.NewInterestService(store.Interests, store.Users, publisher)
	messageService := services.NewMessageService(store.Messages, store.Users, publisher)
	storyService := services.NewStoryService(store.Stories, store.Users, publisher)
	a.Auth = authService

	requireAuth := middleware.AuthRequired(sessionManager, authService)

	app := fiber.New(fiber.Config{AppName: "vivaham"})
	accessLog := logger.Writer()
	a.closers = append(a.closers, accessLog)

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		Output: accessLog,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"store":    cfg.Store.Driver,
			"sessions": cfg.Session.Store,
			"events":   eventsBackend,
		})
	})

	api := app.Group("/api")
	handlers.NewAuthHandler(authService, sessionManager, requireAuth).RegisterRoutes(api)
	handlers.NewUserHandler(userService, requireAuth, cfg.FeaturedLimit).RegisterRoutes(api)
	handlers.NewPreferenceHandler(preferenceService, requireAuth).RegisterRoutes(api)
	handlers.NewInterestHandler(interestService, requireAuth).RegisterRoutes(api)
	handlers.NewMessageHandler(messageService, requireAuth).RegisterRoutes(api)
	handlers.NewStoryHandler(storyService, requireAuth).RegisterRoutes(api)
	a.Fiber = app

	if cfg.SeedSampleData {
		if err := Seed(store, authService); err != nil {
			a.Close()
			return nil, err
		}
	}
	return a, nil
}

func (a *App) openStore(cfg *config.Config) (*repositories.Store, error) {
	if cfg.Store.Driver == repositories.DriverMemory {
		return repositories.NewMemoryStore(), nil
	}
	db, err := repositories.OpenDatabase(cfg.Store.Driver, cfg.Store.DSN)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	a.closers = append(a.closers, sqlDB)
	return repositories.NewGORMStore(db), nil
}

func (a *App) openPublisher(cfg *config.Config, broker events.Broker) (events.Publisher, string, error) {
	if broker != nil {
		return events.NewBrokerPublisher(broker, logger.Log), "custom", nil
	}
	if cfg.RabbitMQ.URL == "" {
		return events.NopPublisher{}, "disabled", nil
	}
	client, err := rabbitmq.NewClient(rabbitmq.Config{
		URL:   cfg.RabbitMQ.URL,
		Queue: cfg.RabbitMQ.Queue,
		Log:   logger.Log.WithField("component", "rabbitmq"),
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to initialize RabbitMQ client: %w", err)
	}
	a.mqClient = client
	a.closers = append(a.closers, client)
	return events.NewBrokerPublisher(client, logger.Log), "rabbitmq", nil
}

// StartConsumer logs every event on the configured queue. It is a no-op
// without a RabbitMQ connection.
func (a *App) StartConsumer() error {
	if a.mqClient == nil {
		return nil
	}
	return a.mqClient.Consume(events.LogHandler(logger.Log.WithField("component", "consumer")))
}

// Close releases the resources opened by New, newest first.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("errors while closing application: %v", errs)
	}
	return nil
}
