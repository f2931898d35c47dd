package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"poolbnb/internal/app/events"
	authsvc "poolbnb/internal/app/services/auth"
	bookingsvc "poolbnb/internal/app/services/booking"
	poolsvc "poolbnb/internal/app/services/pool"
	reviewsvc "poolbnb/internal/app/services/review"
	domainbooking "poolbnb/internal/domain/booking"
	domainpool "poolbnb/internal/domain/pool"
	domainreview "poolbnb/internal/domain/review"
	domainschedule "poolbnb/internal/domain/schedule"
	"poolbnb/internal/domain/shared/daterange"
	domainuser "poolbnb/internal/domain/user"
	"poolbnb/internal/infra/broker/kafka"
	"poolbnb/internal/infra/config"
	mongodb "poolbnb/internal/infra/db/mongo"
	ginserver "poolbnb/internal/infra/http/gin"
	"poolbnb/internal/infra/obs"
	"poolbnb/internal/infra/security"
	"poolbnb/internal/infra/storage/memory"
	"poolbnb/internal/infra/storage/s3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.BcryptCost = 10
		cfg.SessionTTL = 24 * time.Hour
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application startup failed", "error", err)
		os.Exit(1)
	}
	defer app.close(logger)

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	fixturesPath := getenv("POOL_FIXTURES", "")
	if fixturesPath == "" {
		fixturesPath = defaultPoolFixturesPath()
	}
	if err := app.loadPoolFixtures(ctx, fixturesPath, logger); err != nil {
		logger.Warn("pool fixtures load failed", "error", err, "path", fixturesPath)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers ginserver.Handlers
	ready    func() error

	pools     domainpool.Repository
	schedules domainschedule.Repository

	mongo    *mongodb.Client
	producer *kafka.Producer
	sessions *memory.SessionStore
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (*application, error) {
	app := &application{ready: func() error { return nil }}

	var (
		users    domainuser.Repository
		bookings domainbooking.Repository
		reviews  domainreview.Repository
	)
	if cfg.MongoURI != "" {
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		app.mongo = client
		app.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		users = mongodb.NewUserRepository(client.DB)
		app.pools = mongodb.NewPoolRepository(client.DB)
		app.schedules = mongodb.NewScheduleRepository(client.DB)
		bookings = mongodb.NewBookingRepository(client.DB)
		reviews = mongodb.NewReviewRepository(client.DB)
		logger.Info("storage ready", "backend", "mongo", "database", cfg.MongoDB)
	} else {
		users = memory.NewUserRepository()
		app.pools = memory.NewPoolRepository()
		app.schedules = memory.NewScheduleRepository()
		bookings = memory.NewBookingRepository()
		reviews = memory.NewReviewRepository()
		logger.Warn("storage ready", "backend", "memory")
	}

	var publisher events.Publisher = events.Discard{}
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
		if err != nil {
			return nil, fmt.Errorf("connect kafka: %w", err)
		}
		app.producer = producer
		publisher = kafka.EventPublisher{Producer: producer, Topic: cfg.KafkaTopic}
		logger.Info("event publisher ready", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	var uploader s3.Uploader = s3.NoopUploader{}
	if cfg.S3Endpoint != "" {
		client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
		if err != nil {
			return nil, fmt.Errorf("connect s3: %w", err)
		}
		uploader = client
		logger.Info("photo storage ready", "bucket", cfg.S3Bucket)
	}

	app.sessions = memory.NewSessionStore()

	auth := &authsvc.Service{
		Users:      users,
		Sessions:   app.sessions,
		Passwords:  security.BcryptHasher{Cost: cfg.BcryptCost},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}
	pools := &poolsvc.Service{
		Pools:     app.pools,
		Schedules: app.schedules,
		Events:    publisher,
		Logger:    logger,
	}
	bookingService := &bookingsvc.Service{
		Pools:     app.pools,
		Schedules: app.schedules,
		Bookings:  bookings,
		Events:    publisher,
		Logger:    logger,
	}
	reviewService := &reviewsvc.Service{
		Pools:   app.pools,
		Reviews: reviews,
	}

	app.handlers = ginserver.Handlers{
		Auth:           ginserver.AuthHandler{Service: auth, Logger: logger},
		Me:             ginserver.MeHandler{Auth: auth, Bookings: bookingService, Pools: pools, Logger: logger},
		Pool:           ginserver.PoolHandler{Service: pools, Uploader: uploader, Logger: logger},
		Booking:        ginserver.BookingHandler{Service: bookingService, Logger: logger},
		Review:         ginserver.ReviewHandler{Service: reviewService, Logger: logger},
		AuthMiddleware: ginserver.AuthMiddleware{Service: auth, Logger: logger}.Handle,
	}
	return app, nil
}

func (a *application) close(logger *slog.Logger) {
	if a.sessions != nil {
		a.sessions.Stop()
	}
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			logger.Error("kafka close failed", "error", err)
		}
	}
	if a.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.mongo.Disconnect(ctx); err != nil {
			logger.Error("mongo disconnect failed", "error", err)
		}
	}
}

// loadPoolFixtures seeds featured listings so a fresh deployment has a
// browsable catalog. Pools that already exist are left untouched.
func (a *application) loadPoolFixtures(ctx context.Context, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("pool fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}

	var fixtures []poolFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now().UTC()
	for _, fx := range fixtures {
		if _, err := a.pools.ByID(ctx, domainpool.ID(fx.ID)); err == nil {
			continue
		}
		windows := make([]daterange.DateRange, 0, len(fx.Availability))
		for _, w := range fx.Availability {
			r, err := parseFixtureRange(w.StartDate, w.EndDate)
			if err != nil {
				logger.Error("fixture window invalid", "pool_id", fx.ID, "error", err)
				continue
			}
			windows = append(windows, r)
		}
		p, err := domainpool.New(domainpool.CreateParams{
			ID:               domainpool.ID(fx.ID),
			Host:             domainpool.HostID(fx.Host),
			Name:             fx.Name,
			Location:         fx.Location,
			Description:      fx.Description,
			HourlyPriceCents: fx.HourlyPriceCents,
			Availability:     windows,
			Amenities:        append([]string(nil), fx.Amenities...),
			Photos:           append([]string(nil), fx.Photos...),
			Featured:         fx.Featured,
			Now:              now,
		})
		if err != nil {
			logger.Error("fixture invalid", "pool_id", fx.ID, "error", err)
			continue
		}
		if err := a.pools.Save(ctx, p); err != nil {
			logger.Error("cannot store fixture pool", "pool_id", fx.ID, "error", err)
			continue
		}
		if err := a.schedules.Save(ctx, domainschedule.New(p.ID, p.OpenWindows())); err != nil {
			logger.Error("cannot seed fixture schedule", "pool_id", fx.ID, "error", err)
			continue
		}
		logger.Info("pool fixture imported", "pool_id", p.ID)
	}
	return nil
}

type poolFixture struct {
	ID               string          `json:"id"`
	Host             string          `json:"host"`
	Name             string          `json:"name"`
	Location         string          `json:"location"`
	Description      string          `json:"description"`
	HourlyPriceCents int64           `json:"hourly_price_cents"`
	Availability     []fixtureWindow `json:"availability"`
	Amenities        []string        `json:"amenities"`
	Photos           []string        `json:"photos"`
	Featured         bool            `json:"featured"`
}

type fixtureWindow struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func parseFixtureRange(start, end string) (daterange.DateRange, error) {
	s, err := time.Parse(time.RFC3339, strings.TrimSpace(start))
	if err != nil {
		return daterange.DateRange{}, err
	}
	e, err := time.Parse(time.RFC3339, strings.TrimSpace(end))
	if err != nil {
		return daterange.DateRange{}, err
	}
	return daterange.New(s, e)
}

func defaultPoolFixturesPath() string {
	candidates := []string{
		filepath.Join("data", "pools.json"),
		filepath.Join("backend", "data", "pools.json"),
	}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return candidates[0]
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
