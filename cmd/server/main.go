package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/tutor-marketplace/internal/config"
	"github.com/iliyamo/tutor-marketplace/internal/database"
	"github.com/iliyamo/tutor-marketplace/internal/handler"
	"github.com/iliyamo/tutor-marketplace/internal/logger"
	"github.com/iliyamo/tutor-marketplace/internal/middleware"
	"github.com/iliyamo/tutor-marketplace/internal/queue"
	"github.com/iliyamo/tutor-marketplace/internal/repository"
	"github.com/iliyamo/tutor-marketplace/internal/router"
	"github.com/iliyamo/tutor-marketplace/internal/seed"
	"github.com/iliyamo/tutor-marketplace/internal/service"
	"github.com/iliyamo/tutor-marketplace/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env wins
	cfg := config.Load()

	zl, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		zl.Warn("redis unavailable, cache and shared rate limit disabled")
	}

	var db *sql.DB
	snapshots := mustSnapshots(ctx, cfg, rdb, &db, zl)

	hasher := utils.PasswordHasher{Cost: cfg.BcryptCost}
	sharedHash, err := hasher.Hash(cfg.SharedPassword)
	if err != nil {
		zl.Fatal("hash seed password", zap.Error(err))
	}

	// ----- stores -----
	loc := cfg.Location()
	users := repository.NewUserRepo(seed.Users(sharedHash))
	tutors := repository.NewTutorRepo(seed.Tutors())
	reviews := repository.NewReviewRepo(tutors, time.Now)
	appts := repository.NewAppointmentRepo(seed.Appointments(), tutors, loc)
	msgs := repository.NewMessageRepo(seed.Messages(), seed.Conversations(), time.Now)

	var favSet repository.FavoriteSet = repository.NewMemoryFavoriteSet()
	if cfg.FavoritesBackend == "redis" {
		if rdb == nil {
			zl.Fatal("FAVORITES_BACKEND=redis but redis is unavailable")
		}
		favSet = repository.NewRedisFavoriteSet(rdb, cfg.RedisPrefix)
	}
	favs := repository.NewFavoriteRepo(favSet, tutors)

	// ----- notifications -----
	inbox := service.NewRecorder(50, cfg.Notify.InboxAudiences)
	targets := []service.Notifier{inbox}
	var publisher *service.AMQPPublisher
	if cfg.Notify.AMQP {
		publisher = service.NewAMQPPublisher(cfg.Notify.URL, cfg.Notify.Queue, zl)
		targets = append(targets, publisher)
	}
	notifier := service.NewFanout(zl, targets...)

	consumerDone := make(chan struct{})
	if cfg.Notify.ConsumerEnabled {
		c := &queue.Consumer{URL: cfg.Notify.URL, Queue: cfg.Notify.Queue, LogPath: cfg.Notify.LogPath, Log: zl}
		go func() {
			defer close(consumerDone)
			if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zl.Error("notification consumer stopped", zap.Error(err))
			}
		}()
	} else {
		close(consumerDone)
	}

	identity := service.NewIdentityService(users, snapshots, tutors, notifier, zl, service.IdentityOptions{
		Latency:  cfg.AuthLatency,
		Hasher:   hasher,
		EndedTTL: time.Duration(cfg.AccessTTLMin) * time.Minute,
	})

	var reminders *service.ReminderJob
	if cfg.Reminder.Enabled {
		reminders = service.NewReminderJob(appts, notifier, zl, cfg.Reminder.Lead, cfg.Reminder.Window, time.Now)
		if err := reminders.Start(cfg.Reminder.Schedule); err != nil {
			zl.Fatal("reminder schedule", zap.String("schedule", cfg.Reminder.Schedule), zap.Error(err))
		}
	}

	// ----- http -----
	authLimit := middleware.NewLimiterStore(cfg.AuthLimit.PerMinute, cfg.AuthLimit.Burst, 5*time.Minute)
	defer authLimit.Stop()

	guard := router.Guard{
		Secret:    cfg.JWTSecret,
		Sessions:  identity,
		Redis:     rdb,
		RateLimit: cfg.RateLimit,
		Cache:     cfg.Cache,
		AuthLimit: authLimit,
		Log:       zl,
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLogger(zl))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, identity, inbox), guard)
	router.RegisterCatalog(e, handler.NewTutorHandler(tutors, reviews), guard)
	router.RegisterFavorites(e, handler.NewFavoriteHandler(favs), guard)
	router.RegisterScheduling(e, handler.NewAppointmentHandler(appts, notifier, time.Now), guard)
	router.RegisterMessaging(e, handler.NewMessageHandler(msgs,
		repository.ContactDirectory{Tutors: tutors, Users: users}, notifier), guard)

	addr := ":" + cfg.Port
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env),
			zap.String("snapshots", cfg.SnapshotBackend), zap.String("favorites", cfg.FavoritesBackend))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zl.Info("shutting down")

	if reminders != nil {
		reminders.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Warn("http shutdown", zap.Error(err))
	}
	<-consumerDone
	if publisher != nil {
		_ = publisher.Close()
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if db != nil {
		_ = db.Close()
	}
}

// mustSnapshots builds the identity snapshot backend named by
// SNAPSHOT_BACKEND. The MySQL handle is returned through db for shutdown.
func mustSnapshots(ctx context.Context, cfg config.Config, rdb *redis.Client, db **sql.DB, zl *zap.Logger) repository.SnapshotStore {
	switch cfg.SnapshotBackend {
	case "", "memory":
		return repository.NewMemorySnapshotStore()
	case "redis":
		if rdb == nil {
			zl.Fatal("SNAPSHOT_BACKEND=redis but redis is unavailable")
		}
		ttl := time.Duration(cfg.AccessTTLMin) * time.Minute
		return repository.NewRedisSnapshotStore(rdb, cfg.RedisPrefix, ttl)
	case "mysql":
		conn, err := database.Open(ctx, database.DSN(cfg.DB))
		if err != nil {
			zl.Fatal("mysql", zap.Error(err))
		}
		store := repository.NewMySQLSnapshotStore(conn)
		if err := store.EnsureSchema(ctx); err != nil {
			zl.Fatal("mysql schema", zap.Error(err))
		}
		*db = conn
		return store
	}
	zl.Fatal("unknown SNAPSHOT_BACKEND", zap.String("value", cfg.SnapshotBackend))
	return nil
}
