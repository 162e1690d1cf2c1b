package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Asror571/insta-server/config"
	"github.com/Asror571/insta-server/internal/application/ports"
	"github.com/Asror571/insta-server/internal/application/services"
	"github.com/Asror571/insta-server/internal/infrastructure/db/postgres"
	postRepo "github.com/Asror571/insta-server/internal/infrastructure/db/postgres/post"
	userRepo "github.com/Asror571/insta-server/internal/infrastructure/db/postgres/user"
	"github.com/Asror571/insta-server/internal/infrastructure/jwt"
	"github.com/Asror571/insta-server/internal/infrastructure/metrics"
	"github.com/Asror571/insta-server/internal/infrastructure/mq"
	"github.com/Asror571/insta-server/internal/infrastructure/storage"
	"github.com/Asror571/insta-server/internal/interface/api/rest"
	"github.com/Asror571/insta-server/internal/interface/api/rest/middleware"
	"github.com/Asror571/insta-server/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	blobs      *storage.Disk
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config; a missing .env is fine, defaults cover local runs
	if err = godotenv.Load(".env"); err != nil {
		logger.Info("no .env file, using environment and defaults")
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err = postgres.Migrate(ctx, logger, dbDsn); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	// blob storage
	blobs, err := storage.NewDisk(logger, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to prepare upload storage", zap.Error(err))
	}

	// rabbitMQ (optional: local runs work without a broker)
	var (
		rbMQ        ports.RabbitMQ
		rmqConsumer ports.RMQConsumer
	)
	if cfg.MQEnabled() {
		rabbitDsn, err := cfg.AMQPDSN()
		if err != nil {
			logger.Fatal("RabbitMQ config error", zap.Error(err))
		}
		rb := mq.New(cfg.MQ, logger)
		if err = rb.Connect(ctx, rabbitDsn); err != nil {
			logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
		}
		if err = rb.Init(); err != nil {
			logger.Fatal("failed init rabbitMQ", zap.Error(err))
		}
		consumer := rmqconsumer.New(cfg.MQ, logger)
		if err = consumer.Connect(rabbitDsn); err != nil {
			logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
		}
		if err = consumer.Init(); err != nil {
			logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
		}
		rbMQ = rb
		rmqConsumer = consumer
	} else {
		logger.Info("rabbitmq not configured, event publishing disabled")
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		blobs:      blobs,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mqConsumer: rmqConsumer,
	}, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq != nil && a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - the central place to launch and manage the server and its parallel
// workers through a single context.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.mq != nil {
		g.Go(func() error {
			a.mq.PublisherWorker(ctx)
			return nil
		})
	}
	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// repos
	users := userRepo.NewRepository(a.db)
	posts := postRepo.NewRepository(a.db)

	// services
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	authService := services.NewAuthService(jwtService)
	userService := services.NewUserService(users, posts, a.cfg.App.BcryptCost, a.mq, a.mCounter)
	postService := services.NewPostService(posts, a.blobs, a.logger, a.mq, a.mCounter)

	// controllers
	rest.NewAuthController(a.router, a.logger, userService, authService)
	rest.NewPostController(a.router, postService, a.logger, jwtService, userService)

	// uploaded blobs are served back as static content
	a.router.Static(rest.RouteUploads, a.blobs.Dir())

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
