package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/Guyuepp/go-social-feed/domain"
	"github.com/Guyuepp/go-social-feed/internal/config"
	"github.com/Guyuepp/go-social-feed/internal/repository"
	"github.com/Guyuepp/go-social-feed/internal/repository/memory"
	mongoRepo "github.com/Guyuepp/go-social-feed/internal/repository/mongo"
	mysqlRepo "github.com/Guyuepp/go-social-feed/internal/repository/mysql"
	myRedisCache "github.com/Guyuepp/go-social-feed/internal/repository/redis"
	"github.com/Guyuepp/go-social-feed/internal/rest"
	"github.com/Guyuepp/go-social-feed/internal/rest/middleware"
	"github.com/Guyuepp/go-social-feed/internal/usecase/engagement"
	"github.com/Guyuepp/go-social-feed/internal/usecase/feed"
	"github.com/Guyuepp/go-social-feed/internal/usecase/notification"
	"github.com/Guyuepp/go-social-feed/internal/usecase/post"
	"github.com/Guyuepp/go-social-feed/internal/usecase/relationship"
	"github.com/Guyuepp/go-social-feed/internal/usecase/user"
	"github.com/Guyuepp/go-social-feed/internal/workers"
)

const shutdownTimeout = 5 * time.Second

type stores struct {
	users         domain.UserRepository
	posts         domain.PostRepository
	notifications domain.NotificationRepository
	close         func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	setupLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// prepare database
	st, err := openStores(ctx, cfg)
	if err != nil {
		logrus.Fatalf("could not open %s store: %v", cfg.StoreDriver, err)
	}
	defer st.close()

	// prepare cache
	postRepo := st.posts
	var bloomRepo domain.BloomRepository
	if cfg.Cache.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Addr(),
			Password: cfg.Cache.Pass,
			DB:       cfg.Cache.DB,
		})
		defer func() {
			if err := client.Close(); err != nil {
				logrus.Errorf("got error when closing the cache connection: %v", err)
			}
		}()
		if err := client.Ping(ctx).Err(); err != nil {
			logrus.Errorf("failed to open connection to cache: %v", err)
			return
		}
		postRepo = repository.NewPostRepository(st.posts, myRedisCache.NewPostCache(client), cfg.Cache.TTL)
		bloomRepo = myRedisCache.NewRedisBloomRepo(client, cfg.BloomFilterSize)
	} else {
		logrus.Info("CACHE_HOST is empty, running without post cache and bloom filter")
	}

	// Start worker
	repairer := workers.NewEdgeRepairWorker(st.users, cfg.Repair.QueueSize, cfg.Repair.Interval, cfg.Repair.MaxAttempts)
	repairDone := make(chan struct{})
	go func() {
		defer close(repairDone)
		repairer.Start(ctx)
	}()

	// Build service Layer
	engagementOpts := []engagement.Option{engagement.WithRetractOnUnlike(cfg.Engagement.RetractOnUnlike)}
	if bloomRepo != nil {
		engagementOpts = append(engagementOpts, engagement.WithBloomFilter(bloomRepo))
	}
	engagementSvc := engagement.NewService(postRepo, st.notifications, engagementOpts...)
	relationshipSvc := relationship.NewService(st.users, st.notifications, repairer,
		relationship.WithBlockedFollowRefused(cfg.Relationship.RefuseBlockedFollow))
	postSvc := post.NewService(postRepo, st.users, st.notifications, bloomRepo)
	userSvc := user.NewService(st.users)
	notificationSvc := notification.NewService(st.notifications)
	feedSvc := feed.NewService(postRepo, st.users)

	// Prepare bloom filter
	if bloomRepo != nil {
		if err := postSvc.InitBloomFilter(ctx); err != nil {
			logrus.Errorf("failed to init bloom filter: %v", err)
			return
		}
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	route.Use(middleware.SetRequestContextWithTimeout(cfg.ContextTimeout))

	rest.RegisterRoutes(route,
		middleware.AuthMiddleware(cfg.JWTSecret),
		rest.NewUserHandler(userSvc, relationshipSvc),
		rest.NewPostHandler(postSvc, engagementSvc),
		rest.NewFeedHandler(feedSvc),
		rest.NewNotificationHandler(notificationSvc),
	)

	// Start Server
	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: route,
	}
	go func() {
		logrus.Infof("Server is running on %s", cfg.ServerAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// shutdown
	<-ctx.Done()
	logrus.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Waiting for edge repair worker to drain...")
	select {
	case <-repairDone:
	case <-shutdownCtx.Done():
		logrus.Warn("edge repair worker did not drain before the shutdown deadline")
	}

	logrus.Info("Server exiting")
}

func setupLogger(cfg config.Log) {
	logrus.SetOutput(os.Stdout)
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("unknown LOG_LEVEL %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		return openMongo(ctx, cfg.Mongo)
	case config.DriverMemory:
		logrus.Warn("using the in-memory store, data is lost on exit")
		return &stores{
			users:         memory.NewUserRepository(),
			posts:         memory.NewPostRepository(),
			notifications: memory.NewNotificationRepository(),
			close:         func() {},
		}, nil
	default:
		return openMySQL(ctx, cfg.Database)
	}
}

func openMySQL(ctx context.Context, cfg config.Database) (*stores, error) {
	var (
		db  *gorm.DB
		err error
	)
	attempts := max(cfg.MaxRetry, 1)
	for i := range attempts {
		db, err = connectMySQL(ctx, cfg.DSN())
		if err == nil || i == attempts-1 {
			break
		}
		logrus.Warnf("failed to connect to database (attempt %d/%d): %v", i+1, attempts, err)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(cfg.RetryDelay):
		}
	}
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := mysqlRepo.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	return &stores{
		users:         mysqlRepo.NewUserRepository(db),
		posts:         mysqlRepo.NewPostRepository(db),
		notifications: mysqlRepo.NewNotificationRepository(db),
		close: func() {
			sqlDB, err := db.DB()
			if err != nil {
				logrus.Errorf("got error when getting sql.DB from gorm.DB: %v", err)
				return
			}
			if err := sqlDB.Close(); err != nil {
				logrus.Errorf("got error when closing the DB connection: %v", err)
			}
		},
	}, nil
}

func connectMySQL(ctx context.Context, dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func openMongo(ctx context.Context, cfg config.Mongo) (*stores, error) {
	client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}
	disconnect := func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			logrus.Errorf("got error when disconnecting from mongo: %v", err)
		}
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		disconnect()
		return nil, err
	}

	db := client.Database(cfg.Database)
	if err := mongoRepo.EnsureIndexes(ctx, db); err != nil {
		disconnect()
		return nil, err
	}

	return &stores{
		users:         mongoRepo.NewUserRepository(db),
		posts:         mongoRepo.NewPostRepository(db),
		notifications: mongoRepo.NewNotificationRepository(db),
		close:         disconnect,
	}, nil
}
