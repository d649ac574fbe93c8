package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/journal/api/handler"
	"github.com/fastygo/journal/domain"
	"github.com/fastygo/journal/internal/config"
	"github.com/fastygo/journal/internal/infrastructure/deadletter"
	"github.com/fastygo/journal/internal/infrastructure/monitor"
	pgInfra "github.com/fastygo/journal/internal/infrastructure/postgres"
	"github.com/fastygo/journal/internal/infrastructure/push"
	redisInfra "github.com/fastygo/journal/internal/infrastructure/redis"
	"github.com/fastygo/journal/internal/infrastructure/storage"
	"github.com/fastygo/journal/internal/metrics"
	"github.com/fastygo/journal/internal/middleware"
	"github.com/fastygo/journal/internal/router"
	"github.com/fastygo/journal/internal/services/housekeeping"
	"github.com/fastygo/journal/internal/services/lifecycle"
	"github.com/fastygo/journal/pkg/httpcontext"
	"github.com/fastygo/journal/pkg/logger"
	"github.com/fastygo/journal/repository/postgres"
	redisRepo "github.com/fastygo/journal/repository/redis"
	"github.com/fastygo/journal/usecase"
	authUC "github.com/fastygo/journal/usecase/auth"
	boardUC "github.com/fastygo/journal/usecase/board"
	friendshipUC "github.com/fastygo/journal/usecase/friendship"
	messagingUC "github.com/fastygo/journal/usecase/messaging"
	moodUC "github.com/fastygo/journal/usecase/mood"
	moodboardUC "github.com/fastygo/journal/usecase/moodboard"
	notificationUC "github.com/fastygo/journal/usecase/notification"
	postUC "github.com/fastygo/journal/usecase/post"
	rewardUC "github.com/fastygo/journal/usecase/reward"
	tableauUC "github.com/fastygo/journal/usecase/tableau"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(context.Background(), cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen()
	appCtx := manager.Context()

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pgInfra.Close(pool, zapLogger)
		return nil
	})

	redisClient, err := redisInfra.NewClient(appCtx, cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	registry := metrics.New(cfg.Metrics.Namespace)

	deadLetters, err := deadletter.Open(cfg.DeadLetter.Path, cfg.DeadLetter.MaxEntries)
	if err != nil {
		zapLogger.Fatal("failed to open dead letter store", zap.Error(err))
	}
	manager.Register("dead_letters", func(ctx context.Context) error {
		return deadLetters.Close()
	})

	mon := monitor.New(monitor.PoolProbe(pool), monitor.RedisProbe(redisClient), deadLetters, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	db := postgres.NewDB(pool, postgres.NewMetricsHooks(registry))
	userRepo := postgres.NewUserRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	friendRepo := postgres.NewFriendRequestRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	preferencesRepo := postgres.NewPreferencesRepository(db)
	pushTokenRepo := postgres.NewPushTokenRepository(db)
	moodboardRepo := postgres.NewMoodboardRepository(db)
	boardRepo := postgres.NewBoardRepository(db)
	tableauRepo := postgres.NewTableauRepository(db)
	rewardRepo := postgres.NewRewardRepository(db)
	achievementRepo := postgres.NewAchievementRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)
	moodRepo := postgres.NewMoodRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.Session.TTL)

	dispatcher := usecase.NewDispatcher(zapLogger,
		usecase.WithDeadLetterSink(deadLetters),
		usecase.WithDispatchMetrics(registry),
	)

	activity := messagingUC.NewActivityHandler(conversationRepo, dispatcher, zapLogger)
	dispatcher.Subscribe(domain.EventMessageCreated, "conversation_activity", activity.Handle)

	fanout := notificationUC.NewFanoutHandler(notificationRepo, conversationRepo, dispatcher, zapLogger)
	for _, name := range notificationUC.FanoutEvents {
		dispatcher.Subscribe(name, "notification_fanout", fanout.Handle)
	}

	if cfg.Push.Enabled {
		pusher := notificationUC.NewPushHandler(preferencesRepo, pushTokenRepo, push.NewExpo(cfg.Push, zapLogger), registry, zapLogger)
		dispatcher.Subscribe(domain.EventNotificationCreated, "push_delivery", pusher.Handle)
	}

	dispatcher.SubscribeAll("event_log", func(ctx context.Context, event domain.Event) error {
		logger.FromContext(ctx, zapLogger).Debug("event dispatched",
			zap.String("event", event.EventName()),
			zap.String("aggregate_id", event.AggregateID()),
		)
		return nil
	})

	var images usecase.StorageProvider = storage.Disabled{}
	if cfg.Storage.Bucket != "" {
		gcsProvider, err := storage.NewGCS(appCtx, cfg.Storage, zapLogger)
		if err != nil {
			zapLogger.Fatal("storage client failed", zap.Error(err))
		}
		manager.Register("storage", func(ctx context.Context) error {
			return gcsProvider.Close()
		})
		images = gcsProvider
	} else {
		zapLogger.Warn("image storage disabled: STORAGE_BUCKET is empty")
	}

	housekeeper, err := housekeeping.New(deadLetters, registry, housekeeping.Config{
		Schedule:  cfg.DeadLetter.CleanupSchedule,
		Retention: cfg.DeadLetter.Retention,
	}, zapLogger)
	if err != nil {
		zapLogger.Fatal("housekeeping setup failed", zap.Error(err))
	}
	housekeeper.Start()
	manager.Register("housekeeping", func(ctx context.Context) error {
		housekeeper.Stop(ctx)
		return nil
	})

	authUseCase := authUC.New(userRepo, sessionRepo, cfg.Session.SlidingWindow, zapLogger)
	messagingUseCase := messagingUC.New(conversationRepo, messageRepo, db, dispatcher, zapLogger)
	friendshipUseCase := friendshipUC.New(friendRepo, dispatcher, zapLogger)
	notificationUseCase := notificationUC.New(notificationRepo, preferencesRepo, pushTokenRepo, dispatcher, zapLogger)
	moodboardUseCase := moodboardUC.New(moodboardRepo, images, dispatcher, moodboardUC.UploadPolicy{
		MaxSize: cfg.Storage.MaxUploadSize,
		Expiry:  cfg.Storage.UploadExpiry,
	}, zapLogger)
	boardUseCase := boardUC.New(boardRepo, dispatcher, zapLogger)
	tableauUseCase := tableauUC.New(tableauRepo, dispatcher, zapLogger)
	rewardUseCase := rewardUC.New(rewardRepo, achievementRepo, dispatcher, zapLogger)
	postUseCase := postUC.New(postRepo, commentRepo, userRepo, friendRepo, dispatcher, zapLogger)
	moodUseCase := moodUC.New(moodRepo, dispatcher, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Health:       apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		Messaging:    apiHandler.NewMessagingHandler(messagingUseCase, ctxAdapter, zapLogger),
		Friendship:   apiHandler.NewFriendshipHandler(friendshipUseCase, ctxAdapter, zapLogger),
		Notification: apiHandler.NewNotificationHandler(notificationUseCase, ctxAdapter, zapLogger),
		Moodboard:    apiHandler.NewMoodboardHandler(moodboardUseCase, ctxAdapter, zapLogger),
		Board:        apiHandler.NewBoardHandler(boardUseCase, ctxAdapter, zapLogger),
		Tableau:      apiHandler.NewTableauHandler(tableauUseCase, ctxAdapter, zapLogger),
		Reward:       apiHandler.NewRewardHandler(rewardUseCase, ctxAdapter, zapLogger),
		Post:         apiHandler.NewPostHandler(postUseCase, ctxAdapter, zapLogger),
		Mood:         apiHandler.NewMoodHandler(moodUseCase, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.Auth(middleware.AuthConfig{
		Secret: cfg.JWT.Secret,
		Issuer: cfg.JWT.Issuer,
	}, authUseCase, zapLogger)

	opts := router.Options{EnablePprof: cfg.HTTP.EnablePprof}
	if cfg.Metrics.Enabled {
		opts.Metrics = registry
		opts.MetricsPath = cfg.Metrics.Path
	}
	r := router.New(handlers, authMiddleware, opts)

	server := &fasthttp.Server{
		Handler:            r.Handler,
		ReadTimeout:        cfg.HTTP.ReadTimeout,
		WriteTimeout:       cfg.HTTP.WriteTimeout,
		IdleTimeout:        cfg.HTTP.IdleTimeout,
		Concurrency:        cfg.HTTP.MaxConn,
		Name:               cfg.AppName,
		MaxRequestBodySize: 4 << 20,
	}

	// Stops itself on manager shutdown; Wait returns before the hooks below run.
	manager.Go("http_server", func(ctx context.Context) error {
		errCh := make(chan error, 1)
		go func() {
			zapLogger.Info("server started", zap.String("address", cfg.Address()))
			errCh <- server.ListenAndServe(cfg.Address())
		}()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Context.ShutdownTimeout)
			defer cancel()
			return server.ShutdownWithContext(shutdownCtx)
		}
	})

	if err := manager.Wait(); err != nil {
		zapLogger.Error("component failure", zap.Error(err))
	}

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
