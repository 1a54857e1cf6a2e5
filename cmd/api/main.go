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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"go-chatline/cmd/api/router/v1"
	"go-chatline/internal/api/middleware"
	"go-chatline/internal/config"
	cacheAdapter "go-chatline/internal/infrastructure/cache/adapter"
	"go-chatline/internal/infrastructure/database"
	queueAdapter "go-chatline/internal/infrastructure/queue/adapter"
	qport "go-chatline/internal/infrastructure/queue/port"
	"go-chatline/internal/infrastructure/realtime"
	"go-chatline/internal/pkg/auth"
	"go-chatline/internal/pkg/chat/application/task"
	"go-chatline/internal/pkg/chat/application/usecase"
	chatRepoAdapter "go-chatline/internal/pkg/chat/persistence/repository/adapter"
	chatHandler "go-chatline/internal/pkg/chat/presentation/http"
	userAdapter "go-chatline/internal/repository/adapter"
	userrepo "go-chatline/internal/repository/port"
)

func main() {
	cfg := config.Load()

	var log zerolog.Logger
	if cfg.IsDevelopment() {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	} else {
		log = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		cancel()
		log.Fatal().Err(err).Msg("connect to database")
	}
	if err := database.EnsureSchema(ctx, pool); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("apply schema")
	}
	cancel()
	defer pool.Close()

	var users userrepo.UserRepository = userAdapter.NewPgUserRepository(pool)
	if cfg.RedisURL != "" {
		cache, err := cacheAdapter.NewRedisAdapter(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, user directory cache disabled")
		} else {
			defer cache.Close()
			users = userAdapter.NewCachedUserRepository(users, cache)
		}
	}

	chatRepo := chatRepoAdapter.NewPgChatRepository(pool)
	registry := realtime.NewRegistry()
	defer registry.Close()
	notifier := realtime.NewNotifier(registry, log)
	issuer := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	sendUC := usecase.NewSendMessageUseCase(users, chatRepo, notifier, log)
	historyUC := usecase.NewGetHistoryUseCase(users, chatRepo)
	listUC := usecase.NewListUsersUseCase(users)

	// Background worker shares the in-process registry so queued sends still
	// reach live connections on this node.
	var queueClient qport.Client
	if cfg.RedisURL != "" {
		client, err := queueAdapter.NewAsynqClient(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("queue unavailable, REST sends route inline")
		} else {
			defer client.Close()
			queueClient = client

			srv, err := queueAdapter.NewAsynqServer(cfg.RedisURL, log)
			if err != nil {
				log.Fatal().Err(err).Msg("start queue server")
			}
			task.RegisterSendMessageTask(srv, sendUC, log)
			go func() {
				if err := srv.Run(context.Background()); err != nil {
					log.Error().Err(err).Msg("queue server stopped")
				}
			}()
			defer func() {
				stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer stopCancel()
				_ = srv.Stop(stopCtx)
			}()
		}
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logger(log), middleware.Metrics(), gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1.RegisterRoutes(r, v1.Deps{
		Users:  users,
		Issuer: issuer,
		Chat: chatHandler.Deps{
			Registry:      registry,
			Queue:         queueClient,
			SendMessageUC: sendUC,
			GetHistoryUC:  historyUC,
			ListUsersUC:   listUC,
		},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
