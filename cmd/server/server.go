package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-story/internal/config"
	"github.com/KirkDiggler/rpg-story/internal/handlers/rest"
	"github.com/KirkDiggler/rpg-story/internal/handlers/story/v1alpha1"
	"github.com/KirkDiggler/rpg-story/internal/orchestrators/authoring"
	"github.com/KirkDiggler/rpg-story/internal/orchestrators/preview"
	"github.com/KirkDiggler/rpg-story/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-story/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/rpg-story/internal/redis"
	previewsession "github.com/KirkDiggler/rpg-story/internal/repositories/preview_session"
	storyrepo "github.com/KirkDiggler/rpg-story/internal/repositories/story"
)

var (
	grpcPort int
	httpPort int
	store    string
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC and HTTP servers",
	Long:  `Start the story and preview gRPC services and the HTTP analysis API.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides RPG_STORY_GRPC_PORT)")
	serverCmd.Flags().IntVar(&httpPort, "http-port", -1, "HTTP server port, 0 disables (overrides RPG_STORY_HTTP_PORT)")
	serverCmd.Flags().StringVar(&store, "store", "", "story store, redis or sqlite (overrides RPG_STORY_STORE)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	if grpcPort > 0 {
		cfg.GRPCPort = grpcPort
	}
	if httpPort >= 0 {
		cfg.HTTPPort = httpPort
	}
	if store != "" {
		cfg.Store = store
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	slog.SetDefault(cfg.NewLogger())

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	redisClient, err := redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		UseTLS:   cfg.RedisTLS,
	})
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := redisclient.Ping(pingCtx, redisClient); err != nil {
		return err
	}

	storyRepo, closeStore, err := openStoryRepository(cfg, redisClient)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore.Close() }()

	sessionRepo, err := previewsession.NewRedisRepository(&previewsession.Config{
		Client: redisClient,
		Clock:  clock.New(),
	})
	if err != nil {
		return fmt.Errorf("failed to create preview session repository: %w", err)
	}

	authoringService, err := authoring.NewOrchestrator(&authoring.Config{
		StoryRepo:   storyRepo,
		IDGenerator: idgen.NewUUID(idgen.PrefixStory),
	})
	if err != nil {
		return fmt.Errorf("failed to create authoring orchestrator: %w", err)
	}

	previewService, err := preview.NewOrchestrator(&preview.Config{
		StoryRepo:   storyRepo,
		SessionRepo: sessionRepo,
		IDGenerator: idgen.NewUUID(idgen.PrefixPreview),
		EventBus:    events.NewBus(),
		TTL:         cfg.PreviewTTL,
	})
	if err != nil {
		return fmt.Errorf("failed to create preview orchestrator: %w", err)
	}

	grpcServer, err := newGRPCServer(authoringService, previewService)
	if err != nil {
		return err
	}

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	errChan := make(chan error, 2)
	go func() {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort, "store", cfg.Store)
		if err := grpcServer.Serve(lis); err != nil {
			errChan <- fmt.Errorf("failed to serve grpc: %w", err)
		}
	}()

	var httpServer *http.Server
	if cfg.HTTPPort > 0 {
		mode := gin.ReleaseMode
		if cfg.SlogLevel() == slog.LevelDebug {
			mode = gin.DebugMode
		}
		router, err := rest.NewRouter(&rest.Config{AuthoringService: authoringService, Mode: mode})
		if err != nil {
			return err
		}
		httpServer = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("HTTP server starting", "port", cfg.HTTPPort)
			if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				errChan <- fmt.Errorf("failed to serve http: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal, gracefully stopping")
	case err := <-errChan:
		grpcServer.Stop()
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if httpServer != nil {
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("HTTP shutdown failed", "error", err)
		}
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.Warn("Graceful shutdown timeout exceeded, forcing stop")
		grpcServer.Stop()
	case <-stopped:
		slog.Info("Server stopped gracefully")
	}

	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openStoryRepository picks the configured story store
func openStoryRepository(cfg *config.Config, client redisclient.Client) (storyrepo.Repository, io.Closer, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		repo, err := storyrepo.NewSQLite(&storyrepo.SQLiteConfig{Path: cfg.SQLitePath, Clock: clock.New()})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return repo, repo, nil
	default:
		repo, err := storyrepo.NewRedis(&storyrepo.RedisConfig{Client: client, Clock: clock.New()})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create redis store: %w", err)
		}
		return repo, nopCloser{}, nil
	}
}

func newGRPCServer(authoringService authoring.Service, previewService preview.Service) (*grpc.Server, error) {
	logger := grpc_logging.LoggerFunc(logFunc)
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(logger),
			grpc_recovery.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(logger),
			grpc_recovery.StreamServerInterceptor(),
		),
	)

	storyHandler, err := v1alpha1.NewStoryHandler(&v1alpha1.StoryHandlerConfig{AuthoringService: authoringService})
	if err != nil {
		return nil, fmt.Errorf("failed to create story handler: %w", err)
	}
	previewHandler, err := v1alpha1.NewPreviewHandler(&v1alpha1.PreviewHandlerConfig{PreviewService: previewService})
	if err != nil {
		return nil, fmt.Errorf("failed to create preview handler: %w", err)
	}

	v1alpha1.RegisterStoryServiceServer(srv, storyHandler)
	v1alpha1.RegisterPreviewServiceServer(srv, previewHandler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.StoryServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(v1alpha1.PreviewServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)
	return srv, nil
}

func logFunc(ctx context.Context, level grpc_logging.Level, msg string, fields ...any) {
	slog.Log(ctx, slog.Level(level), msg, fields...)
}
