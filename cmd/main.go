package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwrk-planet/meeting-service/config"
	"github.com/cwrk-planet/meeting-service/internal/badgerstore"
	"github.com/cwrk-planet/meeting-service/internal/domain"
	"github.com/cwrk-planet/meeting-service/internal/logger"
	"github.com/cwrk-planet/meeting-service/internal/memory"
	"github.com/cwrk-planet/meeting-service/internal/service"
	grpcx "github.com/cwrk-planet/meeting-service/internal/transport/grpc"
	httpx "github.com/cwrk-planet/meeting-service/internal/transport/http"
	"github.com/cwrk-planet/meeting-service/internal/transport/ws"

	"google.golang.org/grpc"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	level, err := logger.ParseLevel(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("logging.level: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.ParseEnv(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		Level:     level,
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	defer logger.Sync()
	slog.Info("starting meeting-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version, "storage", cfg.Storage.Driver)

	// --- storage ---
	ctx := context.Background()
	st, err := openStores(ctx, cfg.Storage)
	if err != nil {
		slog.Error("open storage", "err", err)
		os.Exit(1)
	}
	defer st.close()

	prefsDB, err := badgerstore.Open(badgerstore.Options{
		Path:     cfg.Storage.Badger.Path,
		InMemory: cfg.Storage.Badger.InMemory,
	})
	if err != nil {
		slog.Error("open badger", "err", err)
		os.Exit(1)
	}
	defer func() { _ = prefsDB.Close() }()

	backgrounds := memory.NewBackgroundRepository(domain.PresetBackgrounds())
	prefs := badgerstore.NewPreferenceRepository(prefsDB, slog.Default().With("component", "badger"))

	// --- services ---
	hub := ws.NewHub()
	opts := service.Options{
		Latency: service.Latency{
			Read:   *cfg.Simulation.ReadLatency,
			Write:  *cfg.Simulation.WriteLatency,
			Member: *cfg.Simulation.MemberLatency,
		},
		Publisher: hub,
	}

	meetingSvc := service.NewMeetingService(st.meetings, st.participants, opts)
	meetingSvc.SetDemoFallback(*cfg.Simulation.DemoFallback)
	participantSvc := service.NewParticipantService(st.participants, opts)
	chatSvc := service.NewChatService(st.chat, st.meetings, opts)
	chatSvc.SetDemoHistory(*cfg.Chat.DemoHistory)
	chatSvc.SetMaxLength(cfg.Chat.MaxLength)
	backgroundSvc := service.NewBackgroundService(backgrounds, opts)
	preferenceSvc := service.NewPreferenceService(prefs, backgrounds, opts)

	// --- WS ---
	wsServer := ws.NewServer(hub, participantSvc, chatSvc, cfg.CORS.AllowedOrigins)

	// --- HTTP ---
	handler := httpx.NewHandler(meetingSvc, participantSvc, chatSvc, backgroundSvc, preferenceSvc)
	router := httpx.NewRouter(handler, wsServer.HandleWS, httpx.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		RequestTimeout: cfg.HTTP.RequestTimeout,
	})
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// --- gRPC ---
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(grpcx.UnaryServerInterceptor(cfg.GRPC.DefaultTimeout)),
	)
	grpcx.Register(grpcServer, grpcx.NewServer(meetingSvc, participantSvc, chatSvc))

	// --- run both servers ---
	errCh := make(chan error, 2)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			errCh <- err
			return
		}
		slog.Info("grpc listen", "addr", cfg.GRPC.Addr)
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	grpcServer.GracefulStop()
	if err := httpSrv.Shutdown(ctxShutdown); err != nil {
		slog.Warn("http shutdown", "err", err)
	}
	slog.Info("stopped")
}
