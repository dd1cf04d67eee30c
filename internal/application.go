package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/config"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/repository"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/sessionstore"
	"github.com/rocketscienceinc/tictactoe-scoreboard/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-scoreboard/transport/rest"
)

const generatedSecretLen = 32

var (
	ErrAddrNotFound     = errors.New("redis address string is empty")
	ErrSecretGeneration = errors.New("could not generate session secret")
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	secret, err := sessionSecret(log, &conf.Session)
	if err != nil {
		return err
	}

	store, closeStore, err := newSessionStore(ctx, conf, secret)
	if err != nil {
		return err
	}

	defer func() {
		if err = closeStore(); err != nil {
			log.Error("could not close session store", "error", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	scoreUseCase := usecase.NewScoreUseCase(logger)
	scoreHandler := rest.NewScoreHandler(logger, conf.Session.Name, scoreUseCase, appMetrics)

	server, err := rest.New(logger, conf.HTTPPort, store, scoreHandler, appMetrics)
	if err != nil {
		return fmt.Errorf("could not create HTTP server: %w", err)
	}

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "session_store", conf.Session.Store)
	if err = server.Start(ctx); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")
	return nil
}

// sessionSecret returns the configured signing key, or a random one when none is set.
func sessionSecret(log *slog.Logger, conf *config.Session) ([]byte, error) {
	if conf.HasSecret() {
		if conf.IsWeakSecret() {
			log.Warn("SESSION_SECRET is shorter than 32 bytes")
		}
		return []byte(conf.Secret), nil
	}

	secret := securecookie.GenerateRandomKey(generatedSecretLen)
	if secret == nil {
		return nil, ErrSecretGeneration
	}

	log.Warn("SESSION_SECRET is not set, using a random key; sessions will not survive a restart")

	return secret, nil
}

func newSessionStore(ctx context.Context, conf *config.Config, secret []byte) (sessions.Store, func() error, error) {
	opts := sessionstore.Options{
		MaxAge: conf.Session.MaxAge,
		Secure: conf.Session.Secure,
	}

	switch conf.Session.Store {
	case sessionstore.StoreCookie:
		return sessionstore.NewCookieStore(secret, opts), func() error { return nil }, nil
	case sessionstore.StoreRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisClient, err := storage.NewRedis(ctx, redisAddrString)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		sessionRepo := repository.NewSessionRepository(redisClient)

		return sessionstore.NewRedisStore(sessionRepo, secret, opts), redisClient.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", apperror.ErrUnknownSessionStore, conf.Session.Store)
	}
}
