// Command worker runs schedcore's computation worker (§4.7) as its own
// process, draining a distributed RedisQueue for the multi-process
// deployment of §3. It writes recomputed caches straight back onto
// the shared Collection; domain-event publishing (RabbitMQ or in-process)
// stays cmd/schedcore's responsibility, since only mutations drain events.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/adrienmarchand/schedcore/internal/scheduling/collection"
	"github.com/adrienmarchand/schedcore/internal/scheduling/worker"
	"github.com/adrienmarchand/schedcore/pkg/config"
	"github.com/adrienmarchand/schedcore/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()
	logger.Info("starting schedcore worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.IsDevelopment() {
		devCfg := observability.DefaultLogConfig()
		devCfg.Level = observability.LogLevelDebug
		logger = observability.NewLogger(devCfg)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr(cfg.RedisURL)})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	logger.Info("connected to redis")

	q := worker.NewRedisQueue(redisClient, cfg.RedisKeyPrefix)
	col := collection.New(q)

	w := worker.New(col, q, logger, worker.WithMaxDurationsPerParticipant(cfg.MaxDurationsPerParticipant))

	health := observability.NewHealthRegistry()
	health.Register("redis", observability.RedisHealthChecker(func(ctx context.Context) error {
		return redisClient.Ping(ctx).Err()
	}))

	if cfg.WorkerHealthAddr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			overall := health.GetOverallHealth(r.Context())
			body, _ := json.Marshal(overall)
			w.Header().Set("Content-Type", "application/json")
			if overall.Status == observability.HealthStatusUnhealthy {
				w.WriteHeader(http.StatusServiceUnavailable)
			}
			_, _ = w.Write(body)
		})
		mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
			checkCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := redisClient.Ping(checkCtx).Err(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		server := &http.Server{Addr: cfg.WorkerHealthAddr, Handler: mux}
		go func() {
			logger.Info("health server listening", "addr", cfg.WorkerHealthAddr)
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("health server failed", "error", err)
			}
		}()
		go func() {
			<-ctx.Done()
			_ = server.Close()
		}()
	}

	if err := w.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

func redisAddr(url string) string {
	const scheme = "redis://"
	addr := url
	if len(addr) > len(scheme) && addr[:len(scheme)] == scheme {
		addr = addr[len(scheme):]
	}
	for i, c := range addr {
		if c == '/' {
			return addr[:i]
		}
	}
	return addr
}
