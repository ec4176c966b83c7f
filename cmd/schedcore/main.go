// Command schedcore is the CLI front-end of §6: a thin cobra command
// tree over facade.Data, with its own in-process worker goroutine
// recomputing possible beginnings and insertion costs as the command tree
// mutates state.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/adrienmarchand/schedcore/adapter/cli"
	"github.com/adrienmarchand/schedcore/adapter/cli/activity"
	"github.com/adrienmarchand/schedcore/adapter/cli/entity"
	"github.com/adrienmarchand/schedcore/adapter/cli/group"
	"github.com/adrienmarchand/schedcore/adapter/cli/schedule"
	"github.com/adrienmarchand/schedcore/adapter/cli/workhours"
	"github.com/adrienmarchand/schedcore/internal/scheduling/collection"
	"github.com/adrienmarchand/schedcore/internal/scheduling/facade"
	"github.com/adrienmarchand/schedcore/internal/scheduling/worker"
	"github.com/adrienmarchand/schedcore/internal/shared/infrastructure/eventbus"
	"github.com/adrienmarchand/schedcore/pkg/config"
	"github.com/adrienmarchand/schedcore/pkg/observability"
)

func main() {
	logger := observability.LoggerFromEnv()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("failed to load config, using development defaults", "error", err)
		cfg = &config.Config{AppEnv: "development", MaxDurationsPerParticipant: 20}
	}
	if cfg.IsDevelopment() {
		devCfg := observability.DefaultLogConfig()
		devCfg.Level = observability.LogLevelDebug
		logger = observability.NewLogger(devCfg)
	}
	cli.SetLogger(logger)

	q, col, publisher := wireStack(ctx, cfg, logger)

	w := worker.New(col, q, logger, worker.WithMaxDurationsPerParticipant(cfg.MaxDurationsPerParticipant))
	go func() {
		if err := w.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("worker stopped", "error", err)
		}
	}()

	opts := []facade.Option{}
	if cfg.RequireNonZeroDuration {
		opts = append(opts, facade.WithRequireNonZeroDuration())
	}
	app := facade.NewWithDependencies(col, q, publisher, logger, opts...)
	cli.SetApp(app)

	cli.AddCommand(entity.Cmd)
	cli.AddCommand(group.Cmd)
	cli.AddCommand(workhours.Cmd)
	cli.AddCommand(activity.Cmd)
	cli.AddCommand(schedule.Cmd)

	cli.Execute()
}

// wireStack picks the in-process or distributed queue and event sink per cfg.
func wireStack(ctx context.Context, cfg *config.Config, logger *slog.Logger) (worker.Queue, *collection.Collection, eventbus.Publisher) {
	var q worker.Queue
	if cfg.UsesRedisQueue() {
		client := redis.NewClient(&redis.Options{Addr: redisAddr(cfg.RedisURL)})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Warn("redis not available, falling back to in-process queue", "error", err)
			q = worker.NewInProcessQueue()
		} else {
			q = worker.NewRedisQueue(client, cfg.RedisKeyPrefix)
		}
	} else {
		q = worker.NewInProcessQueue()
	}

	col := collection.New(q)

	var publisher eventbus.Publisher
	if cfg.UsesRabbitMQSink() {
		rabbitPublisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			logger.Warn("rabbitmq not available, using noop publisher", "error", err)
			publisher = eventbus.NewNoopPublisher(logger)
		} else {
			publisher = rabbitPublisher
			consumer, err := eventbus.NewRabbitMQConsumer(eventbus.RabbitMQConsumerConfig{
				URL:    cfg.RabbitMQURL,
				Logger: logger,
			}, eventbus.NewConsumerRegistry(logger))
			if err != nil {
				logger.Warn("rabbitmq consumer unavailable, events will not be audited", "error", err)
			} else {
				consumer.RegisterConsumer(eventbus.NewAuditLogConsumer(logger))
				go func() {
					if err := consumer.Start(ctx); err != nil && err != context.Canceled {
						logger.Error("rabbitmq consumer stopped", "error", err)
					}
				}()
				go func() {
					<-ctx.Done()
					_ = consumer.Close()
				}()
			}
		}
	} else {
		bus := eventbus.NewInProcessEventBus(logger)
		bus.RegisterConsumer(eventbus.NewAuditLogConsumer(logger))
		publisher = bus
	}

	return q, col, publisher
}

func redisAddr(url string) string {
	const scheme = "redis://"
	addr := url
	if len(addr) > len(scheme) && addr[:len(scheme)] == scheme {
		addr = addr[len(scheme):]
	}
	if i := strings.IndexByte(addr, '/'); i >= 0 {
		addr = addr[:i]
	}
	return addr
}
