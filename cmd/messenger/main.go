package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/redis"
	"github.com/wb-go/wbf/zlog"

	"github.com/estatekit/messenger/internal/api/handlers/messaging"
	"github.com/estatekit/messenger/internal/api/handlers/residence"
	"github.com/estatekit/messenger/internal/api/router"
	"github.com/estatekit/messenger/internal/api/server"
	"github.com/estatekit/messenger/internal/config"
	"github.com/estatekit/messenger/internal/engine"
	"github.com/estatekit/messenger/internal/model"
	jobmsg "github.com/estatekit/messenger/internal/rabbitmq/handlers/job"
	"github.com/estatekit/messenger/internal/rabbitmq/queue"
	jobrepo "github.com/estatekit/messenger/internal/repository/job"
	recipientrepo "github.com/estatekit/messenger/internal/repository/recipient"
	residencerepo "github.com/estatekit/messenger/internal/repository/residence"
	messagingsvc "github.com/estatekit/messenger/internal/service/messaging"
	"github.com/estatekit/messenger/internal/transport"
	"github.com/estatekit/messenger/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()

	if err := godotenv.Load(); err != nil {
		zlog.Logger.Info().Msg("no .env file found, relying on environment variables")
	}

	cfg := config.Must()
	val := validator.New()

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL(), cfg.RabbitMQ.Retries, cfg.RabbitMQ.Pause)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to rabbitmq")
	}

	ch, err := conn.Channel()
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to open channel")
	}

	q, err := queue.NewJobQueue(ch)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create job queue")
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	slaveDSNs := make([]string, 0, len(cfg.Database.Slaves))
	for _, s := range cfg.Database.Slaves {
		slaveDSNs = append(slaveDSNs, s.DSN())
	}

	db, err := dbpg.New(cfg.Database.Master.DSN(), slaveDSNs, opts)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	jobs := jobrepo.NewRepository(db)
	recipients := recipientrepo.NewRepository(db)
	residences := residencerepo.NewRepository(db)

	rdb := redis.New(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.Database)
	if err = rdb.Ping(ctx).Err(); err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to connect to redis")
	}

	reg := transport.DefaultRegistry()

	emailTransport, err := reg.New(cfg.Email.Transport, cfg)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to build email transport")
	}

	smsTransport, err := reg.New(cfg.SMS.Transport, cfg)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to build sms transport")
	}

	emailSize, emailDelay := cfg.BatchFor(model.ChannelEmail)
	smsSize, smsDelay := cfg.BatchFor(model.ChannelSMS)

	dispatchers := map[model.Channel]engine.ChannelDispatcher{
		model.ChannelEmail: engine.NewDispatcher(model.ChannelEmail, recipients, jobs, emailTransport, emailSize, emailDelay),
		model.ChannelSMS:   engine.NewDispatcher(model.ChannelSMS, recipients, jobs, smsTransport, smsSize, smsDelay),
	}

	orch := engine.NewOrchestrator(jobs, recipients, q, dispatchers)

	service := messagingsvc.NewService(jobs, recipients, residences, orch, rdb)
	msgHandler := messaging.NewHandler(service, val, cfg)
	resHandler := residence.NewHandler(residences, val)
	messageHandler := jobmsg.NewHandler(orch)

	runner := worker.NewRunner(q, messageHandler)

	go runner.Run(ctx, cfg.Retry, cfg.Workers.Count)

	// Jobs stranded in processing by a previous crash pick up where the
	// recipient ledger left off.
	if err := orch.RequeueInFlight(ctx, cfg.Retry); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to requeue in-flight jobs")
	}

	r := router.New(msgHandler, resHandler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	if err := db.Master.Close(); err != nil {
		zlog.Logger.Printf("failed to close master DB: %v", err)
	}

	for i, slave := range db.Slaves {
		if err := slave.Close(); err != nil {
			zlog.Logger.Printf("failed to close slave DB %d: %v", i, err)
		}
	}

	if err := ch.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ channel")
	}

	if err := conn.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close RabbitMQ connection")
	}
}
