package main

import (
	"fmt"
	"log/slog"
	"time"

	"database/sql"

	"github.com/nats-io/nats.go"

	"github.com/careboard/careboard-api/internal/config"
	"github.com/careboard/careboard-api/internal/export"
	"github.com/careboard/careboard-api/internal/jobs"
	"github.com/careboard/careboard-api/internal/platform/logger"
	"github.com/careboard/careboard-api/internal/platform/memory"
	"github.com/careboard/careboard-api/internal/platform/natsbus"
	"github.com/careboard/careboard-api/internal/platform/noaa"
	"github.com/careboard/careboard-api/internal/platform/postgres"
	"github.com/careboard/careboard-api/internal/platform/redisscore"
	"github.com/careboard/careboard-api/internal/platform/userapi"
	"github.com/careboard/careboard-api/internal/service"
)

// application bundles the wired dependencies of a running server process.
type application struct {
	config *config.Config
	logger *slog.Logger

	db       *sql.DB
	natsConn *nats.Conn
	scores   *redisscore.ScoreGateway
	runner   *jobs.Runner

	taskService    service.TaskService
	patientService service.PatientService
	subscriber     *natsbus.ReassignSubscriber
}

// initializeApp loads configuration and wires every component of the server.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupAppDatabase(cfg, log)
	if err != nil {
		return nil, err
	}
	if err := runMigrations(db, log); err != nil {
		return nil, err
	}

	natsConn, err := natsbus.Connect(cfg.Events.URL)
	if err != nil {
		return nil, err
	}

	scores := redisscore.NewScoreGateway(redisscore.Options{
		Addr:     cfg.Score.RedisAddr,
		Password: cfg.Score.RedisPassword,
		DB:       cfg.Score.RedisDB,
	}, log)

	runner := jobs.NewRunner(jobs.RunnerConfig{
		WorkerCount: cfg.Jobs.WorkerCount,
		QueueSize:   cfg.Jobs.QueueSize,
	}, log)

	eventGateway := natsbus.NewPublisher(natsConn, cfg.Events.SubjectPrefix, log)
	taskStore := memory.NewTaskStore()
	patientStore := postgres.NewPostgresPatientStore(db, log)
	users := userapi.NewClient(cfg.Users.BaseURL,
		time.Duration(cfg.Users.Timeout)*time.Second, log)
	weatherGateway := noaa.NewClient(cfg.Weather.BaseURL,
		time.Duration(cfg.Weather.Timeout)*time.Second, log)

	taskService, err := service.NewTaskService(taskStore, users, scores, eventGateway, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	patientService, err := service.NewPatientService(
		patientStore, eventGateway, weatherGateway, runner,
		export.NewExcelExporter(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient service: %w", err)
	}

	subscriber := natsbus.NewReassignSubscriber(natsConn, taskService,
		cfg.Events.SubjectPrefix, log)

	return &application{
		config:         cfg,
		logger:         log,
		db:             db,
		natsConn:       natsConn,
		scores:         scores,
		runner:         runner,
		taskService:    taskService,
		patientService: patientService,
		subscriber:     subscriber,
	}, nil
}

// cleanup releases every connection the application holds. Called after the
// HTTP server has drained.
func (app *application) cleanup() {
	app.runner.Stop()

	if err := app.subscriber.Stop(); err != nil {
		app.logger.Error("failed to stop subscriber", "error", err)
	}
	app.natsConn.Close()

	if err := app.scores.Close(); err != nil {
		app.logger.Error("failed to close redis client", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", "error", err)
	}
}
