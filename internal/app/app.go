// Package app wires repositories and services over one database handle.
package app

import (
	"log/slog"

	"github.com/alexanderramin/stagetrack/internal/db"
	"github.com/alexanderramin/stagetrack/internal/repository"
	"github.com/alexanderramin/stagetrack/internal/service"
)

// App holds every service the HTTP API and CLI commands use.
type App struct {
	DB       *db.DB
	Stages   service.StageService
	Tasks    service.TaskService
	Stats    service.StatsService
	Transfer service.TransferService
	Schema   service.SchemaService
}

// New wires the services to database. A nil logger disables use-case logging.
func New(database *db.DB, logger *slog.Logger) *App {
	observer := service.NewLogUseCaseObserver(logger)

	stageRepo := repository.NewSQLStageRepo(database)
	taskRepo := repository.NewSQLTaskRepo(database)
	statsRepo := repository.NewSQLStatsRepo(database)
	uow := db.NewUnitOfWork(database)

	return &App{
		DB:       database,
		Stages:   service.NewStageService(stageRepo, taskRepo, uow, observer),
		Tasks:    service.NewTaskService(taskRepo, observer),
		Stats:    service.NewStatsService(statsRepo),
		Transfer: service.NewTransferService(stageRepo, taskRepo, uow, observer),
		Schema:   service.NewSchemaService(uow, observer),
	}
}

// Open opens the store named by dsn, applies the schema and wires the services.
func Open(dsn string, logger *slog.Logger) (*App, error) {
	database, err := db.OpenDB(dsn)
	if err != nil {
		return nil, err
	}
	return New(database, logger), nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.DB.Close()
}
