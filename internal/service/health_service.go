package service

import (
	"context"

	"blogstarter/internal/repository"
	"blogstarter/internal/storage"
)

type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type Readiness struct {
	Database string `json:"database"`
	Tables   int    `json:"tables"`
	Storage  string `json:"storage"`
	Ready    bool   `json:"ready"`
}

type HealthService interface {
	Hello() string
	HelloName(name string) string
	Ready(ctx context.Context) Readiness
}

type healthService struct {
	db         Pinger
	tablesRepo repository.TablesRepository
	storage    storage.Storage
}

func NewHealthService(db Pinger, tablesRepo repository.TablesRepository, storage storage.Storage) HealthService {
	return &healthService{db: db, tablesRepo: tablesRepo, storage: storage}
}

func (h *healthService) Hello() string {
	return "Hello World!"
}

func (h *healthService) HelloName(name string) string {
	return "Hello " + name
}

func (h *healthService) Ready(ctx context.Context) Readiness {
	r := Readiness{Database: "ok", Storage: "ok", Ready: true}

	if err := h.db.HealthCheck(ctx); err != nil {
		r.Database = err.Error()
		r.Ready = false
	} else if count, err := h.tablesRepo.CountTables(ctx); err != nil {
		r.Database = err.Error()
		r.Ready = false
	} else {
		r.Tables = count
	}

	if err := h.storage.Ping(ctx); err != nil {
		r.Storage = err.Error()
		r.Ready = false
	}

	return r
}
