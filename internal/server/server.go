package server

import (
	"fmt"
	"net/http"
	"time"

	"careernest-backend/internal/config"
	"careernest-backend/internal/controller/file"
	"careernest-backend/internal/database"
)

// MyServer bundles the configuration and shared dependencies every route
// handler needs.
type MyServer struct {
	Cfg     *config.Config
	DB      *database.DBinstanceStruct
	Storage file.StorageClient
}

// NewServer constructs an http.Server around the registered routes.
func NewServer(cfg *config.Config, db *database.DBinstanceStruct, storage file.StorageClient) *http.Server {
	s := &MyServer{
		Cfg:     cfg,
		DB:      db,
		Storage: storage,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
