package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Osas21T/fitness-backend/internal/imagegen"
	"github.com/Osas21T/fitness-backend/internal/infra"
	"github.com/Osas21T/fitness-backend/internal/storage"
)

// App carries the request-independent collaborators every handler needs.
// All fields are read-only after startup; requests share no mutable state.
type App struct {
	Config      *infra.Config
	Logger      infra.Logger
	Uploads     *storage.UploadStore
	Transformer imagegen.Transformer
}

// NewApp wires the handler container.
func NewApp(cfg *infra.Config, logger infra.Logger, uploads *storage.UploadStore, transformer imagegen.Transformer) *App {
	return &App{Config: cfg, Logger: logger, Uploads: uploads, Transformer: transformer}
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message, details string) {
	a.json(w, code, errorResponse{Success: false, Error: message, Details: details})
}
