package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Osas21T/fitness-backend/internal/http/handlers"
	"github.com/Osas21T/fitness-backend/internal/middleware"
)

// NewRouter assembles the HTTP surface. CORS runs before routing so OPTIONS
// preflights succeed for any path.
func NewRouter(app *handlers.App) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.CORS,
		middleware.Logger(app.Logger),
	)

	r.Get("/health", app.Health)
	r.Post("/generate-fitness-image", app.GenerateFitnessImage)

	return r
}
