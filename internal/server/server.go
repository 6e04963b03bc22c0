// Package server routes HTTP requests to the ledger store, the static
// lookups, and the external collaborators. It never mutates persisted state
// itself; all entry and note lifecycle goes through the storage layer.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/doccrop/farm-assist/internal/storage"
	"github.com/doccrop/farm-assist/internal/weather"
)

// Translator is the translation/speech collaborator contract.
type Translator interface {
	Translate(ctx context.Context, text, src, dest string) (string, error)
	Speak(ctx context.Context, text, lang string) ([]byte, error)
}

// WeatherService is the weather collaborator contract.
type WeatherService interface {
	Current(ctx context.Context, city string) (weather.Report, error)
}

// Server holds the shared handles for the process lifetime. The storage
// backend behind store was selected once at startup and is never switched.
type Server struct {
	store       storage.Store
	weather     WeatherService
	translator  Translator
	schemesPath string
	now         func() time.Time
}

// New wires a server from explicitly constructed dependencies.
func New(store storage.Store, ws WeatherService, tr Translator, schemesPath string) *Server {
	return &Server{
		store:       store,
		weather:     ws,
		translator:  tr,
		schemesPath: schemesPath,
		now:         time.Now,
	}
}

// Handler returns the full route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/expenses", s.handleAddEntry)
	mux.HandleFunc("GET /api/expenses", s.handleListEntries)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteEntry)

	mux.HandleFunc("POST /api/notes", s.handleAddNote)
	mux.HandleFunc("GET /api/notes", s.handleListNotes)

	mux.HandleFunc("GET /api/market", s.handleMarket)
	mux.HandleFunc("GET /api/schedule", s.handleSchedule)
	mux.HandleFunc("GET /api/schemes", s.handleSchemes)
	mux.HandleFunc("GET /api/weather", s.handleWeather)

	mux.HandleFunc("POST /api/translate", s.handleTranslate)
	mux.HandleFunc("POST /api/tts", s.handleTTS)
	mux.HandleFunc("POST /api/disease", s.handleDisease)

	var h http.Handler = mux
	h = requestLogger(h)
	h = recovery(h)
	h = cors(h)
	h = requestID(h)
	return h
}
