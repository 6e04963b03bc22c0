package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/doccrop/farm-assist/internal/common"
	"github.com/doccrop/farm-assist/internal/leaf"
	"github.com/doccrop/farm-assist/internal/market"
	"github.com/doccrop/farm-assist/internal/model"
	"github.com/doccrop/farm-assist/internal/schedule"
	"github.com/doccrop/farm-assist/internal/schemes"
	"github.com/doccrop/farm-assist/internal/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ---------- Ledger ----------

type addEntryRequest struct {
	Date     string          `json:"date"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Amount   json.RawMessage `json:"amount"`
	Note     string          `json:"note"`
}

// coerceAmount accepts the amount as a JSON number or a numeric string, the
// two shapes the frontend has historically sent.
func coerceAmount(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%w: amount is not valid JSON", common.ErrValidation)
	}
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: amount %q is not numeric", common.ErrValidation, n)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: amount must be a number", common.ErrValidation)
	}
}

func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := coerceAmount(req.Amount)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	id, err := s.store.AddEntry(r.Context(), model.Entry{
		Date:     req.Date,
		Type:     req.Type,
		Category: req.Category,
		Amount:   amount,
		Note:     req.Note,
	})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "id": id})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.ListEntries(r.Context())
	if err != nil {
		slog.Error("failed to list entries", "error", err)
		writeError(w, statusFor(err), "failed to list entries")
		return
	}

	resp := struct {
		Entries []model.Entry `json:"entries"`
		storage.Totals
	}{Entries: entries, Totals: storage.ComputeTotals(entries)}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	// The id is reported as deleted whether or not a matching record
	// existed. Long-standing behavior the frontend relies on.
	writeJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

// ---------- Notes ----------

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := s.store.AddNote(r.Context(), model.Note{Title: req.Title, Content: req.Content})
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "id": id})
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.store.ListNotes(r.Context())
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

// ---------- Lookups ----------

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	crop := r.URL.Query().Get("crop")
	if crop == "" {
		crop = "Wheat"
	}
	writeJSON(w, http.StatusOK, market.GetRates(crop))
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	crop := r.URL.Query().Get("crop")
	if crop == "" {
		crop = "Wheat"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"crop":     crop,
		"schedule": schedule.ForCrop(crop),
		"next_due": schedule.NextRecommendation(crop, s.now().UTC()),
	})
}

func (s *Server) handleSchemes(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	district := r.URL.Query().Get("district")

	results, err := schemes.Filter(s.schemesPath, state, district)
	if err != nil {
		slog.Error("failed to load schemes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load schemes")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"schemes": results})
}

// ---------- Collaborators ----------

func (s *Server) handleWeather(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	if city == "" {
		city = "Pune"
	}

	report, err := s.weather.Current(r.Context(), city)
	if err != nil {
		slog.Warn("weather lookup failed", "city", city, "error", err)
		writeJSON(w, statusFor(err), map[string]string{"error": err.Error(), "city": city})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Src  string `json:"src"`
		Dest string `json:"dest"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	translated, err := s.translator.Translate(r.Context(), req.Text, req.Src, req.Dest)
	if err != nil {
		slog.Warn("translation failed", "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"translated": translated})
}

func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
		Lang string `json:"lang"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	audio, err := s.translator.Speak(r.Context(), req.Text, req.Lang)
	if err != nil {
		slog.Warn("speech synthesis failed", "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (s *Server) handleDisease(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := leaf.Classify(file)
	if err != nil {
		slog.Warn("leaf classification failed", "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}
