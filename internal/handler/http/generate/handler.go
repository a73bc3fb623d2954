// Package generate provides the protected endpoint that triggers a daily
// content run on demand. It is intended for operators and external
// schedulers, not end users.
package generate

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"daily-wisdom/internal/domain/entity"
	"daily-wisdom/internal/handler/http/respond"
	"daily-wisdom/internal/usecase/daily"
)

// Runner executes one full content run for a date.
type Runner interface {
	GenerateContentForDate(ctx context.Context, date string, opts daily.Options) (*daily.Result, error)
}

// Handler triggers a content run. The request is authenticated with a static
// API key; the run itself is detached from the request so slow generations
// never hold the connection open.
type Handler struct {
	Runner Runner
	APIKey string
}

// request is the JSON body of the trigger call. All fields are optional;
// an omitted date means today.
type request struct {
	Date             string `json:"date"`
	Force            bool   `json:"force"`
	TranslationsOnly bool   `json:"translations_only"`
}

type response struct {
	Status string `json:"status"`
	Date   string `json:"date"`
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.APIKey == "" {
		respond.SafeError(w, http.StatusServiceUnavailable, fmt.Errorf("generation endpoint is not configured"))
		return
	}

	provided := r.Header.Get("X-API-Key")
	if subtle.ConstantTimeCompare([]byte(provided), []byte(h.APIKey)) != 1 {
		respond.Error(w, http.StatusUnauthorized, fmt.Errorf("invalid api key"))
		return
	}

	var req request
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
			respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
			return
		}
	}

	date := req.Date
	if date == "" {
		date = entity.Today()
	}
	if !entity.IsValidDate(date) {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date))
		return
	}

	opts := daily.Options{Force: req.Force, TranslationsOnly: req.TranslationsOnly}

	// The run outlives the request; the client polls /articles for results.
	runCtx := context.WithoutCancel(r.Context())
	go func() {
		result, err := h.Runner.GenerateContentForDate(runCtx, date, opts)
		if err != nil {
			slog.Error("triggered content run failed",
				slog.String("date", date),
				slog.Bool("force", opts.Force),
				slog.Any("error", err))
			return
		}
		slog.Info("triggered content run finished",
			slog.String("date", date),
			slog.Bool("generated", result.Generated),
			slog.Int("translated", len(result.Translated)),
			slog.Int("failed", len(result.Failed)))
	}()

	respond.JSON(w, http.StatusAccepted, response{Status: "accepted", Date: date})
}

// Register registers the generation trigger endpoint with the given mux.
func Register(mux *http.ServeMux, runner Runner, apiKey string) {
	mux.Handle("POST /internal/generate", Handler{Runner: runner, APIKey: apiKey})
}
