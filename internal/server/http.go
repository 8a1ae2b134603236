package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"valorant-sync/internal/api"
	"valorant-sync/internal/domain"
	"valorant-sync/internal/middleware"
	"valorant-sync/internal/repository"

	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

type Syncer interface {
	Sync(ctx context.Context, userID, rawHandle string) (*domain.StatSummary, error)
}

type StatsQuerier interface {
	Recent(ctx context.Context, userID string, limit int) ([]domain.DailyStat, error)
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	SkillProfile(ctx context.Context, userID string) (*domain.SkillProfile, error)
}

type AccountQuerier interface {
	Linked(ctx context.Context, userID string) (*domain.LinkedAccount, error)
}

type RateLimitReporter interface {
	GetRateLimitInfo() api.RateLimitInfo
}

type SyncRequest struct {
	IngameID string `json:"ingame_id"`
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Time      string            `json:"time"`
	RateLimit api.RateLimitInfo `json:"rate_limit"`
}

type Server struct {
	sync      Syncer
	stats     StatsQuerier
	accounts  AccountQuerier
	rateLimit RateLimitReporter
	auth      middleware.TokenValidator
	logger    zerolog.Logger
}

func NewServer(sync Syncer, stats StatsQuerier, accounts AccountQuerier, rateLimit RateLimitReporter, auth middleware.TokenValidator, logger zerolog.Logger) *Server {
	return &Server{sync: sync, stats: stats, accounts: accounts, rateLimit: rateLimit, auth: auth, logger: logger}
}

// Handler routes the JSON API. Every /api route requires a bearer token.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(s.auth)

	mux.Handle("POST /api/valorant/sync", requireAuth(http.HandlerFunc(s.handleSync)))
	mux.Handle("GET /api/valorant/account", requireAuth(http.HandlerFunc(s.handleAccount)))
	mux.Handle("GET /api/stats/recent", requireAuth(http.HandlerFunc(s.handleRecent)))
	mux.Handle("GET /api/stats/leaderboard", requireAuth(http.HandlerFunc(s.handleLeaderboard)))
	mux.Handle("GET /api/profile/skills", requireAuth(http.HandlerFunc(s.handleSkills)))
	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	var req SyncRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	summary, err := s.sync.Sync(r.Context(), middleware.UserIDFrom(r.Context()), req.IngameID)
	if err != nil {
		kind := domain.KindOf(err)
		logger := zerolog.Ctx(r.Context())
		if kind.HTTPStatus() >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("kind", kind.String()).Msg("stat sync failed")
		} else {
			logger.Info().Err(err).Str("kind", kind.String()).Msg("stat sync rejected")
		}
		writeError(w, kind.HTTPStatus(), domain.UserMessage(err))
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Linked(r.Context(), middleware.UserIDFrom(r.Context()))
	if errors.Is(err, repository.ErrAccountNotLinked) {
		writeError(w, http.StatusNotFound, "No Riot account linked")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, account)
}

func (s *Server) handleRecent(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	stats, err := s.stats.Recent(r.Context(), middleware.UserIDFrom(r.Context()), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	entries, err := s.stats.Leaderboard(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	profile, err := s.stats.SkillProfile(r.Context(), middleware.UserIDFrom(r.Context()))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}
	if s.rateLimit != nil {
		resp.RateLimit = s.rateLimit.GetRateLimitInfo()
	}
	writeJSON(w, http.StatusOK, resp)
}

// parseLimit reads ?limit=. A missing value yields 0, which the services
// replace with their default.
func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		writeError(w, http.StatusBadRequest, "Invalid limit")
		return 0, false
	}
	return limit, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
