package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"assessrec/recommend"
)

// RecommendRequest is the /recommend payload. TopN is a pointer so that an
// explicit zero is rejected as invalid instead of being mistaken for "use the
// default".
type RecommendRequest struct {
	Query string `json:"query"`
	TopN  *int   `json:"top_n"`
}

type RecommendResponse struct {
	Recommendations []recommend.Record `json:"recommendations"`
	Query           string             `json:"query"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendRequest

	switch r.Method {
	case http.MethodPost:
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
		defer r.Body.Close()
	case http.MethodGet:
		req.Query = r.URL.Query().Get("query")
		if raw := r.URL.Query().Get("top_n"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "top_n must be an integer")
				return
			}
			req.TopN = &n
		}
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	topN := s.defaultTopN
	if req.TopN != nil {
		topN = *req.TopN
	}

	requestID := uuid.NewString()
	logger := s.logger.With(zap.String("request_id", requestID))

	res, err := s.engine.Recommend(r.Context(), req.Query, topN)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrEmptyQuery), errors.Is(err, recommend.ErrInvalidTopN):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Error("recommendation failed",
				zap.String("query", truncateQuery(req.Query)),
				zap.Error(err),
			)
			writeError(w, http.StatusInternalServerError, "failed to compute recommendations")
		}
		return
	}

	logger.Info("recommendation served",
		zap.String("query", truncateQuery(req.Query)),
		zap.Int("top_n", topN),
		zap.Int("results", len(res.Recommendations)),
		zap.Bool("no_content", res.NoContent),
	)

	writeJSON(w, http.StatusOK, RecommendResponse{
		Recommendations: res.Recommendations,
		Query:           res.Query,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the assessment recommender API. Use /recommend to get recommendations.",
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func truncateQuery(q string) string {
	q = strings.TrimSpace(q)
	if len(q) > 120 {
		return q[:120] + "..."
	}
	return q
}
