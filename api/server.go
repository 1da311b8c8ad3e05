package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"assessrec/recommend"
)

// Recommender is the engine surface the API needs.
type Recommender interface {
	Recommend(ctx context.Context, query string, topN int) (*recommend.Result, error)
}

// Server exposes the recommendation engine over HTTP.
type Server struct {
	engine      Recommender
	logger      *zap.Logger
	port        int
	defaultTopN int
}

func NewServer(engine Recommender, logger *zap.Logger, port, defaultTopN int) *Server {
	return &Server{
		engine:      engine,
		logger:      logger,
		port:        port,
		defaultTopN: defaultTopN,
	}
}

// Start blocks serving HTTP until the listener fails.
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/recommend", s.handleRecommend)
	mux.HandleFunc("/health", s.handleHealth)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.logger.Info("starting api server", zap.Int("port", s.port))
	return srv.ListenAndServe()
}
