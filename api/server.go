// Package api provides the HTTP server for NewsPulse.
//
// It exposes the original topic-page surface (/, /get_news, /chat) with
// frozen response shapes, plus a versioned JSON API under /api/v1 with
// health, topics, news, trending, key status, and WebSocket chat.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/seenimoa/newspulse/internal/analysis/sentiment"
	"github.com/seenimoa/newspulse/internal/assistant"
	"github.com/seenimoa/newspulse/internal/config"
	"github.com/seenimoa/newspulse/internal/datasource"
	"github.com/seenimoa/newspulse/internal/llm"
	"github.com/seenimoa/newspulse/internal/logging"
	"github.com/seenimoa/newspulse/internal/pipeline"
	"github.com/seenimoa/newspulse/internal/topics"
	"github.com/seenimoa/newspulse/pkg/models"
	"github.com/seenimoa/newspulse/web"
)

// Request timeouts per endpoint class. Expiry degrades like any other
// upstream failure: empty batch for news, apology fallback for chat.
const (
	newsTimeout = 15 * time.Second
	chatTimeout = 60 * time.Second
)

// Server is the HTTP API server.
type Server struct {
	router    chi.Router
	cfg       *config.Config
	analyzer  *pipeline.Analyzer
	trending  *pipeline.Trending
	assist    *assistant.Assistant
	wsHub     *WSHub
	indexTmpl *template.Template
	log       *logging.Logger
	startedAt time.Time
	version   string
}

// NewServer wires the full service from config. Collaborators (news
// source, scorer, analyzer, trending, assistant) are constructed once
// and live for the process lifetime. A missing LLM key is not fatal:
// chat degrades to a fixed apology while the news surface keeps working.
func NewServer(cfg *config.Config) (*Server, error) {
	analyzer, err := BuildAnalyzer(cfg)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		cfg:       cfg,
		analyzer:  analyzer,
		trending:  pipeline.NewTrending(analyzer, time.Duration(cfg.News.TrendingTTLSec)*time.Second),
		assist:    BuildAssistant(cfg),
		wsHub:     NewWSHub(),
		indexTmpl: web.IndexTemplate(),
		log:       logging.New("api"),
		startedAt: time.Now(),
		version:   "dev",
	}
	srv.router = srv.buildRouter()
	return srv, nil
}

// BuildSource selects the news provider from config. Shared with the
// one-shot CLI commands.
func BuildSource(cfg *config.Config) (datasource.Source, error) {
	switch cfg.News.Provider {
	case "rss":
		return datasource.NewRSS(cfg.News.Feeds), nil
	case "newsapi", "":
		var opts []datasource.NewsAPIOption
		if cfg.News.BaseURL != "" {
			opts = append(opts, datasource.WithNewsAPIBaseURL(cfg.News.BaseURL))
		}
		return datasource.NewNewsAPI(cfg.News.APIKey, opts...), nil
	default:
		return nil, fmt.Errorf("unknown news provider %q", cfg.News.Provider)
	}
}

// BuildAnalyzer wires the fetch-and-score pipeline from config.
func BuildAnalyzer(cfg *config.Config) (*pipeline.Analyzer, error) {
	source, err := BuildSource(cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewAnalyzer(source, sentiment.NewLexiconScorer(),
		pipeline.WithLanguage(cfg.News.Language),
		pipeline.WithPageSize(cfg.News.PageSize),
		pipeline.WithFreshnessWindow(time.Duration(cfg.News.WindowHours)*time.Hour),
	), nil
}

// BuildAssistant constructs the chat assistant over the configured LLM
// provider. Provider construction fails only on a missing key; that case
// is logged and the assistant runs without a backend.
func BuildAssistant(cfg *config.Config) *assistant.Assistant {
	var provider llm.LLMProvider
	var err error
	switch cfg.LLM.Provider {
	case llm.ProviderOpenAI:
		provider, err = llm.NewOpenAIProvider(cfg.LLM.OpenAIKey)
	default:
		provider, err = llm.NewGeminiProvider(cfg.LLM.GeminiKey)
	}
	if err != nil {
		apiLog.Warnf("LLM provider %q unavailable: %v; chat responses will degrade", cfg.LLM.Provider, err)
		provider = nil
	}

	return assistant.New(provider,
		assistant.WithModel(cfg.LLM.Model),
		assistant.WithTemperature(cfg.LLM.Temperature),
		assistant.WithMaxTokens(cfg.LLM.MaxTokens),
	)
}

// SetVersion sets the version string reported by the health endpoint.
// Must be called before ListenAndServe.
func (s *Server) SetVersion(v string) {
	if v != "" {
		s.version = v
	}
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ListenAndServe starts the HTTP server and blocks until SIGINT/SIGTERM,
// then drains in-flight requests within the configured shutdown timeout.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.wsHub.Run()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Infof("listening on %s", addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-done:
	}
	s.log.Infof("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(s.cfg.Server.ShutdownTimeoutSec)*time.Second)
	defer cancel()

	return httpSrv.Shutdown(ctx)
}

// buildRouter configures all routes and middleware.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))

	origins := []string{"*"}
	if len(s.cfg.Server.CORSOrigins) > 0 {
		origins = s.cfg.Server.CORSOrigins
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Original surface. Paths and response shapes are frozen; clients of
	// the old service must keep working unmodified.
	r.Get("/", s.handleIndex)
	r.Get("/get_news", s.handleGetNews)
	r.Post("/chat", s.handleChat)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/topics", s.handleTopics)
		r.Get("/news/{topic}", s.handleNewsByTopic)
		r.Get("/trending", s.handleTrending)
		r.Get("/config/keys", s.handleConfigKeys)
		r.Get("/ws", s.handleWebSocket)
	})

	// Topic page assets.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.StaticFS()))))

	return r
}

// ============================================================
// Request / Response types
// ============================================================

// APIResponse is the standard JSON envelope for /api/v1 routes.
type APIResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ChatRequest is the body for POST /chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// newsResponse is the frozen /get_news payload.
type newsResponse struct {
	Articles []models.EnrichedArticle `json:"articles"`
}

// chatResponse is the frozen /chat payload.
type chatResponse struct {
	Response string `json:"response"`
}

// legacyError is the frozen error payload of the original surface.
type legacyError struct {
	Error string `json:"error"`
}

// indexData is the template model for the topic page.
type indexData struct {
	Topics  []string
	Default string
}

// ============================================================
// Original surface handlers
// ============================================================

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Topics:  topics.Keys(),
		Default: topics.Default,
	}

	// Render to a buffer first so a template failure can still produce
	// the original plain-text error instead of a half-written page.
	var buf bytes.Buffer
	if err := s.indexTmpl.Execute(&buf, data); err != nil {
		s.log.Errorf("error rendering index page: %v", err)
		http.Error(w, "Error loading page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func (s *Server) handleGetNews(w http.ResponseWriter, r *http.Request) {
	topic := r.URL.Query().Get("topic")

	ctx, cancel := context.WithTimeout(r.Context(), newsTimeout)
	defer cancel()

	articles := s.analyzer.FetchAndScore(ctx, topic)

	// An empty batch still encodes as "articles": [], never null.
	body, err := json.Marshal(newsResponse{Articles: articles})
	if err != nil {
		s.log.Errorf("error in get_news endpoint: %v", err)
		writeJSON(w, http.StatusInternalServerError, legacyError{Error: "Internal server error"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, legacyError{Error: "Invalid request body"})
		return
	}
	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, legacyError{Error: "Missing message"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	// Respond never fails; provider trouble comes back as apology text.
	writeJSON(w, http.StatusOK, chatResponse{Response: s.assist.Respond(ctx, req.Message)})
}

// ============================================================
// /api/v1 handlers
// ============================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"status":     "ok",
			"version":    s.version,
			"uptime":     time.Since(s.startedAt).Round(time.Second).String(),
			"ws_clients": s.wsHub.ClientCount(),
		},
	})
}

func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"topics":  topics.Keys(),
			"default": topics.Default,
		},
	})
}

func (s *Server) handleNewsByTopic(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")

	ctx, cancel := context.WithTimeout(r.Context(), newsTimeout)
	defer cancel()

	articles := s.analyzer.FetchAndScore(ctx, topic)
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    newsResponse{Articles: articles},
	})
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), chatTimeout)
	defer cancel()

	summaries, fresh := s.trending.Overview(ctx)
	if fresh {
		// Push recomputed overviews to WebSocket clients.
		s.wsHub.Broadcast(WSMessage{
			Type: "trending_update",
			Data: map[string]any{"topics": summaries},
		})
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]any{
			"topics": summaries,
		},
	})
}

func (s *Server) handleConfigKeys(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    config.CheckAPIKeys(s.cfg),
	})
}

// ============================================================
// Helpers
// ============================================================

var apiLog = logging.New("api")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		apiLog.Errorf("failed to write JSON response: %v", err)
	}
}
