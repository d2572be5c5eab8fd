package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"fintrack/internal/cache"
	applog "fintrack/internal/log"
	"fintrack/internal/report"
	"fintrack/internal/services"
)

// Options tunes the middleware and the report cache.
type Options struct {
	RateLimitPerMinute int
	ReportCacheSize    int
	ReportCacheTTL     time.Duration
	CacheCleanup       time.Duration
	Logger             *applog.Logger
}

type Server struct {
	http.Server
	svc         *services.LedgerService
	logger      *applog.Logger
	structured  *applog.StructuredLogger
	rateLimiter *rateLimiter
	metrics     *securityMetrics
	now         func() time.Time

	// Reports keyed by ledger revision.
	reportCache  *cache.LRUCache[report.Report]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, svc *services.LedgerService, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}
	logger = logger.WithComponent(applog.ComponentHTTP)
	if opts.ReportCacheSize < 1 {
		opts.ReportCacheSize = 64
	}
	if opts.ReportCacheTTL <= 0 {
		opts.ReportCacheTTL = 5 * time.Minute
	}
	if opts.CacheCleanup <= 0 {
		opts.CacheCleanup = 10 * time.Minute
	}

	s := &Server{
		svc:          svc,
		logger:       logger,
		structured:   applog.NewStructuredLogger(logger),
		rateLimiter:  newRateLimiter(opts.RateLimitPerMinute),
		metrics:      &securityMetrics{},
		now:          time.Now,
		reportCache:  cache.NewLRUCache[report.Report](opts.ReportCacheSize, opts.ReportCacheTTL),
		cacheManager: cache.NewManager(),
	}
	s.cacheManager.Register(s.reportCache)
	s.cacheManager.StartCleanup(opts.CacheCleanup)
	go s.rateLimiter.startCleanup()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("POST /api/classify", s.handleClassify)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("POST /api/transactions/import", s.handleImportTransactions)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("PUT /api/accounts/{id}", s.handleUpdateAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.handleDeleteAccount)

	mux.HandleFunc("GET /api/budgets", s.handleListBudgets)
	mux.HandleFunc("PUT /api/budgets", s.handlePutBudget)
	mux.HandleFunc("GET /api/budgets/signals", s.handleBudgetSignals)
	mux.HandleFunc("GET /api/goals", s.handleListGoals)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/insights", s.handleInsights)
	mux.HandleFunc("GET /api/networth", s.handleNetWorth)
	mux.HandleFunc("GET /api/report", s.handleReport)

	var handler http.Handler = mux
	handler = s.withSecurity(handler)
	handler = applog.RequestIDMiddleware(requestIDFromHeader)(handler)
	handler = applog.Middleware(logger)(handler)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// withSecurity adds security headers, rate limiting on mutating methods and
// request logging.
func (s *Server) withSecurity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		clientIP := extractClientIP(r, s.metrics)

		if detectSuspiciousRequest(r, s.metrics) {
			applog.FromContext(ctx).WarnContext(ctx, "Suspicious request",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path,
				applog.FieldUserAgent, r.Header.Get("User-Agent"))
		}

		setSecurityHeaders(w.Header())
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP, s.metrics) {
			applog.FromContext(ctx).WithComponent(applog.ComponentRateLimit).WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			rw.Header().Set("Retry-After", strconv.Itoa(s.rateLimiter.retryAfter(clientIP)))
			writeJSON(rw, http.StatusTooManyRequests, errorResponse{
				Error:     "rate limit exceeded, please try again later",
				RequestID: applog.RequestID(ctx),
			})
		} else {
			next.ServeHTTP(rw, r)
		}

		s.structured.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	})
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}

// Shutdown stops the background cleanup goroutines, then the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.cacheManager.Stop()
		s.rateLimiter.stop()

		slog.InfoContext(ctx, "Stopping HTTP server",
			"component", applog.ComponentHTTP,
			"security", s.metrics.snapshot())
		if err := s.Server.Shutdown(ctx); err != nil {
			shutdownErr = fmt.Errorf("http shutdown: %w", err)
		}
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, readyResponse{
		Status:      "ready",
		Revision:    s.svc.Revision(),
		Currency:    s.svc.Currency(),
		ReportCache: s.reportCache.Stats(),
		Security:    s.metrics.snapshot(),
	})
}
