package handlers

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/salesfolio/backend/src/logger"
	"github.com/username/salesfolio/backend/src/utils"
	"golang.org/x/time/rate"
)

// RateLimiter keeps one token bucket per client IP. Buckets of clients that
// stay quiet for visitorTTL are dropped.
type RateLimiter struct {
	mu       sync.Mutex
	visitors *cache.Cache
	rps      rate.Limit
	burst    int
}

const visitorTTL = 3 * time.Minute

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: cache.New(visitorTTL, time.Minute),
		rps:      rate.Limit(rps),
		burst:    burst,
	}
}

func (rl *RateLimiter) limiter(ip string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, found := rl.visitors.Get(ip); found {
		rl.visitors.SetDefault(ip, v)
		return v.(*rate.Limiter)
	}
	l := rate.NewLimiter(rl.rps, rl.burst)
	rl.visitors.SetDefault(ip, l)
	return l
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.limiter(ip).Allow() {
			logger.L.Warn("Rate limit exceeded",
				"method", r.Method,
				"path", r.URL.Path,
				"remoteAddr", r.RemoteAddr)
			w.Header().Set("Retry-After", "1")
			utils.SendJSONError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = strings.TrimSuffix(strings.TrimPrefix(r.RemoteAddr, "["), "]")
	}
	return ip
}

// CORSMiddleware allows browser requests from the configured origins. Requests
// without an Origin header are not cross-origin and pass through untouched.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "POST, GET, PUT, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, If-None-Match")
				w.Header().Set("Access-Control-Expose-Headers", "ETag")
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				logger.L.Debug("Handling OPTIONS preflight request", "path", r.URL.Path, "origin", origin)
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLogger logs one line per request with its status and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.L.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}
