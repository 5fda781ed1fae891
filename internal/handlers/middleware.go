package handlers

import (
	"encoding/json"
	"grammable/internal/errs"
	"grammable/internal/models"
	"grammable/internal/msgs"
	"grammable/internal/utils"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// CurrentUserMiddleware resolves the session when one is present. Anonymous requests pass through.
func (ah *AuthHandler) CurrentUserMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := utils.GetTokenFromRequest(ctx)
		if token == "" {
			ctx.Next()
			return
		}

		claims, err := ah.authService.Authenticate(ctx.Request.Context(), token)
		if err != nil {
			log.WithError(err).Debug("Ignoring session token")
			ctx.Next()
			return
		}

		ctx.Set("user_id", claims.UserID)
		ctx.Set("user_email", claims.Email)
		ctx.Set("claims", claims)
		ctx.Next()
	}
}

// MustAuthenticateMiddleware sends anonymous visitors to the sign in page.
func (ah *AuthHandler) MustAuthenticateMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if utils.GetUserIdFromContext(ctx) != 0 {
			ctx.Next()
			return
		}

		if wantsJSON(ctx) {
			ctx.Header("Location", SignInPath)
			ctx.AbortWithStatusJSON(http.StatusFound, models.Response{
				Success: false,
				Message: msgs.MsgYouMustLoginFirst,
				Errors:  []error{errs.ErrUnauthorized},
			})
			return
		}
		ctx.Redirect(http.StatusFound, SignInPath)
		ctx.Abort()
	}
}

func RequestLoggerMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path

		ctx.Next()

		entry := log.WithFields(log.Fields{
			"method":    ctx.Request.Method,
			"path":      path,
			"status":    ctx.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": ctx.ClientIP(),
		})
		if len(ctx.Errors) > 0 {
			entry.Error(ctx.Errors.String())
			return
		}
		entry.Info("Request handled")
	}
}

const maxTrackedClients = 10000

// RateLimiter keeps one token bucket per client IP. Only write requests are limited.
type RateLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func NewRateLimiter(rps float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limit:    rate.Limit(rps),
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	if rl.limit <= 0 {
		return true
	}

	rl.mu.Lock()
	limiter, ok := rl.limiters[key]
	if !ok {
		if len(rl.limiters) >= maxTrackedClients {
			rl.limiters = make(map[string]*rate.Limiter)
		}
		limiter = rate.NewLimiter(rl.limit, rl.burst)
		rl.limiters[key] = limiter
	}
	rl.mu.Unlock()

	return limiter.Allow()
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		switch ctx.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			ctx.Next()
			return
		}

		if !rl.Allow(ctx.ClientIP()) {
			renderError(ctx, []error{errs.ErrTooManyRequests})
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// LimitRequestBody caps request bodies at limit bytes. Declared oversize bodies are refused
// before anything reads them, the rest fail while being read.
func LimitRequestBody(next http.Handler, limit int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if limit <= 0 {
			next.ServeHTTP(w, r)
			return
		}
		if r.ContentLength > limit {
			writeTooLarge(w, r)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		next.ServeHTTP(w, r)
	})
}

func writeTooLarge(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Accept"), gin.MIMEJSON) {
		http.Error(w, errs.ErrRequestTooLarge.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusRequestEntityTooLarge)
	if err := json.NewEncoder(w).Encode(models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
		Errors:  []error{errs.ErrRequestTooLarge},
	}); err != nil {
		log.WithError(err).Debug("Failed to write response")
	}
}

// MethodOverride lets HTML forms reach PATCH and DELETE routes by posting a _method field.
// It wraps the router because gin matches routes before any middleware runs.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			method := r.Header.Get("X-HTTP-Method-Override")
			if method == "" {
				method = r.PostFormValue("_method")
			}
			switch method = strings.ToUpper(method); method {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = method
			}
		}
		next.ServeHTTP(w, r)
	})
}
