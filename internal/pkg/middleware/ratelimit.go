package middleware

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	apperror "eventra/internal/errors"
	"eventra/internal/pkg/cache"
	"eventra/internal/pkg/logger"
)

// RateLimiter limita requisições por IP numa janela fixa, com o contador guardado no cache.
// prefix separa os contadores de rotas diferentes.
func RateLimiter(client cache.Client, prefix string, limit int, duration time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				ip = r.RemoteAddr
			}
			key := "rate-limit:" + prefix + ":" + ip
			ctx := r.Context()

			count, err := client.GetInt(ctx, key)
			if errors.Is(err, cache.ErrCacheMiss) {
				if err := client.Set(ctx, key, 1, duration); err != nil {
					log.Error("Falha ao iniciar contador de rate limit.", err)
				}
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
				next.ServeHTTP(w, r)
				return
			} else if err != nil {
				writeError(w, apperror.NewInternalError("rate limit counter unavailable", err))
				log.Error("Falha ao ler contador de rate limit.", err)
				return
			}

			if count >= limit {
				w.Header().Set("X-RateLimit-Remaining", "0")
				writeError(w, apperror.NewRateLimitError("Too many attempts. Please wait and try again."))
				log.Warn("Rate limit excedido.", map[string]interface{}{"ip": ip, "route": prefix})
				return
			}

			if _, err := client.Incr(ctx, key); err != nil {
				log.Error("Falha ao incrementar contador de rate limit.", err)
			}
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
			next.ServeHTTP(w, r)
		})
	}
}
