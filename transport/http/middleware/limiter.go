package middleware

import (
	"hotel/shared"
	"hotel/shared/constant"
	"hotel/transport/http/response"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"
	unknownAgent      = "unknown"
)

// RateLimit counts requests per client in fixed windows aligned to the epoch.
// The limiter lets traffic through when the cache is unavailable.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limit := a.config.App.RateLimiter

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limit.Enable || limit.MaxRequests <= 0 || limit.WindowSeconds <= 0 {
				next.ServeHTTP(w, r)

				return
			}

			window := int64(limit.WindowSeconds)
			now := a.clock.Now().Unix()
			resetIn := window - now%window

			key := shared.BuildCacheKey(cacheKeyRateLimit, a.clientKey(r), strconv.FormatInt(now/window, 10))

			count, err := a.cache.Increment(r.Context(), key, limit.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, request allowed")
				next.ServeHTTP(w, r)

				return
			}

			header := w.Header()
			header.Set(constant.RequestHeaderRateLimit, strconv.Itoa(limit.MaxRequests))
			header.Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(limit.MaxRequests)-count), 10))
			header.Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limit.WindowSeconds))
			header.Set(constant.RequestHeaderRateLimitReset, strconv.FormatInt(resetIn, 10))

			if count > int64(limit.MaxRequests) {
				header.Set(constant.RequestHeaderRetryAfter, strconv.FormatInt(resetIn, 10))
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey identifies a caller by address and a hash of its user agent.
func (a *appMiddleware) clientKey(r *http.Request) string {
	agent := r.Header.Get(constant.RequestHeaderUserAgent)
	if agent == "" {
		agent = unknownAgent
	}

	return a.getClientIP(r) + ":" + strconv.FormatUint(xxhash.Sum64String(agent), 16)
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constant.RequestHeaderForwardedFor); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")

		return strings.TrimSpace(first)
	}

	if realIP := r.Header.Get(constant.RequestHeaderRealIP); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
