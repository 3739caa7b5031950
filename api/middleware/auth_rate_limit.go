package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/districthealth/medavail-backend/api/responses"
	pkgerrors "github.com/districthealth/medavail-backend/pkg/errors"
	"github.com/districthealth/medavail-backend/pkg/logger"
)

type rateLimiterStore interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

const maxRateLimitBody = 64 << 10

// AuthRateLimitPolicy defines the throttling parameters for a traffic surface.
type AuthRateLimitPolicy struct {
	name       string
	window     time.Duration
	ipLimit    int
	emailLimit int
}

// NewAuthRateLimitPolicy builds a policy with the supplied window and limits.
func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	return AuthRateLimitPolicy{
		name:       strings.ToLower(strings.TrimSpace(name)),
		window:     window,
		ipLimit:    ipLimit,
		emailLimit: emailLimit,
	}
}

func (p AuthRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.emailLimit > 0)
}

func (p AuthRateLimitPolicy) normalizedName() string {
	if p.name == "" {
		return "auth"
	}
	return p.name
}

func (p AuthRateLimitPolicy) ipScope(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("%s:ip:%s", p.normalizedName(), ip)
}

func (p AuthRateLimitPolicy) emailScope(hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("%s:email:%s", p.normalizedName(), hash)
}

// AuthRateLimit throttles auth endpoints with fixed windows keyed by client
// IP and by a hash of the submitted email. A store error fails the request
// with DEPENDENCY rather than letting it through.
func AuthRateLimit(policy AuthRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			limiter := scopeLimiter{policy: policy, store: store, logg: logg, w: w}

			if policy.ipLimit > 0 {
				ip := clientIP(r)
				if !limiter.allow(ctx, "ip", policy.ipScope(ip), policy.ipLimit, map[string]any{"ip": ip}) {
					return
				}
			}

			if policy.emailLimit > 0 {
				body, err := io.ReadAll(io.LimitReader(r.Body, maxRateLimitBody))
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unreadable request body"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if email := normalizeEmail(extractEmail(body)); email != "" {
					hash := hashValue(email)
					if !limiter.allow(ctx, "email", policy.emailScope(hash), policy.emailLimit, map[string]any{"email_hash": hash}) {
						return
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

type scopeLimiter struct {
	policy AuthRateLimitPolicy
	store  rateLimiterStore
	logg   *logger.Logger
	w      http.ResponseWriter
}

// allow counts one hit on scope and writes the rejection itself when the
// request must stop.
func (l scopeLimiter) allow(ctx context.Context, kind, scope string, limit int, fields map[string]any) bool {
	if scope == "" {
		return true
	}
	allowed, count, err := l.store.FixedWindowAllow(ctx, scope, int64(limit), l.policy.window)
	if err != nil {
		responses.WriteError(ctx, l.logg, l.w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting unavailable"))
		return false
	}
	if allowed {
		return true
	}
	if l.logg != nil {
		fields["scope"] = kind
		fields["policy"] = l.policy.normalizedName()
		fields["attempts"] = count
		fields["limit"] = limit
		l.logg.Warn(l.logg.WithFields(ctx, fields), "auth.rate_limit.blocked")
	}
	l.w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(l.policy.window.Seconds()))))
	responses.WriteError(ctx, nil, l.w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
	return false
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractEmail(payload []byte) string {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.Email
}

func normalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
