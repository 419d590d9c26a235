package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"time"

	"github.com/lumenarts/gallery-api/api/responses"
	pkgerrors "github.com/lumenarts/gallery-api/pkg/errors"
	"github.com/lumenarts/gallery-api/pkg/logger"
)

// maxLimitedBody bounds how much of a login body is buffered to find the email.
const maxLimitedBody = 64 << 10

type fixedWindowLimiter interface {
	FixedWindowAllow(ctx context.Context, scope string, limit int64, window time.Duration) (bool, int64, error)
}

// limitRule is one counter a request is charged against. subject returns the
// value the counter is keyed on, or "" when the request has none.
type limitRule struct {
	kind    string
	limit   int64
	subject func(r *http.Request) (string, error)
}

// AuthRateLimitPolicy is a named set of fixed-window counters sharing one
// window, currently per client ip and per hashed email.
type AuthRateLimitPolicy struct {
	name   string
	window time.Duration
	rules  []limitRule
}

func NewAuthRateLimitPolicy(name string, window time.Duration, ipLimit, emailLimit int) AuthRateLimitPolicy {
	p := AuthRateLimitPolicy{name: strings.ToLower(strings.TrimSpace(name)), window: window}
	if p.name == "" {
		p.name = "auth"
	}
	if ipLimit > 0 {
		p.rules = append(p.rules, limitRule{kind: "ip", limit: int64(ipLimit), subject: ipSubject})
	}
	if emailLimit > 0 {
		p.rules = append(p.rules, limitRule{kind: "email", limit: int64(emailLimit), subject: emailSubject})
	}
	return p
}

// AuthRateLimit charges every rule of policy in order and answers 429 at the
// first one exhausted. A nil limiter or an empty policy disables it.
func AuthRateLimit(policy AuthRateLimitPolicy, limiter fixedWindowLimiter, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil || policy.window <= 0 || len(policy.rules) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			for _, rule := range policy.rules {
				subject, err := rule.subject(r)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request"))
					return
				}
				if subject == "" {
					continue
				}
				allowed, attempts, err := limiter.FixedWindowAllow(ctx, policy.name+":"+rule.kind+":"+subject, rule.limit, policy.window)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
					return
				}
				if !allowed {
					policy.reject(ctx, logg, w, rule, subject, attempts)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (p AuthRateLimitPolicy) reject(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, rule limitRule, subject string, attempts int64) {
	if logg != nil {
		logg.Warn(logg.WithFields(ctx, map[string]any{
			"policy":   p.name,
			"scope":    rule.kind,
			"subject":  subject,
			"attempts": attempts,
			"limit":    rule.limit,
		}), "auth.rate_limit.blocked")
	}
	// the counter may have started late in the window; a full window is the
	// longest the client can have to wait
	w.Header().Set("Retry-After", strconv.Itoa(int(p.window.Round(time.Second).Seconds())))
	responses.WriteError(ctx, nil, w, pkgerrors.New(pkgerrors.CodeRateLimit, "too many attempts, try again later"))
}

func ipSubject(r *http.Request) (string, error) {
	return clientIP(r), nil
}

// emailSubject peeks at the JSON body and puts it back for the handler. The
// email is hashed so raw addresses never reach redis or the logs.
func emailSubject(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", nil
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxLimitedBody))
	if err != nil {
		return "", err
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		Email string `json:"email"`
	}
	if json.Unmarshal(body, &payload) != nil {
		return "", nil
	}
	email := strings.ToLower(strings.TrimSpace(payload.Email))
	if email == "" {
		return "", nil
	}
	sum := sha256.Sum256([]byte(email))
	return hex.EncodeToString(sum[:]), nil
}

// clientIP trusts only the last X-Forwarded-For hop, the one our single
// reverse proxy appended. Earlier hops come from the client and can be
// forged. It falls back to X-Real-IP, then the socket peer.
func clientIP(r *http.Request) string {
	if values := r.Header.Values("X-Forwarded-For"); len(values) > 0 {
		hops := strings.Split(values[len(values)-1], ",")
		if addr, err := netip.ParseAddr(strings.TrimSpace(hops[len(hops)-1])); err == nil {
			return addr.String()
		}
	}
	if addr, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return addr.String()
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
