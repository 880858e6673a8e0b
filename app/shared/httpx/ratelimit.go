package httpx

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/apperrors"
	"github.com/nicolapicasso/wwtrail-all-sub003/app/shared/clock"
	"golang.org/x/time/rate"
)

// idleClientTTL is how long a client bucket survives without writes. Idle
// buckets are swept at most once per idleClientTTL.
const idleClientTTL = 10 * time.Minute

// ErrWriteBudgetExceeded is reported when a client spends its write budget.
var ErrWriteBudgetExceeded = apperrors.RateLimited("too many write requests")

type clientBucket struct {
	tokens   *rate.Limiter
	lastSeen time.Time
}

// WriteBudget meters ledger and catalog writes per client address with a
// token bucket each. It reads time from an injected clock.
type WriteBudget struct {
	mu        sync.Mutex
	clients   map[string]*clientBucket
	limit     rate.Limit
	burst     int
	clock     clock.Clock
	lastSweep time.Time
	logger    *slog.Logger
}

// NewWriteBudget allows limit writes per second per client with the given
// burst. A nil clock uses the system clock.
func NewWriteBudget(limit rate.Limit, burst int, c clock.Clock, logger *slog.Logger) *WriteBudget {
	if c == nil {
		c = clock.Real{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &WriteBudget{
		clients:   make(map[string]*clientBucket),
		limit:     limit,
		burst:     burst,
		clock:     c,
		lastSweep: c.Now(),
		logger:    logger,
	}
}

// Allow spends one token from client's bucket.
func (b *WriteBudget) Allow(client string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock.Now()
	if now.Sub(b.lastSweep) >= idleClientTTL {
		for key, c := range b.clients {
			if now.Sub(c.lastSeen) >= idleClientTTL {
				delete(b.clients, key)
			}
		}
		b.lastSweep = now
	}

	c, ok := b.clients[client]
	if !ok {
		c = &clientBucket{tokens: rate.NewLimiter(b.limit, b.burst)}
		b.clients[client] = c
	}
	c.lastSeen = now
	return c.tokens.AllowN(now, 1)
}

// Clients reports how many buckets are tracked.
func (b *WriteBudget) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Middleware rejects writes over budget with 429 and the shared error body.
// It keys on r.RemoteAddr, which chi's RealIP middleware has already
// rewritten from forwarding headers when present.
func (b *WriteBudget) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !b.Allow(clientAddr(r)) {
			if b.limit > 0 {
				wait := math.Ceil(1 / float64(b.limit))
				w.Header().Set("Retry-After", strconv.Itoa(int(wait)))
			}
			WriteError(w, r, b.logger, ErrWriteBudgetExceeded)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddr(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
