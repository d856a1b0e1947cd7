package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/angelmondragon/cafe-companion/internal/cart"
	"github.com/angelmondragon/cafe-companion/internal/loyalty"
	"github.com/angelmondragon/cafe-companion/internal/recommend"
	"github.com/angelmondragon/cafe-companion/internal/tableorder"
	"github.com/angelmondragon/cafe-companion/pkg/config"
	"github.com/angelmondragon/cafe-companion/pkg/ids"
	"github.com/angelmondragon/cafe-companion/pkg/logger"
	"github.com/angelmondragon/cafe-companion/pkg/metrics"
)

// Session is everything one shopper has in flight.
type Session struct {
	ID      string
	Cart    *cart.Store
	Loyalty *loyalty.Account
	Table   *tableorder.Order

	lastSeen time.Time
}

// Preference folds the cart contents into the base profile.
func (s *Session) Preference() recommend.Preference {
	lines := s.Cart.Lines()
	selections := make([]recommend.Selection, 0, len(lines))
	for _, l := range lines {
		selections = append(selections, recommend.Selection{
			ItemID:         l.Item.ID,
			Customizations: l.Customizations,
		})
	}
	return recommend.Derive(recommend.MockPreference(), selections)
}

// Deps are the shared collaborators every new session is built with.
type Deps struct {
	Loyalty config.LoyaltyConfig
	IDs     *ids.Generator
	Scanner tableorder.Scanner
	Metrics *metrics.Storefront
	Logger  *logger.Logger
	// IdleTTL is how long a session survives without requests. Zero keeps
	// sessions until the process exits.
	IdleTTL time.Duration
	Now     func() time.Time
}

// Registry keeps sessions in memory, keyed by session id. Sessions idle
// for longer than Deps.IdleTTL are dropped by Sweep.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	deps     Deps
}

func NewRegistry(deps Deps) *Registry {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Registry{
		sessions: make(map[string]*Session),
		deps:     deps,
	}
}

// GetOrCreate returns the session for id, opening it on first use.
func (r *Registry) GetOrCreate(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.lastSeen = r.deps.Now()
		return s
	}

	s := r.newSession(id)
	s.Cart.Subscribe(r.cartListener(id))
	r.sessions[id] = s
	r.deps.Metrics.SetSessions(len(r.sessions))
	return s
}

// Get returns an existing session and marks it as seen.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		s.lastSeen = r.deps.Now()
	}
	return s, ok
}

// Peek returns the stored session, or a fresh one that is not registered
// when id is unknown. Read-only requests use it so they never open sessions.
func (r *Registry) Peek(id string) *Session {
	if s, ok := r.Get(id); ok {
		return s
	}
	return r.newSession(id)
}

// Len reports how many sessions are held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions not seen within the idle TTL and reports how many
// were removed.
func (r *Registry) Sweep() int {
	if r.deps.IdleTTL <= 0 {
		return 0
	}
	r.mu.Lock()
	cutoff := r.deps.Now().Add(-r.deps.IdleTTL)
	removed := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	remaining := len(r.sessions)
	r.mu.Unlock()

	if removed > 0 {
		r.deps.Metrics.SetSessions(remaining)
	}
	return removed
}

// Run sweeps idle sessions every interval until ctx is canceled.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	if r.deps.IdleTTL <= 0 || interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed := r.Sweep()
			if removed > 0 && r.deps.Logger != nil {
				logg := r.deps.Logger
				logg.Info(logg.WithFields(ctx, map[string]any{
					"removed":   removed,
					"remaining": r.Len(),
				}), "sessions.swept")
			}
		}
	}
}

func (r *Registry) newSession(id string) *Session {
	return &Session{
		ID:       id,
		Cart:     cart.NewStore(),
		Loyalty:  loyalty.NewAccount(r.deps.Loyalty, loyalty.WithMetrics(r.deps.Metrics)),
		Table:    tableorder.NewOrder(r.deps.Scanner, r.deps.IDs, r.deps.Metrics),
		lastSeen: r.deps.Now(),
	}
}

func (r *Registry) cartListener(sessionID string) cart.Listener {
	return func(evt cart.Event) {
		r.deps.Metrics.IncCartMutation(evt.Type.String())
		logg := r.deps.Logger
		if logg == nil {
			return
		}
		ctx := logg.WithSessionID(context.Background(), sessionID)
		ctx = logg.WithFields(ctx, map[string]any{
			"event":      evt.Type.String(),
			"line_id":    evt.LineID,
			"item_count": evt.Snapshot.ItemCount,
			"total":      evt.Snapshot.Total.StringFixed(2),
		})
		logg.Info(ctx, "cart.changed")
	}
}
