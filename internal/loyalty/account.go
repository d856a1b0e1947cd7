package loyalty

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/cafe-companion/pkg/config"
	"github.com/angelmondragon/cafe-companion/pkg/enums"
	pkgerrors "github.com/angelmondragon/cafe-companion/pkg/errors"
	"github.com/angelmondragon/cafe-companion/pkg/metrics"
	"github.com/shopspring/decimal"
)

var (
	// ErrInsufficientPoints is returned when a redemption costs more than the balance.
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
	// ErrUnknownReward is returned for reward ids outside the catalog.
	ErrUnknownReward = errors.New("reward not found")
)

// Entry is one line of the points history.
type Entry struct {
	Type   enums.LoyaltyEntryType `json:"type"`
	Points int                    `json:"points"`
	Reason string                 `json:"reason"`
	At     time.Time              `json:"at"`
}

// Account tracks a single shopper's points. Safe for concurrent use.
type Account struct {
	mu      sync.Mutex
	balance int
	history []Entry
	ordered map[string]struct{}

	rewards         []Reward
	pointsPerDollar decimal.Decimal
	newItemBonus    int
	metrics         *metrics.Storefront
	now             func() time.Time
}

// Option customises an Account.
type Option func(*Account)

// WithClock overrides the time source used for history entries.
func WithClock(now func() time.Time) Option {
	return func(a *Account) {
		if now != nil {
			a.now = now
		}
	}
}

// WithMetrics records redemptions.
func WithMetrics(m *metrics.Storefront) Option {
	return func(a *Account) {
		a.metrics = m
	}
}

// WithRewards replaces the default reward catalog.
func WithRewards(rewards []Reward) Option {
	return func(a *Account) {
		a.rewards = append([]Reward(nil), rewards...)
	}
}

// NewAccount opens an account holding the configured starting balance.
func NewAccount(cfg config.LoyaltyConfig, opts ...Option) *Account {
	a := &Account{
		balance:         cfg.StartingPoints,
		ordered:         make(map[string]struct{}),
		rewards:         DefaultRewards(),
		pointsPerDollar: cfg.PointsPerDollar,
		newItemBonus:    cfg.NewItemBonus,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Balance returns the current points.
func (a *Account) Balance() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// History returns a copy of every entry, oldest first.
func (a *Account) History() []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Entry(nil), a.history...)
}

// Rewards lists the catalog with redeemability against the current balance.
func (a *Account) Rewards() []RewardStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]RewardStatus, 0, len(a.rewards))
	for _, r := range a.rewards {
		status := RewardStatus{Reward: r, Redeemable: a.balance >= r.PointsRequired}
		if !status.Redeemable {
			status.PointsNeeded = r.PointsRequired - a.balance
		}
		out = append(out, status)
	}
	return out
}

// Redeem spends points on a reward. A short balance leaves the account untouched.
func (a *Account) Redeem(rewardID string) (Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	reward, ok := a.findReward(rewardID)
	if !ok {
		return Entry{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, ErrUnknownReward, fmt.Sprintf("reward %q not found", rewardID))
	}
	if a.balance < reward.PointsRequired {
		return Entry{}, pkgerrors.Wrap(pkgerrors.CodeStateConflict, ErrInsufficientPoints, "not enough points for this reward").
			WithDetails(map[string]int{
				"balance":  a.balance,
				"required": reward.PointsRequired,
			})
	}

	a.balance -= reward.PointsRequired
	entry := a.appendLocked(enums.LoyaltyEntryRedeemed, -reward.PointsRequired, reward.Name)
	a.metrics.IncRedemption(reward.ID)
	return entry, nil
}

// EarnForOrder credits floor(total × points per dollar) plus the new-item
// bonus for every distinct item id this account has not ordered before.
// It returns the entries it appended.
func (a *Account) EarnForOrder(total decimal.Decimal, itemIDs []string) []Entry {
	a.mu.Lock()
	defer a.mu.Unlock()

	var added []Entry
	if total.IsPositive() {
		points := int(total.Mul(a.pointsPerDollar).Floor().IntPart())
		if points > 0 {
			a.balance += points
			added = append(added, a.appendLocked(enums.LoyaltyEntryEarned, points, fmt.Sprintf("order total $%s", total.StringFixed(2))))
		}
	}
	for _, id := range itemIDs {
		if id == "" {
			continue
		}
		if _, seen := a.ordered[id]; seen {
			continue
		}
		a.ordered[id] = struct{}{}
		if a.newItemBonus <= 0 {
			continue
		}
		a.balance += a.newItemBonus
		added = append(added, a.appendLocked(enums.LoyaltyEntryBonus, a.newItemBonus, "first order of "+id))
	}
	return added
}

func (a *Account) findReward(id string) (Reward, bool) {
	for _, r := range a.rewards {
		if r.ID == id {
			return r, true
		}
	}
	return Reward{}, false
}

func (a *Account) appendLocked(kind enums.LoyaltyEntryType, points int, reason string) Entry {
	entry := Entry{Type: kind, Points: points, Reason: reason, At: a.now().UTC()}
	a.history = append(a.history, entry)
	return entry
}
