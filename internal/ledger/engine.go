// Package ledger implements the expense ledger engine: groups, expenses,
// split settlement and the balance queries derived from them.
//
// An Engine is constructed explicitly and owns its store. There is no
// package-level state, so each session (or test) builds its own engine.
// Every balance query takes the viewer as a parameter; the engine has no
// notion of a current user.
//
// Engine is not safe for concurrent use. Operations are synchronous and
// read-after-write consistent: a mutation is visible to the next query.
package ledger

import (
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/metrics"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/memory"
)

// Engine owns the groups and expenses of one session.
type Engine struct {
	store    storage.Store
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
	newID    func() string

	users     map[string]models.User
	userOrder []string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for mutations and rejections.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the counters the engine updates.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithClock sets the time source for CreatedAt defaults.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator sets the generator for missing group and expense IDs.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New creates an Engine over store. A nil store gets a fresh in-memory one.
// Users already referenced by groups in store are registered.
func New(store storage.Store, opts ...Option) *Engine {
	if store == nil {
		store = memory.New()
	}
	e := &Engine{
		store:    store,
		validate: validator.New(),
		logger:   slog.Default(),
		now:      time.Now,
		newID:    func() string { return uuid.New().String() },
		users:    make(map[string]models.User),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = metrics.New(nil)
	}
	for _, g := range store.ListGroups() {
		e.registerUsers(g.Members)
	}
	return e
}

// GetUser returns the user with the given ID.
func (e *Engine) GetUser(userID string) (models.User, error) {
	u, ok := e.users[userID]
	if !ok {
		return models.User{}, notFound("user", userID)
	}
	return u, nil
}

// checkUsers verifies that none of users contradicts an identity the engine
// already knows. Users are immutable once seen.
func (e *Engine) checkUsers(users []models.User) error {
	seen := make(map[string]models.User, len(users))
	for _, u := range users {
		if err := e.validate.Struct(u); err != nil {
			return fromValidator(err)
		}
		if known, ok := e.users[u.ID]; ok && known != u {
			return invalid("user", "user %s already exists with different details", u.ID)
		}
		if prev, ok := seen[u.ID]; ok && prev != u {
			return invalid("user", "user %s given twice with different details", u.ID)
		}
		seen[u.ID] = u
	}
	return nil
}

func (e *Engine) registerUsers(users []models.User) {
	for _, u := range users {
		if _, ok := e.users[u.ID]; ok {
			continue
		}
		e.users[u.ID] = u
		e.userOrder = append(e.userOrder, u.ID)
	}
}

// reject records a refused mutation and returns err unchanged.
func (e *Engine) reject(op string, err error, args ...any) error {
	reason := "validation"
	switch err.(type) {
	case *NotFoundError:
		reason = "not_found"
	case *PreconditionError:
		reason = "precondition"
	}
	if op == "add_expense" {
		e.metrics.ExpensesRejected.WithLabelValues(reason).Inc()
	}
	e.logger.Warn("Ledger operation rejected", append([]any{"operation", op, "reason", reason, "error", err}, args...)...)
	return err
}

// queryFailed logs a refused balance query at Debug and returns err unchanged.
// Queries change nothing, so they stay out of the rejection counters.
func (e *Engine) queryFailed(kind string, err error, args ...any) error {
	e.logger.Debug("Balance query failed", append([]any{"kind", kind, "error", err}, args...)...)
	return err
}
