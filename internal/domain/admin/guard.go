package admin

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"consultancy/internal/backend"
)

type Outcome int

const (
	Granted Outcome = iota + 1
	Denied
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	case Failed:
		return "error"
	default:
		return "unknown"
	}
}

// Decision is the result of an admin authorization check. Err is set only
// when Outcome is Failed.
type Decision struct {
	Outcome Outcome
	Err     error
}

func (d Decision) Granted() bool { return d.Outcome == Granted }

// Guard decides whether an identity holds an admin grant. It never writes.
type Guard struct {
	grants  GrantLookup
	timeout time.Duration
	log     *zap.Logger
}

func NewGuard(grants GrantLookup, timeout time.Duration, log *zap.Logger) *Guard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Guard{grants: grants, timeout: timeout, log: log}
}

// Decide runs both lookups, one after the other, and grants on either match.
// A failure of either lookup, including a timeout, yields Failed regardless of
// the other's result. An empty id or email counts as no match.
func (g *Guard) Decide(ctx context.Context, id backend.Identity) Decision {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	byID, err := g.lookup(ctx, id.ID, g.grants.ExistsByID)
	if err != nil {
		return g.failed(id, fmt.Errorf("by id: %w", err))
	}
	byEmail, err := g.lookup(ctx, id.Email, g.grants.ExistsByEmail)
	if err != nil {
		return g.failed(id, fmt.Errorf("by email: %w", err))
	}

	d := Decision{Outcome: Denied}
	if byID || byEmail {
		d.Outcome = Granted
	}
	g.log.Info("admin authorization decided",
		zap.String("user_id", id.ID),
		zap.Stringer("outcome", d.Outcome),
	)
	return d
}

func (g *Guard) lookup(ctx context.Context, key string, fn func(context.Context, string) (bool, error)) (bool, error) {
	if key == "" {
		return false, nil
	}
	ok, err := fn(ctx, key)
	if err != nil {
		return false, err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, ctxErr
	}
	return ok, nil
}

func (g *Guard) failed(id backend.Identity, err error) Decision {
	g.log.Warn("admin authorization lookup failed",
		zap.String("user_id", id.ID),
		zap.Error(err),
	)
	return Decision{Outcome: Failed, Err: err}
}
