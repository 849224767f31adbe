// Package store memoizes target-solver answers keyed by a content hash of
// everything that determines them.
package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/theirongolddev/lifeplan/internal/config"
	"github.com/theirongolddev/lifeplan/internal/model"
	"github.com/theirongolddev/lifeplan/internal/projection"
)

// keyVersion changes whenever projection semantics change, orphaning old entries.
const keyVersion = "v1"

// Cache stores solver answers. Implementations are safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (projection.Solution, bool, error)
	Put(ctx context.Context, key string, sol projection.Solution) error
	Close() error
}

// Query is everything a solver answer depends on.
type Query struct {
	Plan       model.HouseholdPlan
	Target     projection.Target
	Tables     config.CostTables
	Iterations int
	UpperBound float64
}

// withDefaults fills the solver settings Solve would fall back to, so an
// unset bound and an explicit default share a key.
func (q Query) withDefaults() Query {
	if q.Iterations <= 0 {
		q.Iterations = projection.DefaultIterations
	}
	if q.UpperBound <= 0 {
		q.UpperBound = projection.DefaultUpperBound
	}
	return q
}

// Key returns a stable cache key for q.
func Key(q Query) (string, error) {
	h, err := hashstructure.Hash(q.withDefaults(), hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("hashing solver query: %w", err)
	}
	return "lifeplan:solve:" + keyVersion + ":" + strconv.FormatUint(h, 16), nil
}

// Solve answers q from c when possible, otherwise runs the solver and
// stores the answer. A nil cache always solves. Cache errors are returned
// alongside a valid solution so callers can report and carry on.
func Solve(ctx context.Context, c Cache, q Query) (sol projection.Solution, hit bool, err error) {
	q = q.withDefaults()
	run := func() projection.Solution {
		return projection.Solve(q.Plan, q.Target, q.Tables,
			projection.WithIterations(q.Iterations),
			projection.WithUpperBound(q.UpperBound),
		)
	}
	if c == nil {
		return run(), false, nil
	}

	key, err := Key(q)
	if err != nil {
		return run(), false, err
	}

	cached, ok, err := c.Get(ctx, key)
	if err == nil && ok {
		return cached, true, nil
	}

	sol = run()
	if err != nil {
		return sol, false, fmt.Errorf("reading solver cache: %w", err)
	}
	if err := c.Put(ctx, key, sol); err != nil {
		return sol, false, fmt.Errorf("writing solver cache: %w", err)
	}
	return sol, false, nil
}
