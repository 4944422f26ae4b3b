package order

import (
	"errors"
	"fmt"

	"vlist/internal/model"
)

var ErrNotBijection = errors.New("order: overrides do not form a bijection")

// Validate reports whether overrides, together with the default rule, describe a permutation of
// [0, n). Every identity and position must be in range and unique, and the positions claimed by
// overrides must be exactly the natural slots the overridden identities vacated.
func Validate(n int, overrides []model.Override) error {
	ids := make(map[model.Identity]struct{}, len(overrides))
	positions := make(map[model.Position]struct{}, len(overrides))
	for _, o := range overrides {
		if o.Identity < 0 || o.Identity >= n {
			return fmt.Errorf("%w: identity %d out of range", ErrNotBijection, o.Identity)
		}
		if o.Position < 0 || o.Position >= n {
			return fmt.Errorf("%w: position %d out of range", ErrNotBijection, o.Position)
		}
		if _, dup := ids[o.Identity]; dup {
			return fmt.Errorf("%w: identity %d listed twice", ErrNotBijection, o.Identity)
		}
		if _, dup := positions[o.Position]; dup {
			return fmt.Errorf("%w: position %d claimed twice", ErrNotBijection, o.Position)
		}
		ids[o.Identity] = struct{}{}
		positions[o.Position] = struct{}{}
	}
	// Same cardinality, so checking one direction is enough.
	for p := range positions {
		if _, ok := ids[p]; !ok {
			return fmt.Errorf("%w: position %d is still held by identity %d", ErrNotBijection, p, p)
		}
	}
	return nil
}
