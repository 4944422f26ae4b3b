// Package order implements the sparse permutation that maps logical positions to row identities.
//
// The default rule is position == identity. Only identities that were moved by a reorder carry an
// explicit override, so the index costs nothing for an untouched domain and grows with the number
// of rows a user actually moved.
package order

import (
	"errors"
	"fmt"
	"sort"

	"vlist/internal/model"
)

var (
	ErrSameIdentity = errors.New("order: moved identity equals reference identity")
	ErrOutOfRange   = errors.New("order: identity out of range")
)

// Placement says on which side of the reference identity a moved identity lands.
type Placement int

const (
	Before Placement = iota
	After
)

func (p Placement) String() string {
	switch p {
	case Before:
		return "before"
	case After:
		return "after"
	default:
		return fmt.Sprintf("placement(%d)", int(p))
	}
}

// Index is not safe for concurrent use. Move reads and then rewrites a span of overrides, so
// callers must serialize mutations through a single writer.
type Index struct {
	n int

	// forward: identity -> position, only for moved identities.
	forward map[model.Identity]model.Position
	// reverse: position -> identity, for every position claimed by an override.
	reverse map[model.Position]model.Identity
}

func New(n int) *Index {
	if n < 0 {
		n = 0
	}
	return &Index{
		n:       n,
		forward: map[model.Identity]model.Position{},
		reverse: map[model.Position]model.Identity{},
	}
}

// Size is the domain size N.
func (x *Index) Size() int { return x.n }

// Len is the number of overrides.
func (x *Index) Len() int { return len(x.forward) }

func (x *Index) inRange(v int) bool { return v >= 0 && v < x.n }

// IdentityAt returns the identity displayed at position p. Positions outside the domain map to
// themselves.
func (x *Index) IdentityAt(p model.Position) model.Identity {
	if id, ok := x.reverse[p]; ok {
		return id
	}
	return p
}

// PositionOf returns where id is currently displayed.
func (x *Index) PositionOf(id model.Identity) model.Position {
	if p, ok := x.forward[id]; ok {
		return p
	}
	return id
}

// Order returns the identities occupying positions [start, end], clamped to the domain.
func (x *Index) Order(start, end model.Position) []model.Identity {
	start = max(0, start)
	end = min(x.n-1, end)
	if end < start {
		return nil
	}
	out := make([]model.Identity, 0, end-start+1)
	for p := start; p <= end; p++ {
		out = append(out, x.IdentityAt(p))
	}
	return out
}

// Move relocates id so it sits immediately before or after ref's current position.
//
// Every identity between the origin and the destination shifts one slot towards the origin.
// Invalid arguments leave the index untouched and return ErrSameIdentity or ErrOutOfRange.
func (x *Index) Move(id, ref model.Identity, place Placement) error {
	if err := x.check(id, ref); err != nil {
		return err
	}
	from := x.PositionOf(id)
	at := x.PositionOf(ref)

	// dest is expressed in final coordinates: removing id first shifts everything after it up.
	var dest model.Position
	switch {
	case place == After && from < at:
		dest = at
	case place == After:
		dest = at + 1
	case from < at:
		dest = at - 1
	default:
		dest = at
	}
	x.moveTo(id, from, dest)
	return nil
}

// MoveTo moves id into the slot target currently occupies (array-move semantics): the target
// and everything between shift one slot towards id's old position.
func (x *Index) MoveTo(id, target model.Identity) error {
	if err := x.check(id, target); err != nil {
		return err
	}
	x.moveTo(id, x.PositionOf(id), x.PositionOf(target))
	return nil
}

func (x *Index) check(id, ref model.Identity) error {
	if !x.inRange(id) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, id, x.n)
	}
	if !x.inRange(ref) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrOutOfRange, ref, x.n)
	}
	if id == ref {
		return ErrSameIdentity
	}
	return nil
}

func (x *Index) moveTo(id model.Identity, from, dest model.Position) {
	if from == dest {
		return
	}
	// Resolve the whole span before writing: each write changes the reverse table. Writes start
	// next to the destination so no slot is overwritten before its occupant has been read.
	if dest < from {
		span := x.Order(dest, from-1)
		for i := len(span) - 1; i >= 0; i-- {
			x.set(span[i], dest+i+1)
		}
	} else {
		span := x.Order(from+1, dest)
		for i, sid := range span {
			x.set(sid, from+i)
		}
	}
	x.set(id, dest)
}

func (x *Index) set(id model.Identity, p model.Position) {
	if old, ok := x.forward[id]; ok && x.reverse[old] == id {
		delete(x.reverse, old)
	}
	x.forward[id] = p
	x.reverse[p] = id
}

// Snapshot returns the override table sorted by identity.
func (x *Index) Snapshot() []model.Override {
	out := make([]model.Override, 0, len(x.forward))
	for id, p := range x.forward {
		out = append(out, model.Override{Identity: id, Position: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Identity < out[j].Identity })
	return out
}

// Restore replaces the override table verbatim. Callers are responsible for validating the
// overrides first (see Validate).
func (x *Index) Restore(overrides []model.Override) {
	x.forward = make(map[model.Identity]model.Position, len(overrides))
	x.reverse = make(map[model.Position]model.Identity, len(overrides))
	for _, o := range overrides {
		x.forward[o.Identity] = o.Position
		x.reverse[o.Position] = o.Identity
	}
}

// Reset drops every override.
func (x *Index) Reset() { x.Restore(nil) }

// Compact drops overrides that agree with the default rule and returns how many were dropped.
func (x *Index) Compact() int {
	dropped := 0
	for id, p := range x.forward {
		if id != p {
			continue
		}
		delete(x.forward, id)
		if x.reverse[p] == id {
			delete(x.reverse, p)
		}
		dropped++
	}
	return dropped
}
