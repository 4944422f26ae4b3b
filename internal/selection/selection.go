// Package selection tracks which identities are checked.
package selection

import (
	"vlist/internal/model"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Set is a set of checked identities backed by a roaring bitmap, so a sparse selection over a
// large domain stays small. The 64-bit variant keeps identities past 2^32 distinct. Negative
// identities are never selected.
type Set struct {
	rb *roaring64.Bitmap
}

func New() *Set {
	return &Set{rb: roaring64.New()}
}

// Toggle flips id's membership and returns the new state.
func (s *Set) Toggle(id model.Identity) bool {
	if id < 0 {
		return false
	}
	if s.rb.CheckedRemove(uint64(id)) {
		return false
	}
	s.rb.Add(uint64(id))
	return true
}

func (s *Set) IsSelected(id model.Identity) bool {
	return id >= 0 && s.rb.Contains(uint64(id))
}

func (s *Set) Len() int { return int(s.rb.GetCardinality()) }

// IDs returns the selected identities in ascending order.
func (s *Set) IDs() []model.Identity {
	out := make([]model.Identity, 0, s.rb.GetCardinality())
	it := s.rb.Iterator()
	for it.HasNext() {
		out = append(out, model.Identity(it.Next()))
	}
	return out
}

// Replace sets the selection to exactly ids. Negative identities are ignored.
func (s *Set) Replace(ids []model.Identity) {
	s.rb.Clear()
	for _, id := range ids {
		if id >= 0 {
			s.rb.Add(uint64(id))
		}
	}
}

func (s *Set) Clear() { s.rb.Clear() }
