package selection

import (
	"reflect"
	"testing"

	"vlist/internal/model"
)

func TestToggle_TwiceUnselects(t *testing.T) {
	s := New()
	if !s.Toggle(42) {
		t.Fatalf("first toggle should select")
	}
	if !s.IsSelected(42) || !reflect.DeepEqual(s.IDs(), []model.Identity{42}) {
		t.Fatalf("expected {42}; got %v", s.IDs())
	}
	if s.Toggle(42) {
		t.Fatalf("second toggle should unselect")
	}
	if s.IsSelected(42) || s.Len() != 0 {
		t.Fatalf("expected empty selection; got %v", s.IDs())
	}
}

func TestReplace_SortsAndIgnoresNegatives(t *testing.T) {
	s := New()
	s.Replace([]model.Identity{999_999, 3, -1, 3, 17})
	if got, want := s.IDs(), []model.Identity{3, 17, 999_999}; !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v; got %v", want, got)
	}
	if s.Toggle(-5) || s.IsSelected(-5) {
		t.Fatalf("negative identities must never be selected")
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Clear left %d entries", s.Len())
	}
}

func TestToggle_IdentitiesPastUint32StayDistinct(t *testing.T) {
	s := New()
	big := model.Identity(1) << 32
	if !s.Toggle(big) {
		t.Fatalf("toggle should select %d", big)
	}
	if s.IsSelected(0) {
		t.Fatalf("selecting %d must not select 0", big)
	}
	s.Replace([]model.Identity{0, big + 7})
	if got, want := s.IDs(), []model.Identity{0, big + 7}; !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v; got %v", want, got)
	}
}
