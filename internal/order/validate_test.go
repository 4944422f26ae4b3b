package order

import (
	"errors"
	"testing"

	"vlist/internal/model"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		n    int
		ovr  []model.Override
		ok   bool
	}{
		{name: "empty", n: 10, ovr: nil, ok: true},
		{name: "swap", n: 10, ovr: []model.Override{{Identity: 2, Position: 3}, {Identity: 3, Position: 2}}, ok: true},
		{name: "identity kept", n: 10, ovr: []model.Override{{Identity: 4, Position: 4}}, ok: true},
		{name: "identity out of range", n: 10, ovr: []model.Override{{Identity: 10, Position: 1}}},
		{name: "negative position", n: 10, ovr: []model.Override{{Identity: 1, Position: -1}}},
		{name: "duplicate identity", n: 10, ovr: []model.Override{{Identity: 1, Position: 2}, {Identity: 1, Position: 1}}},
		{name: "duplicate position", n: 10, ovr: []model.Override{{Identity: 1, Position: 2}, {Identity: 2, Position: 2}}},
		{name: "collides with default", n: 10, ovr: []model.Override{{Identity: 1, Position: 2}}},
		{name: "domain shrank", n: 3, ovr: []model.Override{{Identity: 2, Position: 5}, {Identity: 5, Position: 2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.n, tc.ovr)
			if tc.ok && err != nil {
				t.Fatalf("expected valid; got %v", err)
			}
			if !tc.ok && !errors.Is(err, ErrNotBijection) {
				t.Fatalf("expected ErrNotBijection; got %v", err)
			}
		})
	}
}
