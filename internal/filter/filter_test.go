package filter

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"testing"

	"vlist/internal/model"
)

func TestCount_FiveOverHundred(t *testing.T) {
	e := New(100)
	want := []model.Identity{5, 15, 25, 35, 45, 50, 51, 52, 53, 54, 55, 56, 57, 58, 59, 65, 75, 85, 95}
	got := slices.Collect(e.Matches("5", Ascending))
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Matches: want %v; got %v", want, got)
	}
	if n := e.Count("5"); n != len(want) {
		t.Fatalf("Count: want %d; got %d", len(want), n)
	}
}

func TestCount_EmptyAndNonDigit(t *testing.T) {
	e := New(1234)
	if n := e.Count(""); n != 1234 {
		t.Fatalf("empty text: want 1234; got %d", n)
	}
	if n := e.Count("a"); n != 0 {
		t.Fatalf("non-digit text: want 0; got %d", n)
	}
	if n := e.Count("99999"); n != 0 {
		t.Fatalf("longer than any label: want 0; got %d", n)
	}
}

func TestCount_ParallelMatchesSerial(t *testing.T) {
	const n = 300_000
	e := New(n)
	for _, text := range []string{"7", "42", "100", "0", "299999"} {
		want := 0
		for id := 0; id < n; id++ {
			if strings.Contains(strconv.Itoa(id), text) {
				want++
			}
		}
		if got := e.Count(text); got != want {
			t.Fatalf("Count(%q): want %d; got %d", text, want, got)
		}
	}
}

func TestCountContext_Cancelled(t *testing.T) {
	e := New(1_000_000)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.CountContext(ctx, "3"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled; got %v", err)
	}
	if e.cache.len() != 0 {
		t.Fatalf("cancelled scan must not be cached")
	}
}

func TestCount_Cached(t *testing.T) {
	e := New(1000)
	_ = e.Count("1")
	if _, ok := e.cache.get("1"); !ok {
		t.Fatalf("expected count to be cached")
	}
	for i := 0; i < defaultCacheSize+5; i++ {
		_ = e.Count(strconv.Itoa(i + 10))
	}
	if e.cache.len() > defaultCacheSize {
		t.Fatalf("cache grew past its bound: %d", e.cache.len())
	}
	if _, ok := e.cache.get("1"); ok {
		t.Fatalf("expected oldest entry to be evicted")
	}
}

func TestMatches_Descending(t *testing.T) {
	e := New(30)
	got := slices.Collect(e.Matches("2", Descending))
	want := []model.Identity{29, 28, 27, 26, 25, 24, 23, 22, 21, 20, 12, 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v; got %v", want, got)
	}
}

func TestMatches_StopsEarly(t *testing.T) {
	e := New(1_000_000)
	var got []model.Identity
	for id := range e.Matches("9", Ascending) {
		got = append(got, id)
		if len(got) == 3 {
			break
		}
	}
	if want := []model.Identity{9, 19, 29}; !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v; got %v", want, got)
	}
}

func TestMatchesInPositionWindow(t *testing.T) {
	e := New(100)
	// Matches of "5": 5,15,25,35,45,50,51,...; ranks 3..6 with overscan 1 => ranks 2..7.
	got := e.MatchesInPositionWindow("5", 3, 6, 1)
	want := []model.Identity{25, 35, 45, 50, 51, 52}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v; got %v", want, got)
	}

	first, ids := e.MatchWindow("5", 0, 1, 5)
	if first != 0 || len(ids) != 7 || ids[0] != 5 {
		t.Fatalf("window at top: first=%d ids=%v", first, ids)
	}

	if ids := e.MatchesInPositionWindow("5", 50, 60, 0); len(ids) != 0 {
		t.Fatalf("window past the last match should be empty; got %v", ids)
	}
}

func TestMatch(t *testing.T) {
	if !Match(105, "05") || Match(5, "05") || !Match(0, "0") {
		t.Fatalf("Match gave unexpected results")
	}
}
