package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectLookupArgs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"vlist"},
			want: []string{"vlist"},
		},
		{
			name: "identity first token",
			in:   []string{"vlist", "42"},
			want: []string{"vlist", "locate", "42"},
		},
		{
			name: "identity after value flag",
			in:   []string{"vlist", "--dir", "./tmp", "42"},
			want: []string{"vlist", "--dir", "./tmp", "locate", "42"},
		},
		{
			name: "identity after equals flag",
			in:   []string{"vlist", "--size=100", "42"},
			want: []string{"vlist", "--size=100", "locate", "42"},
		},
		{
			name: "identity after bool flag",
			in:   []string{"vlist", "--pretty", "42"},
			want: []string{"vlist", "--pretty", "locate", "42"},
		},
		{
			name: "numeric flag value is not an identity",
			in:   []string{"vlist", "--size", "100"},
			want: []string{"vlist", "--size", "100"},
		},
		{
			name: "subcommand untouched",
			in:   []string{"vlist", "move", "7", "--after", "2"},
			want: []string{"vlist", "move", "7", "--after", "2"},
		},
		{
			name: "double dash stops the rewrite",
			in:   []string{"vlist", "--", "42"},
			want: []string{"vlist", "--", "42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := rewriteDirectLookupArgs(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %v; want %v", got, tt.want)
			}
		})
	}
}
