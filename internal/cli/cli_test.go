package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/primary"
)

func TestParseMember(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    primary.MemberInput
		wantErr bool
	}{
		{
			name: "name only",
			raw:  "Luis Rojas",
			want: primary.MemberInput{Name: "Luis Rojas"},
		},
		{
			name: "name and birth date",
			raw:  "Ana Rojas, 1990-07-21",
			want: primary.MemberInput{Name: "Ana Rojas", BirthDate: "1990-07-21"},
		},
		{
			name: "all fields",
			raw:  "Juan Benítez,1960-01-10,M",
			want: primary.MemberInput{Name: "Juan Benítez", BirthDate: "1960-01-10", Sex: "M"},
		},
		{
			name: "sex without birth date",
			raw:  "Marta Giménez,,F",
			want: primary.MemberInput{Name: "Marta Giménez", Sex: "F"},
		},
		{
			name:    "missing name",
			raw:     " ,1990-07-21",
			wantErr: true,
		},
		{
			name:    "too many fields",
			raw:     "A,1990-07-21,F,extra",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMember(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseMember(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestFormatError(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name      string
		err       error
		wantRetry bool
	}{
		{"conflict", apperrors.New(apperrors.CodeTransactionConflict, "gave up after 10 attempts"), true},
		{"unavailable", apperrors.Wrap(apperrors.CodeStoreUnavailable, "database is locked", errors.New("busy")), true},
		{"not found", apperrors.TeamNotFound("team-1"), false},
		{"plain", errors.New("invalid size"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatError(tt.err)
			if !strings.HasPrefix(got, "✗ ") {
				t.Errorf("expected error mark, got %q", got)
			}
			if hasRetry := strings.Contains(got, "retry the command"); hasRetry != tt.wantRetry {
				t.Errorf("retry hint = %v, want %v (%q)", hasRetry, tt.wantRetry, got)
			}
		})
	}
}

func TestCommandTree(t *testing.T) {
	want := map[string][]string{
		"counter":     {"show", "set"},
		"team":        {"register", "list", "show", "update", "delete"},
		"catch":       {"register", "record", "list", "remove"},
		"species":     {"import", "list", "show", "delete"},
		"leaderboard": {"teams", "members"},
	}

	roots := map[string]func() []string{
		"counter":     func() []string { return names(CounterCmd().Commands()) },
		"team":        func() []string { return names(TeamCmd().Commands()) },
		"catch":       func() []string { return names(CatchCmd().Commands()) },
		"species":     func() []string { return names(SpeciesCmd().Commands()) },
		"leaderboard": func() []string { return names(LeaderboardCmd().Commands()) },
	}

	for parent, subs := range want {
		got := strings.Join(roots[parent](), " ")
		for _, sub := range subs {
			if !strings.Contains(" "+got+" ", " "+sub+" ") {
				t.Errorf("%s: missing subcommand %q (have %s)", parent, sub, got)
			}
		}
	}
}

func names(cmds []*cobra.Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Name()
	}
	return out
}
