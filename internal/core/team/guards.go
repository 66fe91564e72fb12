package team

import (
	"fmt"
	"strings"

	apperrors "github.com/example/tourney/internal/errors"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an INVALID_INPUT error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return apperrors.Invalid(r.Reason)
}

// RosterMember is the guard view of a member: the name and the age on the
// tournament day (-1 when unknown).
type RosterMember struct {
	Name string
	Age  int
}

// RegisterTeamContext provides context for team registration and roster edits.
type RegisterTeamContext struct {
	Club   string
	Roster []RosterMember
}

// CanRegisterTeam evaluates whether a team can be registered (or its roster replaced).
// Rules:
// - Club must be set
// - Roster must not be empty
// - Member names must be non-blank and unique within the team
// - The helmsman (first member) must be an adult when the age is known
func CanRegisterTeam(ctx RegisterTeamContext) GuardResult {
	if strings.TrimSpace(ctx.Club) == "" {
		return GuardResult{Allowed: false, Reason: "club is required"}
	}

	if len(ctx.Roster) == 0 {
		return GuardResult{Allowed: false, Reason: "roster must have at least one member"}
	}

	seen := make(map[string]bool, len(ctx.Roster))
	for i, m := range ctx.Roster {
		key := NormalizeName(m.Name)
		if key == "" {
			return GuardResult{Allowed: false, Reason: fmt.Sprintf("member %d has no name", i+1)}
		}
		if seen[key] {
			return GuardResult{Allowed: false, Reason: fmt.Sprintf("member %q appears twice in the roster", CleanName(m.Name))}
		}
		seen[key] = true
	}

	helmsman := ctx.Roster[0]
	if helmsman.Age >= 0 && helmsman.Age < AdultAge {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("helmsman %s must be at least %d years old (is %d)", CleanName(helmsman.Name), AdultAge, helmsman.Age),
		}
	}

	return GuardResult{Allowed: true}
}

// RegisterCatchContext provides context for catch registration guards.
type RegisterCatchContext struct {
	TeamNumber string
	Member     string
	Roster     []string
	SizeCm     float64
}

// CanRegisterCatch evaluates whether a catch can be credited to a member.
// Rules:
// - Member must be on the team roster
// - Size must be positive
func CanRegisterCatch(ctx RegisterCatchContext) GuardResult {
	if _, ok := FindMember(ctx.Roster, ctx.Member); !ok {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("%q is not on the roster of team %s", ctx.Member, ctx.TeamNumber),
		}
	}

	if ctx.SizeCm <= 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("size must be positive (got %.1f cm)", ctx.SizeCm),
		}
	}

	return GuardResult{Allowed: true}
}
