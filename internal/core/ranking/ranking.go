// Package ranking computes leaderboard standings from ledger data.
// This is part of the Functional Core - no I/O, only pure functions.
package ranking

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/example/tourney/internal/core/team"
)

// TeamScore is a team's ledger total.
type TeamScore struct {
	TeamID      string
	Number      string
	Club        string
	TotalPoints int
}

// TeamStanding is a ranked team.
type TeamStanding struct {
	Rank int
	TeamScore
}

// RankTeams orders teams by total points (descending), breaking ties by team
// number. Tied totals share a rank and the next rank skips (1, 1, 3).
func RankTeams(teams []TeamScore) []TeamStanding {
	sorted := make([]TeamScore, len(teams))
	copy(sorted, teams)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].TotalPoints != sorted[j].TotalPoints {
			return sorted[i].TotalPoints > sorted[j].TotalPoints
		}
		return team.ParseTeamNumber(sorted[i].Number) < team.ParseTeamNumber(sorted[j].Number)
	})

	out := make([]TeamStanding, len(sorted))
	for i, t := range sorted {
		rank := i + 1
		if i > 0 && t.TotalPoints == sorted[i-1].TotalPoints {
			rank = out[i-1].Rank
		}
		out[i] = TeamStanding{Rank: rank, TeamScore: t}
	}
	return out
}

// MemberCatch is one catch credited to a roster member.
type MemberCatch struct {
	TeamID     string
	TeamNumber string
	Member     string
	Category   team.Category
	Points     int
}

// MemberStanding is a ranked individual.
type MemberStanding struct {
	Rank        int
	TeamNumber  string
	Member      string
	Category    team.Category
	TotalPoints int
	Catches     int
}

// RankMembers sums points per member (per team) and orders them by total,
// then by Spanish collation of the name, then by team number. When category
// is set only members of that category are ranked.
func RankMembers(catches []MemberCatch, category team.Category) []MemberStanding {
	type key struct {
		teamID string
		member string
	}

	index := make(map[key]int)
	var standings []MemberStanding
	for _, c := range catches {
		if category != team.CategoryNone && c.Category != category {
			continue
		}
		k := key{teamID: c.TeamID, member: team.NormalizeName(c.Member)}
		i, ok := index[k]
		if !ok {
			i = len(standings)
			index[k] = i
			standings = append(standings, MemberStanding{
				TeamNumber: c.TeamNumber,
				Member:     c.Member,
				Category:   c.Category,
			})
		}
		standings[i].TotalPoints += c.Points
		standings[i].Catches++
	}

	col := collate.New(language.Spanish, collate.IgnoreCase)
	sort.SliceStable(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if c := col.CompareString(a.Member, b.Member); c != 0 {
			return c < 0
		}
		return team.ParseTeamNumber(a.TeamNumber) < team.ParseTeamNumber(b.TeamNumber)
	})

	for i := range standings {
		standings[i].Rank = i + 1
		if i > 0 && standings[i].TotalPoints == standings[i-1].TotalPoints {
			standings[i].Rank = standings[i-1].Rank
		}
	}
	return standings
}
