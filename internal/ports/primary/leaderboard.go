package primary

import "context"

// LeaderboardService defines the primary port for standings.
type LeaderboardService interface {
	// TeamStandings ranks teams by total points.
	TeamStandings(ctx context.Context) ([]*TeamStanding, error)

	// MemberStandings ranks individual members, optionally within one category.
	MemberStandings(ctx context.Context, category string) ([]*MemberStanding, error)
}

// TeamStanding is a ranked team.
type TeamStanding struct {
	Rank        int
	TeamID      string
	TeamNumber  string
	Club        string
	TotalPoints int
}

// MemberStanding is a ranked member.
type MemberStanding struct {
	Rank        int
	TeamNumber  string
	Member      string
	Category    string
	TotalPoints int
	Catches     int
}
