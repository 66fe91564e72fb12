package app

import (
	"context"

	"github.com/example/tourney/internal/core/ranking"
	coreteam "github.com/example/tourney/internal/core/team"
	apperrors "github.com/example/tourney/internal/errors"
	"github.com/example/tourney/internal/ports/primary"
	"github.com/example/tourney/internal/ports/secondary"
)

// LeaderboardServiceImpl implements the LeaderboardService interface.
// Standings are read models: team standings come from the stored totals,
// member standings from the active catches.
type LeaderboardServiceImpl struct {
	teamRepo  secondary.TeamRepository
	catchRepo secondary.CatchRepository
}

// NewLeaderboardService creates a new LeaderboardService with injected dependencies.
func NewLeaderboardService(teamRepo secondary.TeamRepository, catchRepo secondary.CatchRepository) *LeaderboardServiceImpl {
	return &LeaderboardServiceImpl{
		teamRepo:  teamRepo,
		catchRepo: catchRepo,
	}
}

// TeamStandings ranks teams by total points.
func (s *LeaderboardServiceImpl) TeamStandings(ctx context.Context) ([]*primary.TeamStanding, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	scores := make([]ranking.TeamScore, len(teams))
	for i, t := range teams {
		scores[i] = ranking.TeamScore{TeamID: t.ID, Number: t.Number, Club: t.Club, TotalPoints: t.TotalPoints}
	}

	ranked := ranking.RankTeams(scores)
	standings := make([]*primary.TeamStanding, len(ranked))
	for i, r := range ranked {
		standings[i] = &primary.TeamStanding{
			Rank:        r.Rank,
			TeamID:      r.TeamID,
			TeamNumber:  r.Number,
			Club:        r.Club,
			TotalPoints: r.TotalPoints,
		}
	}
	return standings, nil
}

// MemberStandings ranks members, optionally within one category.
// Catches of teams that no longer exist are ignored.
func (s *LeaderboardServiceImpl) MemberStandings(ctx context.Context, category string) ([]*primary.MemberStanding, error) {
	filter, err := coreteam.ParseCategory(category)
	if err != nil {
		return nil, apperrors.Invalid(err.Error())
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*secondary.TeamRecord, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	catches, err := s.catchRepo.List(ctx, secondary.CatchFilters{})
	if err != nil {
		return nil, err
	}

	var credited []ranking.MemberCatch
	for _, c := range catches {
		team, ok := byID[c.TeamID]
		if !ok {
			continue
		}
		credited = append(credited, ranking.MemberCatch{
			TeamID:     team.ID,
			TeamNumber: team.Number,
			Member:     c.Member,
			Category:   memberCategory(team, c.Member),
			Points:     c.Points,
		})
	}

	ranked := ranking.RankMembers(credited, filter)
	standings := make([]*primary.MemberStanding, len(ranked))
	for i, r := range ranked {
		standings[i] = &primary.MemberStanding{
			Rank:        r.Rank,
			TeamNumber:  r.TeamNumber,
			Member:      r.Member,
			Category:    string(r.Category),
			TotalPoints: r.TotalPoints,
			Catches:     r.Catches,
		}
	}
	return standings, nil
}

func memberCategory(team *secondary.TeamRecord, member string) coreteam.Category {
	key := coreteam.NormalizeName(member)
	for _, m := range team.Roster {
		if coreteam.NormalizeName(m.Name) == key {
			return coreteam.Category(m.Category)
		}
	}
	return coreteam.CategoryNone
}

// Ensure LeaderboardServiceImpl implements the interface
var _ primary.LeaderboardService = (*LeaderboardServiceImpl)(nil)
