package score

import "fmt"

// MaxPiecesPerSpecies is how many pieces of one species a team may register.
const MaxPiecesPerSpecies = 3

// BonusPieceIndex is the 0-based piece whose points are doubled (the third piece).
const BonusPieceIndex = 2

// PieceRule is the scoring rule for one piece of a species.
type PieceRule struct {
	Points    int
	MinSizeCm float64
	Mandatory bool
}

// PieceResult is the outcome of scoring a piece.
type PieceResult struct {
	Allowed bool
	Reason  string
	Points  int
}

// PiecePoints scores the piece at pieceIndex (0-based count of the team's
// earlier catches of the same species).
// Rules:
// - At most MaxPiecesPerSpecies pieces per species per team
// - The rule at pieceIndex gives the points; a missing rule scores 0
// - A mandatory rule rejects pieces under its minimum size
// - The third piece scores double
func PiecePoints(speciesName string, rules []PieceRule, pieceIndex int, sizeCm float64) PieceResult {
	if pieceIndex < 0 {
		pieceIndex = 0
	}
	if pieceIndex >= MaxPiecesPerSpecies {
		return PieceResult{
			Allowed: false,
			Reason:  fmt.Sprintf("limit of %d pieces of %s reached for this team", MaxPiecesPerSpecies, speciesName),
		}
	}

	points := 0
	if pieceIndex < len(rules) {
		rule := rules[pieceIndex]
		if rule.Mandatory && sizeCm < rule.MinSizeCm {
			return PieceResult{
				Allowed: false,
				Reason: fmt.Sprintf("piece %d of %s must measure at least %.1f cm (got %.1f cm)",
					pieceIndex+1, speciesName, rule.MinSizeCm, sizeCm),
			}
		}
		points = rule.Points
	}

	if pieceIndex == BonusPieceIndex {
		points *= 2
	}

	return PieceResult{Allowed: true, Points: points}
}

// ValidateRules checks a species rule set.
func ValidateRules(rules []PieceRule) error {
	if len(rules) == 0 {
		return fmt.Errorf("at least one piece rule is required")
	}
	if len(rules) > MaxPiecesPerSpecies {
		return fmt.Errorf("at most %d piece rules are allowed (got %d)", MaxPiecesPerSpecies, len(rules))
	}
	for i, r := range rules {
		if r.Points < 0 {
			return fmt.Errorf("piece %d: points must be non-negative", i+1)
		}
		if r.MinSizeCm < 0 {
			return fmt.Errorf("piece %d: size must be non-negative", i+1)
		}
	}
	return nil
}
