// Package team contains the pure business logic for team operations.
// This is part of the Functional Core - no I/O, only pure functions.
package team

import (
	"fmt"
	"strconv"
)

// NumberWidth is the zero-padded width of a team number.
const NumberWidth = 3

// GenerateTeamNumber generates the team number that follows the current counter value.
// The format is a zero-padded 3-digit decimal ("001"). Values past 999 keep every
// digit ("1000") rather than wrapping or truncating.
func GenerateTeamNumber(current int) string {
	return fmt.Sprintf("%0*d", NumberWidth, current+1)
}

// ParseTeamNumber extracts the numeric value of a team number.
// Returns -1 if the number is not a non-negative decimal.
func ParseTeamNumber(number string) int {
	if number == "" {
		return -1
	}
	n, err := strconv.Atoi(number)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// NormalizeTeamNumber pads a user-typed team number ("6") to its stored form ("006").
// Returns the input unchanged when it is not numeric.
func NormalizeTeamNumber(number string) string {
	n := ParseTeamNumber(number)
	if n < 0 {
		return number
	}
	return fmt.Sprintf("%0*d", NumberWidth, n)
}
