package team

import (
	"fmt"
	"strings"
	"time"
)

// Sex of a roster member as captured at registration.
type Sex string

const (
	SexUnknown Sex = ""
	SexMale    Sex = "M"
	SexFemale  Sex = "F"
)

// ParseSex accepts M/F and the Spanish words used on the paper forms.
func ParseSex(s string) (Sex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return SexUnknown, nil
	case "m", "male", "masculino":
		return SexMale, nil
	case "f", "female", "femenino":
		return SexFemale, nil
	default:
		return SexUnknown, fmt.Errorf("unknown sex %q (use M or F)", s)
	}
}

// Category is the competition category a member is ranked in.
type Category string

const (
	CategoryNone     Category = ""
	CategoryInfantil Category = "Infantil"
	CategoryJuvenil  Category = "Juvenil"
	CategoryDamas    Category = "Damas"
	CategoryGeneral  Category = "General"
	CategorySenior   Category = "Senior"
	CategoryMaster   Category = "Master"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryInfantil,
	CategoryJuvenil,
	CategoryDamas,
	CategoryGeneral,
	CategorySenior,
	CategoryMaster,
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	key := NormalizeName(s)
	if key == "" {
		return CategoryNone, nil
	}
	if key == "máster" {
		return CategoryMaster, nil
	}
	for _, c := range Categories {
		if NormalizeName(string(c)) == key {
			return c, nil
		}
	}
	return CategoryNone, fmt.Errorf("unknown category %q", s)
}

// AdultAge is the minimum age of a helmsman.
const AdultAge = 18

// BirthDateLayout is the accepted birth date format.
const BirthDateLayout = "2006-01-02"

// ParseBirthDate parses a YYYY-MM-DD birth date. An empty string yields the zero time.
func ParseBirthDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(BirthDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid birth date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

// AgeOn returns the age in whole years on the given day, or -1 when the birth
// date is unknown or in the future.
func AgeOn(birthDate, on time.Time) int {
	if birthDate.IsZero() || birthDate.After(on) {
		return -1
	}
	age := on.Year() - birthDate.Year()
	if on.Month() < birthDate.Month() || (on.Month() == birthDate.Month() && on.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// MemberCategory derives the competition category from age and sex.
// Rules:
// - 12 and under: Infantil; 13 to 17: Juvenil (any sex)
// - adult women: Damas
// - adult men: General up to 54, Senior 55-64, Master 65+
// Unknown age, or an adult with unknown sex, has no category.
func MemberCategory(age int, sex Sex) Category {
	switch {
	case age < 0:
		return CategoryNone
	case age <= 12:
		return CategoryInfantil
	case age <= 17:
		return CategoryJuvenil
	}

	switch sex {
	case SexFemale:
		return CategoryDamas
	case SexMale:
		switch {
		case age <= 54:
			return CategoryGeneral
		case age <= 64:
			return CategorySenior
		default:
			return CategoryMaster
		}
	}
	return CategoryNone
}

// Origin classifies a team against the host country.
type Origin string

const (
	OriginNational      Origin = "national"
	OriginInternational Origin = "international"
)

// OriginFor returns national when country matches the host country.
// An empty country is treated as the host country.
func OriginFor(country, homeCountry string) Origin {
	if strings.TrimSpace(country) == "" || NormalizeName(country) == NormalizeName(homeCountry) {
		return OriginNational
	}
	return OriginInternational
}
