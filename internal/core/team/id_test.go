package team

import "testing"

func TestGenerateTeamNumber(t *testing.T) {
	tests := []struct {
		current int
		want    string
	}{
		{0, "001"},
		{5, "006"},
		{41, "042"},
		{998, "999"},
		{999, "1000"},
	}

	for _, tt := range tests {
		if got := GenerateTeamNumber(tt.current); got != tt.want {
			t.Errorf("GenerateTeamNumber(%d) = %q, want %q", tt.current, got, tt.want)
		}
	}
}

func TestParseTeamNumber(t *testing.T) {
	tests := []struct {
		number string
		want   int
	}{
		{"001", 1},
		{"042", 42},
		{"1000", 1000},
		{"", -1},
		{"abc", -1},
		{"-3", -1},
	}

	for _, tt := range tests {
		if got := ParseTeamNumber(tt.number); got != tt.want {
			t.Errorf("ParseTeamNumber(%q) = %d, want %d", tt.number, got, tt.want)
		}
	}
}

func TestNormalizeTeamNumber(t *testing.T) {
	if got := NormalizeTeamNumber("6"); got != "006" {
		t.Errorf("NormalizeTeamNumber(6) = %q, want 006", got)
	}
	if got := NormalizeTeamNumber("006"); got != "006" {
		t.Errorf("NormalizeTeamNumber(006) = %q, want 006", got)
	}
	if got := NormalizeTeamNumber("x1"); got != "x1" {
		t.Errorf("NormalizeTeamNumber(x1) = %q, want x1", got)
	}
}
