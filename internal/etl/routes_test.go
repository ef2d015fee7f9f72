package etl

import "testing"

func TestCleanRoute(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain route untouched", "N Col-SE Ridge", "N Col-SE Ridge"},
		{"altitude annotation", "SE Ridge (to 6000m)", "SE Ridge"},
		{"acclimatization annotation", "S Face (acclimatization rte)", "S Face"},
		{"descent mention dropped", "SE Ridge, NE Ridge down", "SE Ridge"},
		{"trailing up dropped", "SE Ridge up", "SE Ridge"},
		{"col case normalized", "S COl-SE Ridge", "S Col-SE Ridge"},
		{"couloir lowered", "N Face Couloir", "N Face couloir"},
		{"rte parenthetical kept", "SW Face (Bonington rte)", "SW Face (Bonington rte)"},
		{"new line parenthetical kept", "W Ridge (new line)", "W Ridge (new line)"},
		{"generic parenthetical stripped", "SE Ridge (in winter)", "SE Ridge"},
		{"via phrase dropped", "SE Ridge via S Col", "SE Ridge"},
		{"trailing question mark", "NW Ridge?", "NW Ridge"},
		{"hyphen spacing", "N Col - SE Ridge", "N Col-SE Ridge"},
		{"geneva misspelling", "Genava Spur", "Geneva Spur"},
		{"everest french rename", "N Face (French 1950 rte)", "N Face (French rte)"},
		{"bonington rename", "SW Face (Bonington 1975 rte)", "SW Face (Bonington rte)"},
		{"empty stays empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanRoute(tt.raw)
			if got != tt.want {
				t.Errorf("CleanRoute(%q) = %q, expected %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestStripParentheticals(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"A (x) B (y rib)", "A B (y rib)"},
		{"A (x) (y)", "A"},
		{"A (unclosed", "A (unclosed"},
	}
	for _, tt := range tests {
		got := stripParentheticals(tt.raw)
		if got != tt.want {
			t.Errorf("stripParentheticals(%q) = %q, expected %q", tt.raw, got, tt.want)
		}
	}
}
