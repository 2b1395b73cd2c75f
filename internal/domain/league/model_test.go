package league

import "testing"

func TestGroupStandings(t *testing.T) {
	t.Parallel()

	rows := []Standing{
		{Group: "Group B", Rank: 2, TeamName: "B2"},
		{Group: "Group A", Rank: 2, TeamName: "A2"},
		{Group: "Group B", Rank: 1, TeamName: "B1"},
		{Group: "Group A", Rank: 1, TeamName: "A1"},
	}

	groups := GroupStandings(rows)
	if len(groups) != 2 {
		t.Fatalf("unexpected group count: got=%d want=2", len(groups))
	}
	if groups[0].Name != "Group B" || groups[0].Rows[0].TeamName != "B1" {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].Rows[1].TeamName != "A2" {
		t.Fatalf("unexpected ordering in second group: %+v", groups[1].Rows)
	}
}

func TestInitials(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Premier League": "PL",
		"serie a tim":    "SA",
		"Ligue":          "L",
		"   ":            "?",
		"Ñublense FC":    "ÑF",
	}
	for in, want := range tests {
		if got := Initials(in); got != want {
			t.Fatalf("Initials(%q): got=%s want=%s", in, got, want)
		}
	}
}
