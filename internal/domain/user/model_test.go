package user

import "testing"

func TestUser_NameAndInitials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		user     User
		name     string
		initials string
	}{
		{user: User{DisplayName: "Bukayo Saka", Username: "bsaka"}, name: "Bukayo Saka", initials: "BS"},
		{user: User{Username: "kdb"}, name: "kdb", initials: "K"},
		{user: User{}, name: "Guest", initials: "G"},
	}
	for _, tc := range tests {
		if got := tc.user.Name(); got != tc.name {
			t.Fatalf("unexpected name: got=%s want=%s", got, tc.name)
		}
		if got := tc.user.Initials(); got != tc.initials {
			t.Fatalf("unexpected initials: got=%s want=%s", got, tc.initials)
		}
	}
}
