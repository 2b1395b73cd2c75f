package user

import (
	"strings"
	"time"
)

type User struct {
	ID          string
	Username    string
	Email       string
	DisplayName string
	AvatarURL   string
	CreatedAt   time.Time
}

// Name is what pages show for the user.
func (u User) Name() string {
	if name := strings.TrimSpace(u.DisplayName); name != "" {
		return name
	}
	if name := strings.TrimSpace(u.Username); name != "" {
		return name
	}
	return "Guest"
}

// Initials backs the placeholder avatar.
func (u User) Initials() string {
	var out []rune
	for _, word := range strings.Fields(u.Name()) {
		for _, r := range word {
			out = append(out, r)
			break
		}
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

// Profile is the user plus activity counters shown on the profile page.
type Profile struct {
	User
	Bio             string
	CommentCount    int
	LikeCount       int
	FavoriteTeams   int
	FavoritePlayers int
}

type Credentials struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6,max=128"`
}

type Registration struct {
	Username    string `validate:"required,min=3,max=32,alphanum"`
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=8,max=128"`
	DisplayName string `validate:"omitempty,max=64"`
}

// AuthResult is what login and register return.
type AuthResult struct {
	Token string
	User  User
}

// Avatar is an uploaded profile image.
type Avatar struct {
	Filename    string
	ContentType string
	Data        []byte
}
