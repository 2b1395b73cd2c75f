package team

import "fmt"

// Team is a real football club.
type Team struct {
	ID      int64
	Name    string
	Code    string
	Country string
	LogoURL string
}

func (t Team) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
