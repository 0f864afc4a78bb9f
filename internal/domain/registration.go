package domain

import "time"

// Registration represents a single MVP registrant stored in the database.
type Registration struct {
	ID                 int64
	Name               string
	Email              string
	Telegram           string
	AccessCode         string
	IsVerified         bool
	CodeEmailScheduled bool
	RegistrationDate   time.Time
}

// PublicUser is the subset of registrant fields returned by the API.
// The access code itself is never re-sent after registration.
type PublicUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Telegram string `json:"telegram"`
}

// Public projects the registration onto its API-visible fields.
func (r *Registration) Public() PublicUser {
	return PublicUser{
		Name:     r.Name,
		Email:    r.Email,
		Telegram: r.Telegram,
	}
}
