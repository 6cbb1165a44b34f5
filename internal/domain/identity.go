package domain

import "time"

// Identity is the authenticated principal extracted from a validated
// bearer token. The subject id is the stable key for ownership; username
// and email are display metadata only.
type Identity struct {
	SubjectID string    `json:"subject_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"-"`
}
