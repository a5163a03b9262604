package domain

import (
	"time"
)

// User is the account holder. Consent gates the whole recommendation
// pipeline: without it no signals are computed and no content is returned.
type User struct {
	ID        string
	Name      string
	Email     string
	Consent   bool
	CreatedAt time.Time
}
