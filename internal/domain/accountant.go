package domain

import "time"

// Accountant is a roster entry created when a user is promoted. It is
// informational; users reference at most one accountant.
type Accountant struct {
	ID        int64
	FirstName string
	LastName  string
	CreatedAt time.Time
}
