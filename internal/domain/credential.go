package domain

// Credential stores the login record for a user. One per user, created in the
// same transaction as the user row.
type Credential struct {
	ID           int64
	UserID       int64
	Username     string
	PasswordHash string
}
