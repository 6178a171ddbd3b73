package entities

import "time"

// AdminUser is a panel operator account. Passwords are stored as bcrypt hashes.
type AdminUser struct {
	ID           string    `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AdminSession is a server-issued session for an authenticated operator.
// The token is the only thing the client holds; it is validated against the
// session store on every admin request.
type AdminSession struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}
