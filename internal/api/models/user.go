package models

// User represents a user in the database.
type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

// RegisterRequest defines the structure for an account creation request.
// VerifyPassword must repeat Password exactly.
type RegisterRequest struct {
	Username       string `json:"username" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Password       string `json:"password" binding:"required"`
	VerifyPassword string `json:"verify_password" binding:"required"`
}

// TokenResponse defines the structure for the token endpoint response.
type TokenResponse struct {
	Token string `json:"token"`
}
