package model

// Environment identifies the deployment environment.
type Environment string

const (
	EnvironmentDevelopment Environment = "development"
	EnvironmentProduction  Environment = "production"
)

// Scope carries the identity of the user a request acts on behalf of.
// For Telegram the user ID doubles as the private chat ID.
type Scope struct {
	UserID   int64
	Username string
}
