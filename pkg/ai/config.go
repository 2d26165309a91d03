package ai

// Config is a user's stored provider configuration.
type Config struct {
	ID       int
	UserID   int
	Provider string
	APIKey   string
	APIBase  string
	Model    string
	IsActive bool
}
