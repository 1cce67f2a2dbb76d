package models

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" yaml:"email"`
	Password string `json:"password" yaml:"password"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	AccessToken string `json:"access_token" yaml:"access_token"`
	Message     string `json:"message,omitempty" yaml:"message,omitempty"`
	User        *User  `json:"user,omitempty" yaml:"user,omitempty"`
}

// User represents an authenticated user in the system
type User struct {
	ID       string `json:"id" yaml:"id"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email" yaml:"email"`
	Role     string `json:"role" yaml:"role"`
}

// HealthStatus represents the backend health check payload
type HealthStatus struct {
	Status  string `json:"status" yaml:"status"`
	Version string `json:"version,omitempty" yaml:"version,omitempty"`
}
