package models

// AuthResult is returned by the backend on login and registration.
type AuthResult struct {
	UserID string `json:"user_id"`
	Token  string `json:"token"`
}

// Session is the locally persisted authentication context.
type Session struct {
	UserID   string
	Token    string
	DeviceID string
}

// Credentials are cached so destructive calls can re-authenticate.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthState is emitted whenever the backend session changes.
type AuthState struct {
	SignedIn bool
	UserID   string
}
