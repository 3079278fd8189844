package domain

// LoginRequest exchanges credentials for a bearer token.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the successful exchange payload. Token is opaque to the
// client beyond being placed in the Authorization header.
type LoginResult struct {
	UserIdentifier string `json:"userIdentifier"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	Token          string `json:"token"`
	ExpireIn       int64  `json:"expireIn"`
}

// Identity is what the session layer knows about the signed-in subject.
type Identity struct {
	UserIdentifier string
	Name           string
	Role           string
	Email          string
	AvatarURL      string
}
