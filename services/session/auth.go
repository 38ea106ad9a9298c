package session

import (
	"context"
	"encoding/json"
	"fmt"

	"courtside/models"
)

// AuthResponse is the backend's login payload: the user record plus the
// bearer token for subsequent requests.
type AuthResponse struct {
	User  models.Session `json:"user"`
	Token string         `json:"token"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignIn exchanges credentials for a session record and bearer token. It
// does not persist anything; feed the result into Login.
func (s *DefaultSessionStore) SignIn(ctx context.Context, email, password string) (*models.Session, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("email and password are required")
	}

	body, err := s.API.Request(ctx, "POST", "/api/v1/auth/login", signInRequest{Email: email, Password: password}, nil)
	if err != nil {
		return nil, "", fmt.Errorf("sign in failed: %w", err)
	}

	var resp AuthResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, "", fmt.Errorf("failed to parse sign in response: %w", err)
	}
	if resp.Token == "" || resp.User.ID == "" {
		return nil, "", fmt.Errorf("sign in response is missing user or token")
	}

	return &resp.User, resp.Token, nil
}
