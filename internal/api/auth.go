package api

import (
	"net/http"

	"librio/pkg/domain"
)

// RegisterRequest carries the self-registration form.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	StudentCode string `json:"studentCode,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// authPayload is the server's flat login/registration response.
type authPayload struct {
	Token    string      `json:"token"`
	ID       int64       `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

func (p authPayload) identity() domain.Identity {
	return domain.Identity{ID: p.ID, Username: p.Username, Email: p.Email, Role: p.Role}
}

// Login exchanges credentials for an identity and a bearer token.
func (c *Client) Login(username, password string) (domain.Identity, string, error) {
	payload := map[string]string{"username": username, "password": password}
	var resp authPayload
	if err := c.doJSON(http.MethodPost, "/api/auth/login", nil, payload, &resp); err != nil {
		return domain.Identity{}, "", err
	}
	return resp.identity(), resp.Token, nil
}

// Register creates an account and logs it in, in one round trip.
func (c *Client) Register(req RegisterRequest) (domain.Identity, string, error) {
	var resp authPayload
	if err := c.doJSON(http.MethodPost, "/api/auth/register", nil, req, &resp); err != nil {
		return domain.Identity{}, "", err
	}
	return resp.identity(), resp.Token, nil
}
