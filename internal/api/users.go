package api

import (
	"fmt"
	"net/http"

	"librio/pkg/domain"
)

// ProfileUpdate carries the editable fields of the caller's own profile.
type ProfileUpdate struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

func (c *Client) Users() ([]domain.User, error) {
	var users []domain.User
	if err := c.doJSON(http.MethodGet, "/api/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) Me() (domain.User, error) {
	var user domain.User
	if err := c.doJSON(http.MethodGet, "/api/users/me", nil, nil, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (c *Client) User(id int64) (domain.User, error) {
	var user domain.User
	path := fmt.Sprintf("/api/users/%d", id)
	if err := c.doJSON(http.MethodGet, path, nil, nil, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (c *Client) UpdateMe(update ProfileUpdate) (domain.User, error) {
	var user domain.User
	if err := c.doJSON(http.MethodPut, "/api/users/me", nil, update, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// UpdateUserRole changes another user's role. Admin only, server-enforced.
func (c *Client) UpdateUserRole(id int64, role domain.Role) (domain.User, error) {
	payload := map[string]domain.Role{"role": role}
	var user domain.User
	path := fmt.Sprintf("/api/users/%d/role", id)
	if err := c.doJSON(http.MethodPut, path, nil, payload, &user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (c *Client) DeleteUser(id int64) error {
	return c.doJSON(http.MethodDelete, fmt.Sprintf("/api/users/%d", id), nil, nil, nil)
}
