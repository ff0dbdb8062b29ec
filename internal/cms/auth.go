package cms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
)

type authResponse struct {
	JWT  string      `json:"jwt"`
	User domain.User `json:"user"`
}

// Login exchanges credentials for the CMS identity and a bearer token.
// The identifier is a username or email.
func (c *Client) Login(ctx context.Context, identifier, password string) (*domain.User, string, error) {
	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}

	data, err := c.do(ctx, http.MethodPost, "/api/auth/local", "", body)
	if err != nil {
		return nil, "", err
	}

	return decodeAuth(data)
}

// Register creates an account and signs it in, in one CMS call.
func (c *Client) Register(ctx context.Context, username, email, password string) (*domain.User, string, error) {
	body := map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}

	data, err := c.do(ctx, http.MethodPost, "/api/auth/local/register", "", body)
	if err != nil {
		return nil, "", err
	}

	return decodeAuth(data)
}

func decodeAuth(data []byte) (*domain.User, string, error) {
	var resp authResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, "", fmt.Errorf("decode auth response failed: %w", err)
	}
	if resp.JWT == "" {
		return nil, "", fmt.Errorf("auth response carried no token")
	}

	return &resp.User, resp.JWT, nil
}
