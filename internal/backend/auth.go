package backend

import (
	"context"
	"net/http"

	"github.com/Ragul1106/pet-store/internal/domain"
)

// TokenPair is the JWT pair issued by POST /token/.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Login exchanges credentials for a JWT pair.
func (c *Client) Login(ctx context.Context, username, password string) (*TokenPair, error) {
	var pair TokenPair
	body := loginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/token/", body, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Me returns the account behind the given access token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/account/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates an account and returns its projection.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPost, "/account/register/", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
