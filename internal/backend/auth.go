package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/feastly/opsboard/internal/auth"
)

const loginPath = "/login_restaurant"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Profile profilePayload `json:"profile"`
}

// The backend is loose about numeric vs string ids and ratings, so both are
// decoded as json.Number and carried as strings.
type profilePayload struct {
	ID       json.Number `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Rating   json.Number `json:"rating"`
}

// Login verifies credentials. A 4xx from the backend means the account does
// not exist or the password is wrong; anything else is a transport problem.
func (c *Client) Login(ctx context.Context, email, password string) (auth.Profile, error) {
	var response loginResponse
	err := c.postJSON(ctx, loginPath, loginRequest{Email: email, Password: password}, &response)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code >= http.StatusBadRequest && statusErr.Code < http.StatusInternalServerError {
			return auth.Profile{}, auth.ErrInvalidCredentials
		}
		return auth.Profile{}, err
	}

	return auth.Profile{
		ID:       response.Profile.ID.String(),
		Email:    response.Profile.Email,
		FullName: response.Profile.FullName,
		Rating:   response.Profile.Rating.String(),
	}, nil
}
