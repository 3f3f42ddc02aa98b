// Package directory is the read-only client for the external user/identity
// service: id to name, email and role. Roles are normalized here, at the
// boundary, so nothing downstream ever sees a prefixed role value.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fleetride-backend/internal/domain"
	"fleetride-backend/internal/logger"
)

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

func (c *Client) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/v1/users/%d", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	logger.ExternalServiceCall("user-directory", "GetUser", "user_id", id)
	resp, err := c.http.Do(req)
	if err != nil {
		logger.ExternalServiceResult("user-directory", "GetUser", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("user directory: status %d", resp.StatusCode)
		logger.ExternalServiceResult("user-directory", "GetUser", err)
		return nil, err
	}

	var body struct {
		ID    int64  `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	return &domain.User{
		ID:    body.ID,
		Name:  body.Name,
		Email: body.Email,
		Role:  domain.NormalizeRole(body.Role),
	}, nil
}
