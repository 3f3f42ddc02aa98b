// Package geo talks to the depot-distance estimator service. Any transport
// failure, decode failure or timeout surfaces as ErrDistanceUnavailable: a
// delivery fee is never silently zero.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
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

// EstimateKm returns the distance from the nearest depot to the address.
func (c *Client) EstimateKm(ctx context.Context, address string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/v1/distance?address=%s", c.baseURL, url.QueryEscape(address))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrDistanceUnavailable, err)
	}

	logger.ExternalServiceCall("distance-estimator", "EstimateKm", "address", address)
	resp, err := c.http.Do(req)
	if err != nil {
		logger.ExternalServiceResult("distance-estimator", "EstimateKm", err)
		return 0, fmt.Errorf("%w: %v", domain.ErrDistanceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("status %d", resp.StatusCode)
		logger.ExternalServiceResult("distance-estimator", "EstimateKm", err)
		return 0, fmt.Errorf("%w: %v", domain.ErrDistanceUnavailable, err)
	}

	var body struct {
		DistanceKm float64 `json:"distance_km"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.ExternalServiceResult("distance-estimator", "EstimateKm", err)
		return 0, fmt.Errorf("%w: %v", domain.ErrDistanceUnavailable, err)
	}

	logger.ExternalServiceResult("distance-estimator", "EstimateKm", nil, "km", body.DistanceKm)
	return body.DistanceKm, nil
}
