package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const defaultTimeout = 15 * time.Second

// Client is the HTTP implementation of DataSource against the upstream
// backend's REST API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Client) FetchGyms(ctx context.Context) ([]Gym, error) {
	var gyms []Gym
	if err := c.get(ctx, c.baseURL+"/gyms", &gyms); err != nil {
		return nil, fmt.Errorf("failed to fetch gyms: %w", err)
	}
	return gyms, nil
}

func (c *Client) FetchGym(ctx context.Context, gymID uuid.UUID) (*Gym, error) {
	var gym Gym
	if err := c.get(ctx, fmt.Sprintf("%s/gyms/%s", c.baseURL, gymID), &gym); err != nil {
		return nil, fmt.Errorf("failed to fetch gym %s: %w", gymID, err)
	}
	return &gym, nil
}

func (c *Client) FetchSpraywalls(ctx context.Context, gymID uuid.UUID) ([]Spraywall, error) {
	var walls []Spraywall
	url := fmt.Sprintf("%s/gyms/%s/spraywalls", c.baseURL, gymID)
	if err := c.get(ctx, url, &walls); err != nil {
		return nil, fmt.Errorf("failed to fetch spraywalls for gym %s: %w", gymID, err)
	}
	return walls, nil
}

func (c *Client) FetchBoulders(ctx context.Context, spraywallID uuid.UUID) ([]Boulder, error) {
	var boulders []Boulder
	url := fmt.Sprintf("%s/spraywalls/%s/boulders", c.baseURL, spraywallID)
	if err := c.get(ctx, url, &boulders); err != nil {
		return nil, fmt.Errorf("failed to fetch boulders for spraywall %s: %w", spraywallID, err)
	}
	return boulders, nil
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
