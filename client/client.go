// Package client talks to the fleet data platform, the upstream that owns
// the vessel catalog, live AIS feeds and the organization directory.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/patrickmn/go-cache"

	"github.com/harborview/fleetwatch"
)

const (
	defaultTimeout = 10 * time.Second
	maxRetries     = 3
)

// ErrNotFound is returned when the platform has no record for the requested
// vessel or organization.
var ErrNotFound = errors.New("platform: not found")

type Client struct {
	client   *http.Client
	cache    *cache.Cache
	endpoint string
	apiKey   string
}

func New(endpoint, apiKey string) *Client {
	return &Client{
		client:   &http.Client{Timeout: defaultTimeout},
		cache:    cache.New(10*time.Minute, 15*time.Minute),
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

// Organization is the platform's account record for a tenant.
type Organization struct {
	OrgID       string `json:"orgId"`
	Name        string `json:"name"`
	AssignShips int    `json:"assignShips"`
}

// User is one entry of the platform's user directory.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GetVesselByIMO fetches the static vessel record together with its latest
// AIS snapshot. Results are cached; live position data going a few minutes
// stale is acceptable for the dashboard.
func (c *Client) GetVesselByIMO(ctx context.Context, imo int64) (fleetwatch.VesselAisRecord, error) {
	cacheKey := "vessel:" + strconv.FormatInt(imo, 10)
	if x, found := c.cache.Get(cacheKey); found {
		return x.(fleetwatch.VesselAisRecord), nil
	}

	var record fleetwatch.VesselAisRecord
	err := c.get(ctx, "/api/ais-data?imo="+strconv.FormatInt(imo, 10), &record)
	if err != nil {
		return fleetwatch.VesselAisRecord{}, err
	}

	c.cache.Set(cacheKey, record, cache.DefaultExpiration)

	return record, nil
}

// SearchVessels pages through the catalog, optionally narrowed by a free-text
// query over name and IMO.
func (c *Client) SearchVessels(ctx context.Context, query string, page, limit int) (fleetwatch.VesselPage, error) {
	params := url.Values{}
	if query != "" {
		params.Set("search", query)
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("limit", strconv.Itoa(limit))

	var result fleetwatch.VesselPage
	err := c.get(ctx, "/api/get-vessels?"+params.Encode(), &result)
	if err != nil {
		return fleetwatch.VesselPage{}, err
	}

	return result, nil
}

func (c *Client) GetOrganization(ctx context.Context, orgID string) (Organization, error) {
	var org Organization
	err := c.get(ctx, "/api/organizations/"+url.PathEscape(orgID), &org)
	if err != nil {
		return Organization{}, err
	}
	return org, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := c.get(ctx, "/api/get-users", &users)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// get performs one authenticated GET against the platform and decodes the
// JSON body into response. Transient failures are retried with exponential
// backoff; 4xx answers are not.
func (c *Client) get(ctx context.Context, path string, response any) error {
	operation := func() (struct{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("X-Api-Key", c.apiKey)
		}

		resp, err := c.client.Do(req)
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to perform request: %w", err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return struct{}{}, backoff.Permanent(ErrNotFound)
		case resp.StatusCode >= 500:
			return struct{}{}, fmt.Errorf("upstream status code: %d", resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return struct{}{}, backoff.Permanent(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
		}

		if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
			return struct{}{}, backoff.Permanent(fmt.Errorf("failed to decode response: %w", err))
		}

		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(maxRetries),
	)
	return err
}
