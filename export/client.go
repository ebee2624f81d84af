package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrCaseNotFound is returned when the server has no submission with the
// requested ID.
var ErrCaseNotFound = errors.New("case not found")

// Client fetches full case records from the API for offline bundling.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 2 * time.Minute},
	}
}

// FetchCase retrieves one submission including file payloads.
func (c *Client) FetchCase(id string) (*Case, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/submissions/"+id, nil)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch case %s: %w", id, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrCaseNotFound
	default:
		return nil, fmt.Errorf("failed to fetch case %s: server returned %s", id, resp.Status)
	}

	var record Case
	if err := json.NewDecoder(resp.Body).Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode case %s: %w", id, err)
	}
	return &record, nil
}
