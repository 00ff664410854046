package sonarqube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sonartools/sonarpdf/models"
)

// pageSize is the fixed page size used for issue search pagination.
const pageSize = 500

// Client is a minimal HTTP client for the SonarQube web API.
// It is intentionally thin — only the three read endpoints needed for the
// report are implemented, plus a credential check for the preflight command.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a Client for the server at baseURL authenticated with token.
// The token is sent as a basic-auth username with an empty password, which
// is how SonarQube expects user tokens.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// Measures fetches the report's fixed metric set for projectKey and returns
// a metric-key to value map. Metrics reported without a value map to "N/A".
func (c *Client) Measures(ctx context.Context, projectKey string) (map[string]string, error) {
	q := url.Values{}
	q.Set("component", projectKey)
	q.Set("metricKeys", strings.Join(models.MetricKeys(), ","))

	var body measuresResponse
	if err := c.get(ctx, "/api/measures/component", q, &body); err != nil {
		return nil, err
	}
	if body.Component == nil {
		return nil, fmt.Errorf("measures response for %q has no component field", projectKey)
	}

	metrics := make(map[string]string, len(body.Component.Measures))
	for _, m := range body.Component.Measures {
		if m.Value == "" {
			metrics[m.Metric] = "N/A"
			continue
		}
		metrics[m.Metric] = m.Value
	}
	return metrics, nil
}

// QualityGate fetches the quality gate evaluation for projectKey.
func (c *Client) QualityGate(ctx context.Context, projectKey string) (*GateStatus, error) {
	q := url.Values{}
	q.Set("projectKey", projectKey)

	var body gateResponse
	if err := c.get(ctx, "/api/qualitygates/project_status", q, &body); err != nil {
		return nil, err
	}
	if body.ProjectStatus == nil {
		return nil, fmt.Errorf("quality gate response for %q has no projectStatus field", projectKey)
	}
	return body.ProjectStatus, nil
}

// Issues fetches every issue of projectKey with full changelog and comments
// inline, newest creation date first. Pages are fetched sequentially until
// the running count reaches the server-reported total; any page failure
// aborts the whole fetch. The optional onPage callback receives the running
// count and the total after each page.
func (c *Client) Issues(ctx context.Context, projectKey string, onPage func(fetched, total int)) ([]Issue, error) {
	statuses := make([]string, len(models.AllStatuses))
	for i, s := range models.AllStatuses {
		statuses[i] = s.String()
	}

	var all []Issue
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("componentKeys", projectKey)
		q.Set("p", strconv.Itoa(page))
		q.Set("ps", strconv.Itoa(pageSize))
		q.Set("s", "CREATION_DATE")
		q.Set("asc", "false")
		q.Set("statuses", strings.Join(statuses, ","))
		q.Set("additionalFields", "_all")

		var body searchResponse
		if err := c.get(ctx, "/api/issues/search", q, &body); err != nil {
			return nil, fmt.Errorf("fetching issues page %d: %w", page, err)
		}

		all = append(all, body.Issues...)
		slog.Debug("Fetched issue page", "page", page, "count", len(all), "total", body.Total)
		if onPage != nil {
			onPage(len(all), body.Total)
		}

		if len(all) >= body.Total || len(body.Issues) == 0 {
			return all, nil
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
}

// Validate checks the configured token against api/authentication/validate.
func (c *Client) Validate(ctx context.Context) error {
	var body validateResponse
	if err := c.get(ctx, "/api/authentication/validate", nil, &body); err != nil {
		return err
	}
	if !body.Valid {
		return fmt.Errorf("sonarqube rejected the token: authentication/validate returned valid=false")
	}
	return nil
}

// get executes an authenticated GET request and decodes the JSON response
// into out. Non-2xx responses are converted to descriptive errors with a
// status-code-specific hint.
func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(q) > 0 {
		reqURL += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.token, "")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w — ensure SonarQube is running at %s and is accessible", path, err, c.baseURL)
	}
	defer res.Body.Close() //nolint:errcheck

	b, err := io.ReadAll(io.LimitReader(res.Body, 64<<20))
	if err != nil {
		return fmt.Errorf("reading response from %s: %w", path, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return c.statusError(path, res.StatusCode)
	}

	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("decoding response from %s: %w", path, err)
	}
	return nil
}

// statusError maps a non-2xx status to a human-readable cause.
func (c *Client) statusError(path string, code int) error {
	switch code {
	case http.StatusUnauthorized:
		return fmt.Errorf("sonarqube returned 401 for %s: authentication failed — check that the token is valid", path)
	case http.StatusForbidden:
		return fmt.Errorf("sonarqube returned 403 for %s: authorization failed — the token's user may lack Browse permission on the project", path)
	case http.StatusNotFound:
		return fmt.Errorf("sonarqube returned 404 for %s: project not found — verify the project key", path)
	default:
		return fmt.Errorf("sonarqube returned %d for %s: ensure the server at %s is reachable", code, path, c.baseURL)
	}
}
