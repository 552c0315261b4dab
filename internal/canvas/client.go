// Package canvas implements the authenticated Canvas LMS REST client used
// to source courses, assignments and files for indexing.
package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mskaar/pensum/internal/cache"
	"github.com/mskaar/pensum/internal/model"
	"golang.org/x/time/rate"
)

// APIError reports a non-2xx Canvas response.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("canvas: GET %s returned %d", e.URL, e.StatusCode)
}

// Client talks to the Canvas REST API (v1) with bearer-token auth,
// Link-header pagination and client-side rate limiting. An optional cache
// makes repeated course syncs cheap.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	perPage    int
	maxBytes   int64
	limiter    *rate.Limiter
	store      cache.Cache // nil disables response caching
}

// NewClient builds a client for the configured Canvas domain. store may
// be nil.
func NewClient(cfg model.CanvasConfig, store cache.Cache) *Client {
	perPage := cfg.PerPage
	if perPage <= 0 {
		perPage = 50
	}
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 5
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    fmt.Sprintf("https://%s/api/v1", cfg.Domain),
		token:      cfg.Token,
		perPage:    perPage,
		maxBytes:   cfg.MaxBodyBytes,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		store:      store,
	}
}

// Courses lists the user's active course enrollments.
func (c *Client) Courses(ctx context.Context) ([]Course, error) {
	url := fmt.Sprintf("%s/courses?enrollment_state=active&per_page=%d", c.baseURL, c.perPage)
	courses, err := collect[Course](ctx, c, url)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// Assignments lists the assignments of a course.
func (c *Client) Assignments(ctx context.Context, courseID int) ([]Assignment, error) {
	url := fmt.Sprintf("%s/courses/%d/assignments?per_page=%d", c.baseURL, courseID, c.perPage)
	assignments, err := collect[Assignment](ctx, c, url)
	if err != nil {
		return nil, fmt.Errorf("list assignments for course %d: %w", courseID, err)
	}
	return assignments, nil
}

// Files lists the files of a course. Many institutions disable the /files
// endpoint for students; on 403 the client falls back to walking module
// items of type File, once.
func (c *Client) Files(ctx context.Context, courseID int) ([]File, error) {
	url := fmt.Sprintf("%s/courses/%d/files?per_page=%d", c.baseURL, courseID, c.perPage)
	files, err := collect[File](ctx, c, url)
	if err == nil {
		return files, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusForbidden {
		return nil, fmt.Errorf("list files for course %d: %w", courseID, err)
	}

	modURL := fmt.Sprintf("%s/courses/%d/modules?include=items&per_page=%d", c.baseURL, courseID, c.perPage)
	modules, err := collect[Module](ctx, c, modURL)
	if err != nil {
		return nil, fmt.Errorf("files fallback via modules for course %d: %w", courseID, err)
	}

	files = nil
	for _, m := range modules {
		for _, item := range m.Items {
			if item.Type != "File" {
				continue
			}
			files = append(files, File{
				ID:          item.ContentID,
				DisplayName: item.Title,
				URL:         item.HTMLURL,
			})
		}
	}
	return files, nil
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (Profile, error) {
	body, _, err := c.getPage(ctx, c.baseURL+"/users/self/profile")
	if err != nil {
		return Profile{}, fmt.Errorf("fetch profile: %w", err)
	}
	var p Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	return p, nil
}

// FileDownloadURL resolves the pre-signed download URL of a course file.
func (c *Client) FileDownloadURL(ctx context.Context, courseID, fileID int) (string, error) {
	url := fmt.Sprintf("%s/courses/%d/files/%d", c.baseURL, courseID, fileID)
	body, _, err := c.getPage(ctx, url)
	if err != nil {
		return "", fmt.Errorf("fetch file %d metadata: %w", fileID, err)
	}
	var f File
	if err := json.Unmarshal(body, &f); err != nil {
		return "", fmt.Errorf("decode file metadata: %w", err)
	}
	if f.URL == "" {
		return "", fmt.Errorf("file %d has no download url", fileID)
	}
	return f.URL, nil
}

// Download streams the content behind a (pre-signed) download URL.
func (c *Client) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, &APIError{StatusCode: resp.StatusCode, URL: url}
	}
	return resp.Body, nil
}

// collect fetches every page of a list endpoint, following rel="next"
// Link headers, and caches the accumulated result under the first URL.
func collect[T any](ctx context.Context, c *Client, url string) ([]T, error) {
	key := cache.Key(url)
	if c.store != nil {
		if data, ok := c.store.Get(key); ok {
			var items []T
			if json.Unmarshal(data, &items) == nil {
				return items, nil
			}
		}
	}

	var items []T
	next := url
	for next != "" {
		body, link, err := c.getPage(ctx, next)
		if err != nil {
			return nil, err
		}

		var page []T
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode canvas response: %w", err)
		}
		items = append(items, page...)
		next = link
	}

	if c.store != nil {
		if data, err := json.Marshal(items); err == nil {
			_ = c.store.Set(key, data, 0)
		}
	}
	return items, nil
}

// getPage performs one rate-limited authenticated GET and returns the
// body plus the rel="next" URL, if any.
func (c *Client) getPage(ctx context.Context, url string) ([]byte, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, "", &APIError{StatusCode: resp.StatusCode, URL: url}
	}

	reader := io.Reader(resp.Body)
	if c.maxBytes > 0 {
		reader = io.LimitReader(resp.Body, c.maxBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}

	return body, nextLink(resp.Header.Get("Link")), nil
}

// nextLink extracts the rel="next" target from a Canvas Link header.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		start := strings.Index(part, "<")
		end := strings.Index(part, ">")
		if start >= 0 && end > start {
			return part[start+1 : end]
		}
	}
	return ""
}
