package pagestore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3/client"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
)

// DefaultClientTimeout bounds a single request to the page store server.
const DefaultClientTimeout = 10 * time.Second

// Remote is a Store that talks to the page store server over HTTP.
type Remote struct {
	cc *client.Client
}

// NewRemote creates a client for the server at baseURL.
func NewRemote(baseURL string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = DefaultClientTimeout
	}
	cc := client.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout)
	return &Remote{cc: cc}
}

func pagePath(id string) string { return "/pages/" + url.PathEscape(id) }

// Save implements Store with PUT /pages/:id.
func (r *Remote) Save(ctx context.Context, pageID string, content []byte) error {
	const op = "pagestore.Remote.Save"
	if err := checkPageID(op, pageID); err != nil {
		return err
	}
	resp, err := r.cc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetRawBody(content).
		Put(pagePath(pageID))
	if err != nil {
		return diagerr.Persistence(op, fmt.Errorf("%w: %v", diagerr.ErrUnavailable, err))
	}
	defer resp.Close()
	if code := resp.StatusCode(); code != http.StatusOK && code != http.StatusNoContent {
		return diagerr.Persistence(op, remoteError(code, resp.Body()))
	}
	return nil
}

// Load implements Store with GET /pages/:id.
func (r *Remote) Load(ctx context.Context, pageID string) (*Page, error) {
	const op = "pagestore.Remote.Load"
	resp, err := r.cc.R().SetContext(ctx).Get(pagePath(pageID))
	if err != nil {
		return nil, diagerr.Persistence(op, fmt.Errorf("%w: %v", diagerr.ErrUnavailable, err))
	}
	defer resp.Close()
	switch code := resp.StatusCode(); code {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, nil
	default:
		return nil, diagerr.Persistence(op, remoteError(code, resp.Body()))
	}
	var page Page
	if err := json.Unmarshal(resp.Body(), &page); err != nil {
		return nil, diagerr.Persistence(op, fmt.Errorf("decode page: %w", err))
	}
	return &page, nil
}

// remoteError extracts the server's {"error": ...} message when present.
func remoteError(code int, body []byte) error {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return fmt.Errorf("server returned %d: %s", code, e.Error)
	}
	return fmt.Errorf("server returned %d", code)
}
