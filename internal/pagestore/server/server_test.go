package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softpython2884/StudyVerse-sub000/internal/docjson"
	"github.com/softpython2884/StudyVerse-sub000/internal/pagestore"
	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
)

const doc = `{"nodes":[{"id":"a","position":{"x":1,"y":2},"data":{"label":"A"}}],"edges":[]}`

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestPutThenGet(t *testing.T) {
	app := New(pagestore.NewMemory(), Config{}, nil, nil)

	resp, _ := do(t, app, http.MethodPut, "/pages/p1", doc)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/pages/p1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page pagestore.Page
	require.NoError(t, json.Unmarshal([]byte(body), &page))
	assert.Equal(t, "p1", page.ID)
	assert.JSONEq(t, doc, string(page.Content))
}

func TestGetMissing(t *testing.T) {
	app := New(pagestore.NewMemory(), Config{}, nil, nil)
	resp, body := do(t, app, http.MethodGet, "/pages/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "page not found")
}

func TestPutRejectsInvalidDocument(t *testing.T) {
	store := pagestore.NewMemory()
	app := New(store, Config{}, nil, nil)

	resp, body := do(t, app, http.MethodPut, "/pages/p1", `{"nodes": "nope"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "malformed diagram document")
	assert.Equal(t, 0, store.Len())

	lenient := New(store, Config{SkipValidation: true}, nil, nil)
	resp, _ = do(t, lenient, http.MethodPut, "/pages/p1", `{"nodes": "nope"}`)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHealthAndMetrics(t *testing.T) {
	app := New(pagestore.NewMemory(), Config{}, NewMetrics(), nil)

	resp, body := do(t, app, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	do(t, app, http.MethodPut, "/pages/p1", doc)
	do(t, app, http.MethodGet, "/pages/missing", "")

	resp, body = do(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "studyverse_pagestore_requests_total")
	assert.Contains(t, body, `status="404"`)
	assert.Contains(t, body, "studyverse_pagestore_page_bytes")
}

func TestServesDocumentSchema(t *testing.T) {
	app := New(pagestore.NewMemory(), Config{}, nil, nil)
	resp, body := do(t, app, http.MethodGet, "/schema", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/schema+json", resp.Header.Get("Content-Type"))
	assert.JSONEq(t, string(docjson.Schema()), body)
}

// TestRemoteClient drives the real HTTP client against a listening server.
func TestRemoteClient(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	app := New(pagestore.NewMemory(), Config{}, nil, nil)
	go func() {
		_ = app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true})
	}()
	defer func() { _ = app.Shutdown() }()

	remote := pagestore.NewRemote("http://"+ln.Addr().String()+"/", 5*time.Second)
	ctx := context.Background()

	require.Eventually(t, func() bool {
		p, err := remote.Load(ctx, "warmup")
		return err == nil && p == nil
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, remote.Save(ctx, "page 1", []byte(doc)))
	p, err := remote.Load(ctx, "page 1")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.JSONEq(t, doc, string(p.Content))

	err = remote.Save(ctx, "bad", []byte(`[]`))
	require.Error(t, err)
	assert.True(t, diagerr.IsKind(err, diagerr.KindPersistence))
	assert.Contains(t, err.Error(), "422")
}
