package aigen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3/client"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
)

// DefaultHTTPTimeout bounds one generation call. Model calls are slow.
const DefaultHTTPTimeout = 90 * time.Second

// HTTPGenerator posts requests to a remote diagram flow endpoint.
type HTTPGenerator struct {
	cc       *client.Client
	endpoint string
	token    string
}

// NewHTTPGenerator creates a generator for endpoint. token, when set, is
// sent as a bearer token.
func NewHTTPGenerator(endpoint, token string, timeout time.Duration) *HTTPGenerator {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTPGenerator{
		cc:       client.New().SetTimeout(timeout),
		endpoint: endpoint,
		token:    token,
	}
}

// wireResponse accepts diagramData either as a JSON string or inline.
type wireResponse struct {
	DiagramData json.RawMessage `json:"diagramData"`
	Response    string          `json:"response"`
	Error       string          `json:"error"`
}

// Generate implements Generator.
func (h *HTTPGenerator) Generate(ctx context.Context, req Request) (Response, error) {
	const op = "aigen.HTTPGenerator"
	body, err := json.Marshal(req)
	if err != nil {
		return Response{}, diagerr.External(op, err)
	}
	r := h.cc.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRawBody(body)
	if h.token != "" {
		r.SetHeader("Authorization", "Bearer "+h.token)
	}
	resp, err := r.Post(h.endpoint)
	if err != nil {
		return Response{}, diagerr.External(op, fmt.Errorf("%w: %v", diagerr.ErrUnavailable, err))
	}
	defer resp.Close()

	var wire wireResponse
	decodeErr := json.Unmarshal(resp.Body(), &wire)

	switch code := resp.StatusCode(); {
	case code == http.StatusTooManyRequests || code == http.StatusServiceUnavailable:
		return Response{}, diagerr.External(op, fmt.Errorf("%w: model overloaded (%d)", diagerr.ErrUnavailable, code))
	case code < 200 || code > 299:
		msg := fmt.Sprintf("status %d", code)
		if decodeErr == nil && wire.Error != "" {
			msg += ": " + wire.Error
		}
		return Response{}, diagerr.External(op, fmt.Errorf("generation failed: %s", msg))
	}
	if decodeErr != nil {
		return Response{}, diagerr.Parse(op, fmt.Errorf("%w: %v", diagerr.ErrMalformedDocument, decodeErr))
	}

	out := Response{Response: wire.Response}
	raw := bytes.TrimSpace(wire.DiagramData)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &out.DiagramData); err != nil {
			return Response{}, diagerr.Parse(op, fmt.Errorf("%w: %v", diagerr.ErrMalformedDocument, err))
		}
	} else {
		out.DiagramData = string(raw)
	}
	return out, nil
}
