package aigen

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

func serve(t *testing.T, app *fiber.App) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln, fiber.ListenConfig{DisableStartupMessage: true}) }()
	t.Cleanup(func() { _ = app.Shutdown() })
	return "http://" + ln.Addr().String()
}

func TestHTTPGenerator(t *testing.T) {
	app := fiber.New()
	var got Request
	var auth string
	app.Post("/flow/string", func(c fiber.Ctx) error {
		if err := c.Bind().JSON(&got); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
		}
		auth = c.Get("Authorization")
		return c.JSON(fiber.Map{
			"diagramData": `{"nodes":[{"id":"a","data":{"label":"A"}}]}`,
			"response":    "made one",
		})
	})
	app.Post("/flow/inline", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"diagramData": fiber.Map{"nodes": []fiber.Map{{"id": "b", "data": fiber.Map{"label": "B"}}}},
			"response":    "inline",
		})
	})
	app.Post("/flow/busy", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "overloaded"})
	})
	app.Post("/flow/broken", func(c fiber.Ctx) error {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "model crashed"})
	})
	base := serve(t, app)
	ctx := context.Background()
	req := Request{DiagramType: graphmodel.DiagramMindMap, Instruction: "cells"}

	require.Eventually(t, func() bool {
		_, err := NewHTTPGenerator(base+"/flow/string", "tok", time.Second).Generate(ctx, req)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, "cells", got.Instruction)
	assert.Equal(t, graphmodel.DiagramMindMap, got.DiagramType)
	assert.Equal(t, "Bearer tok", auth)

	resp, err := NewHTTPGenerator(base+"/flow/inline", "", time.Second).Generate(ctx, req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"nodes":[{"id":"b","data":{"label":"B"}}]}`, resp.DiagramData)
	assert.Equal(t, "inline", resp.Response)

	_, err = NewHTTPGenerator(base+"/flow/busy", "", time.Second).Generate(ctx, req)
	assert.ErrorIs(t, err, diagerr.ErrUnavailable)
	assert.True(t, diagerr.IsKind(err, diagerr.KindExternalService))

	_, err = NewHTTPGenerator(base+"/flow/broken", "", time.Second).Generate(ctx, req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model crashed")
}
