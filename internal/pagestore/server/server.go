// Package server exposes a pagestore.Store over HTTP:
//
//	PUT /pages/:id   store the request body (a diagram document)
//	GET /pages/:id   200 with the page, 404 when absent
//	GET /schema      the document JSON schema
//	GET /healthz
//	GET /metrics     prometheus exposition
package server

import (
	"errors"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/softpython2884/StudyVerse-sub000/internal/docjson"
	"github.com/softpython2884/StudyVerse-sub000/internal/pagestore"
)

// Config tunes the server. Zero values are usable.
type Config struct {
	// BodyLimit caps document size in bytes.
	BodyLimit int
	// SkipValidation stores bodies without checking the document schema.
	SkipValidation bool
}

// DefaultBodyLimit is used when Config.BodyLimit is zero.
const DefaultBodyLimit = 8 << 20

// New builds the fiber app serving store.
func New(store pagestore.Store, cfg Config, metrics *Metrics, logger *slog.Logger) *fiber.App {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = DefaultBodyLimit
	}

	app := fiber.New(fiber.Config{
		AppName:   "studyverse-pagestore",
		BodyLimit: cfg.BodyLimit,
	})
	app.Use(instrument(metrics))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})))

	app.Get("/schema", func(c fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, "application/schema+json")
		return c.Send(docjson.Schema())
	})

	// ── Pages ──
	app.Put("/pages/:id", func(c fiber.Ctx) error {
		id := c.Params("id")
		body := slices.Clone(c.Body())
		if !cfg.SkipValidation {
			if _, err := docjson.Parse(body); err != nil {
				metrics.rejected.Inc()
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
			}
		}
		if err := store.Save(c.Context(), id, body); err != nil {
			logger.Error("save page", "page", id, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		metrics.pageBytes.Observe(float64(len(body)))
		logger.Info("page stored", "page", id, "bytes", len(body))
		return c.SendStatus(fiber.StatusNoContent)
	})

	app.Get("/pages/:id", func(c fiber.Ctx) error {
		id := c.Params("id")
		page, err := store.Load(c.Context(), id)
		if err != nil {
			logger.Error("load page", "page", id, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if page == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "page not found"})
		}
		return c.JSON(page)
	})

	return app
}

func instrument(m *Metrics) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		route := c.Route().Path
		m.requests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		m.latency.WithLabelValues(route, c.Method()).Observe(time.Since(start).Seconds())
		return err
	}
}
