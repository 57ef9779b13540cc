// Package aigen asks a generator for a diagram and turns the answer into a
// graph. The generator is an external collaborator: a remote flow over
// HTTP, or a local JavaScript function for offline use.
//
// A generated diagram replaces the editor's graph wholesale. Malformed
// output is reported and never produces a partial graph.
package aigen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/softpython2884/StudyVerse-sub000/internal/docjson"
	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

// Request is sent to a generator.
type Request struct {
	DiagramType         graphmodel.DiagramType `json:"diagramType"`
	Instruction         string                 `json:"instruction"`
	ExistingDiagramData string                 `json:"existingDiagramData,omitempty"`
}

// Response is what a generator returns. DiagramData is a JSON document in
// the page content format.
type Response struct {
	DiagramData string `json:"diagramData"`
	Response    string `json:"response"`
}

// Generator produces diagrams.
type Generator interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, req Request) (Response, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context, req Request) (Response, error) {
	return f(ctx, req)
}

// Result is a parsed generation.
type Result struct {
	Graph *graphmodel.Graph
	// Message is the generator's free-text reply.
	Message string
}

// Adapter validates requests and parses generator output.
type Adapter struct {
	gen    Generator
	logger *slog.Logger
}

// NewAdapter creates an adapter over gen.
func NewAdapter(gen Generator, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{gen: gen, logger: logger}
}

// Generate requests a diagram of the given type. existing, when non-nil,
// is sent as context. Nodes returned without coordinates are laid out with
// the fallback for kind.
func (a *Adapter) Generate(ctx context.Context, kind graphmodel.DiagramType, instruction string, existing *graphmodel.Graph) (Result, error) {
	const op = "aigen.Generate"
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return Result{}, diagerr.Validation(op, diagerr.ErrEmptyPrompt)
	}
	if !kind.Valid() {
		return Result{}, diagerr.Validation(op, fmt.Errorf("unknown diagram type %q", kind))
	}

	req := Request{DiagramType: kind, Instruction: instruction}
	if existing != nil && existing.Len() > 0 {
		data, err := docjson.Encode(existing)
		if err != nil {
			return Result{}, diagerr.Validation(op, err)
		}
		req.ExistingDiagramData = string(data)
	}

	a.logger.Info("generating diagram", "type", kind, "instruction_len", len(instruction), "with_context", req.ExistingDiagramData != "")
	resp, err := a.gen.Generate(ctx, req)
	if err != nil {
		if _, classified := diagerr.KindOf(err); !classified {
			err = diagerr.External(op, err)
		}
		a.logger.Warn("generation failed", "type", kind, "error", err)
		return Result{}, err
	}

	doc, err := docjson.Parse([]byte(resp.DiagramData))
	if err != nil {
		a.logger.Warn("generator returned malformed diagram", "type", kind, "error", err)
		return Result{}, err
	}
	doc.ApplyLayout(kind)
	g, err := doc.Graph()
	if err != nil {
		a.logger.Warn("generator returned inconsistent diagram", "type", kind, "error", err)
		return Result{}, err
	}
	a.logger.Info("diagram generated", "type", kind, "nodes", g.Len(), "edges", len(g.Edges()))
	return Result{Graph: g, Message: resp.Response}, nil
}
