package aigen

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dop251/goja"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
)

//go:embed builtin.js
var builtinScript string

// DefaultScriptTimeout stops runaway scripts.
const DefaultScriptTimeout = 5 * time.Second

// ScriptGenerator runs a JavaScript `generate(req)` function in goja. The
// function receives {diagramType, instruction, existingDiagramData} and
// returns {diagramData, response}, where diagramData is a document object
// or its JSON text. A `log(...)` function writes to the logger.
type ScriptGenerator struct {
	program *goja.Program
	logger  *slog.Logger
	Timeout time.Duration
}

// NewScriptGenerator compiles src. name is used in error positions.
func NewScriptGenerator(name, src string, logger *slog.Logger) (*ScriptGenerator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	prog, err := goja.Compile(name, src, false)
	if err != nil {
		return nil, diagerr.Validation("aigen.NewScriptGenerator", fmt.Errorf("compile %s: %w", name, err))
	}
	return &ScriptGenerator{program: prog, logger: logger, Timeout: DefaultScriptTimeout}, nil
}

// NewBuiltinGenerator returns the bundled offline generator, which turns a
// comma or arrow separated instruction into a diagram.
func NewBuiltinGenerator(logger *slog.Logger) *ScriptGenerator {
	g, err := NewScriptGenerator("builtin.js", builtinScript, logger)
	if err != nil {
		panic(err) // bundled source
	}
	return g
}

// Generate implements Generator. Each call runs in a fresh runtime.
func (s *ScriptGenerator) Generate(ctx context.Context, req Request) (resp Response, err error) {
	const op = "aigen.ScriptGenerator"
	vm := goja.New()

	if err := vm.Set("log", func(call goja.FunctionCall) goja.Value {
		parts := make([]string, len(call.Arguments))
		for i, arg := range call.Arguments {
			parts[i] = arg.String()
		}
		s.logger.Debug("script", "msg", strings.Join(parts, " "))
		return goja.Undefined()
	}); err != nil {
		return Response{}, diagerr.External(op, err)
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err())
		case <-stop:
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = diagerr.External(op, fmt.Errorf("script panic: %v", r))
		}
	}()

	if _, err := vm.RunProgram(s.program); err != nil {
		return Response{}, s.scriptError(op, err)
	}
	fn, ok := goja.AssertFunction(vm.Get("generate"))
	if !ok {
		return Response{}, diagerr.External(op, errors.New("script does not define generate(req)"))
	}

	arg := map[string]any{
		"diagramType":         string(req.DiagramType),
		"instruction":         req.Instruction,
		"existingDiagramData": req.ExistingDiagramData,
	}
	out, err := fn(goja.Undefined(), vm.ToValue(arg))
	if err != nil {
		return Response{}, s.scriptError(op, err)
	}
	if goja.IsUndefined(out) || goja.IsNull(out) {
		return Response{}, diagerr.Parse(op, fmt.Errorf("%w: generate returned nothing", diagerr.ErrMalformedDocument))
	}

	obj := out.ToObject(vm)
	if msg := obj.Get("response"); msg != nil && !goja.IsUndefined(msg) {
		resp.Response = msg.String()
	}
	data := obj.Get("diagramData")
	switch {
	case data == nil || goja.IsUndefined(data) || goja.IsNull(data):
		return Response{}, diagerr.Parse(op, fmt.Errorf("%w: no diagramData", diagerr.ErrMalformedDocument))
	case isString(data):
		resp.DiagramData = data.String()
	default:
		b, err := json.Marshal(data.Export())
		if err != nil {
			return Response{}, diagerr.Parse(op, fmt.Errorf("%w: %v", diagerr.ErrMalformedDocument, err))
		}
		resp.DiagramData = string(b)
	}
	return resp, nil
}

func isString(v goja.Value) bool {
	_, ok := v.Export().(string)
	return ok
}

func (s *ScriptGenerator) scriptError(op string, err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		if cause, ok := interrupted.Value().(error); ok {
			return diagerr.External(op, fmt.Errorf("%w: %w", diagerr.ErrUnavailable, cause))
		}
		return diagerr.External(op, diagerr.ErrUnavailable)
	}
	return diagerr.External(op, fmt.Errorf("script error: %w", err))
}
