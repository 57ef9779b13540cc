package aigen

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

func fixed(data, msg string) Generator {
	return GeneratorFunc(func(context.Context, Request) (Response, error) {
		return Response{DiagramData: data, Response: msg}, nil
	})
}

func TestAdapterParsesAndLaysOut(t *testing.T) {
	data := `{"nodes":[
	  {"id":"a","data":{"label":"CEO"}},
	  {"id":"b","data":{"label":"CTO"},"parent":"a"},
	  {"id":"c","data":{"label":"CFO"},"parent":"a"},
	  {"id":"d","data":{"label":"Dev"},"parent":"b"}
	],"edges":[]}`
	res, err := NewAdapter(fixed(data, "done"), nil).Generate(context.Background(), graphmodel.DiagramOrgChart, "org chart", nil)
	require.NoError(t, err)
	assert.Equal(t, "done", res.Message)

	want := map[string]geom.Point{
		"a": geom.Pt(120, 80), "b": geom.Pt(320, 220), "d": geom.Pt(320, 360), "c": geom.Pt(520, 220),
	}
	for id, p := range want {
		n, ok := res.Graph.Node(id)
		require.True(t, ok, id)
		assert.Equal(t, p, n.Position, id)
	}
}

func TestAdapterRejectsEmptyPrompt(t *testing.T) {
	called := false
	gen := GeneratorFunc(func(context.Context, Request) (Response, error) {
		called = true
		return Response{}, nil
	})
	_, err := NewAdapter(gen, nil).Generate(context.Background(), graphmodel.DiagramMindMap, "   ", nil)
	assert.ErrorIs(t, err, diagerr.ErrEmptyPrompt)
	assert.True(t, diagerr.IsKind(err, diagerr.KindValidation))
	assert.False(t, called)
}

func TestAdapterMalformedJSON(t *testing.T) {
	res, err := NewAdapter(fixed(`{"nodes": [ oops`, ""), nil).Generate(context.Background(), graphmodel.DiagramFlowchart, "x", nil)
	require.Error(t, err)
	assert.True(t, diagerr.IsKind(err, diagerr.KindParse))
	assert.Nil(t, res.Graph)
	assert.True(t, strings.HasPrefix(diagerr.UserMessage(err), "AI service error: "))
}

func TestAdapterInconsistentDocument(t *testing.T) {
	data := `{"nodes":[{"id":"a","data":{"label":"A"}}],"edges":[{"id":"e","from":"a","to":"ghost"}]}`
	res, err := NewAdapter(fixed(data, ""), nil).Generate(context.Background(), graphmodel.DiagramFlowchart, "x", nil)
	assert.True(t, diagerr.IsKind(err, diagerr.KindParse))
	assert.Nil(t, res.Graph)
}

func TestAdapterClassifiesGeneratorErrors(t *testing.T) {
	gen := GeneratorFunc(func(context.Context, Request) (Response, error) {
		return Response{}, errors.New("upstream overloaded")
	})
	_, err := NewAdapter(gen, nil).Generate(context.Background(), graphmodel.DiagramFlowchart, "x", nil)
	assert.True(t, diagerr.IsKind(err, diagerr.KindExternalService))
}

func TestAdapterSendsExistingDiagram(t *testing.T) {
	existing := graphmodel.New()
	require.NoError(t, existing.AddNode(graphmodel.Node{ID: "old", Label: "Old"}))

	var got Request
	gen := GeneratorFunc(func(_ context.Context, req Request) (Response, error) {
		got = req
		return Response{DiagramData: `{"nodes":[]}`}, nil
	})
	res, err := NewAdapter(gen, nil).Generate(context.Background(), graphmodel.DiagramMindMap, "  expand  ", existing)
	require.NoError(t, err)
	assert.Equal(t, "expand", got.Instruction)
	assert.Equal(t, graphmodel.DiagramMindMap, got.DiagramType)
	assert.Contains(t, got.ExistingDiagramData, `"id":"old"`)
	assert.Equal(t, 0, res.Graph.Len())
}

// ── Script generator ──

func TestBuiltinFlowchart(t *testing.T) {
	a := NewAdapter(NewBuiltinGenerator(nil), nil)
	res, err := a.Generate(context.Background(), graphmodel.DiagramFlowchart, "Start -> Mix -> Bake -> Eat", nil)
	require.NoError(t, err)
	assert.Contains(t, res.Message, "4 nodes")

	nodes := res.Graph.Nodes()
	require.Len(t, nodes, 4)
	assert.Equal(t, "Start", nodes[0].Label)
	assert.Equal(t, graphmodel.KindInput, nodes[0].Kind)
	assert.Equal(t, graphmodel.KindOutput, nodes[3].Kind)
	assert.Equal(t, geom.Pt(150, 80), nodes[0].Position)
	assert.Equal(t, geom.Pt(750, 80), nodes[3].Position)

	edges := res.Graph.Edges()
	require.Len(t, edges, 3)
	assert.Equal(t, graphmodel.RoutingSmoothstep, edges[0].Routing)
	assert.Equal(t, graphmodel.ArrowClosed, edges[0].Arrow)
}

func TestBuiltinOrgChartUnder(t *testing.T) {
	a := NewAdapter(NewBuiltinGenerator(nil), nil)
	res, err := a.Generate(context.Background(), graphmodel.DiagramOrgChart, "CEO, CTO, CFO, Dev under CTO", nil)
	require.NoError(t, err)

	dev, ok := res.Graph.Node("n4")
	require.True(t, ok)
	assert.Equal(t, "Dev", dev.Label)
	assert.Equal(t, geom.Pt(320, 360), dev.Position)
	assert.Len(t, res.Graph.InEdges("n4"), 1)
	assert.Equal(t, "n2", res.Graph.InEdges("n4")[0].From)
}

func TestBuiltinMindMapCentersRoot(t *testing.T) {
	a := NewAdapter(NewBuiltinGenerator(nil), nil)
	res, err := a.Generate(context.Background(), graphmodel.DiagramMindMap, "Cells: nucleus, membrane", nil)
	require.NoError(t, err)
	root, _ := res.Graph.Node("n1")
	assert.Equal(t, geom.Pt(1000, 700), root.Position)
	assert.Len(t, res.Graph.OutEdges("n1"), 2)
}

func TestScriptReturningString(t *testing.T) {
	src := `function generate(req) {
	  return { diagramData: JSON.stringify({nodes: [{id: "x", position: {x: 1, y: 2}, data: {label: req.instruction}}], edges: []}), response: "ok" };
	}`
	gen, err := NewScriptGenerator("s.js", src, nil)
	require.NoError(t, err)
	res, err := NewAdapter(gen, nil).Generate(context.Background(), graphmodel.DiagramFlowchart, "hello", nil)
	require.NoError(t, err)
	x, _ := res.Graph.Node("x")
	assert.Equal(t, "hello", x.Label)
	assert.Equal(t, "ok", res.Message)
}

func TestScriptErrors(t *testing.T) {
	_, err := NewScriptGenerator("bad.js", "function (", nil)
	assert.Error(t, err)

	cases := map[string]struct {
		src  string
		kind diagerr.Kind
	}{
		"no generate": {`var x = 1;`, diagerr.KindExternalService},
		"throws":      {`function generate() { throw new Error("boom"); }`, diagerr.KindExternalService},
		"no data":     {`function generate() { return {response: "hi"}; }`, diagerr.KindParse},
		"returns nil": {`function generate() { return null; }`, diagerr.KindParse},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gen, err := NewScriptGenerator(name, tc.src, nil)
			require.NoError(t, err)
			_, err = gen.Generate(context.Background(), Request{DiagramType: graphmodel.DiagramFlowchart, Instruction: "x"})
			require.Error(t, err)
			assert.True(t, diagerr.IsKind(err, tc.kind), "got %v", err)
		})
	}
}

func TestScriptTimeout(t *testing.T) {
	gen, err := NewScriptGenerator("loop.js", `function generate() { for (;;) {} }`, nil)
	require.NoError(t, err)
	gen.Timeout = 50 * time.Millisecond

	start := time.Now()
	_, err = gen.Generate(context.Background(), Request{DiagramType: graphmodel.DiagramFlowchart, Instruction: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, diagerr.ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}
