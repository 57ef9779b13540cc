// Package studyui is the terminal front end of the diagram editor. It
// draws the graph into a cell buffer, maps mouse and keyboard input onto
// the editor controller, and runs saves, generations and loads as
// bubbletea commands so the event loop never blocks.
package studyui

import (
	"image"
	"log/slog"
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/softpython2884/StudyVerse-sub000/internal/editor"
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
	"github.com/softpython2884/StudyVerse-sub000/pkg/viewport"
)

// Tool is the current interaction mode.
type Tool int

const (
	ToolSelect Tool = iota
	ToolConnect
)

// String returns the string representation of Tool.
func (t Tool) String() string {
	if t == ToolConnect {
		return "CONNECT"
	}
	return "SELECT"
}

// DiagramTypes is the cycle order of the diagram type selector.
var DiagramTypes = []graphmodel.DiagramType{
	graphmodel.DiagramFlowchart,
	graphmodel.DiagramMindMap,
	graphmodel.DiagramOrgChart,
}

// Defaults for Options.
const (
	DefaultNoticeTTL       = 4 * time.Second
	DefaultSaveTimeout     = 10 * time.Second
	DefaultGenerateTimeout = 90 * time.Second
	DoubleClickInterval    = 400 * time.Millisecond
	AnimationInterval      = 120 * time.Millisecond
)

// Options configures New.
type Options struct {
	Controller      *editor.Controller
	Diagram         graphmodel.DiagramType
	NoticeTTL       time.Duration
	SaveTimeout     time.Duration
	GenerateTimeout time.Duration
	// LoadOnStart loads the controller's page from its store in Init.
	LoadOnStart bool
	Logger      *slog.Logger
	Now         func() time.Time
}

// Model is the application state. The controller is shared by pointer;
// everything else is plain value state owned by the event loop.
type Model struct {
	Width, Height  int
	MouseX, MouseY int

	ctl      *editor.Controller
	gestures *viewport.Gestures
	tool     Tool
	diagram  graphmodel.DiagramType

	// Drag state
	dragging bool
	dragID   string
	dragOff  geom.Point

	// Rubber band, in canvas cells
	banding  bool
	bandFrom image.Point
	bandTo   image.Point
	bandAdd  bool

	connectFrom string

	lastClickID string
	lastClickAt time.Time

	menuCursor int

	prompt       promptKind
	promptTarget string
	input        textinput.Model

	frame        int
	settleQueued bool
	animQueued   bool
	noticeQueued bool

	noticeTTL       time.Duration
	saveTimeout     time.Duration
	generateTimeout time.Duration
	loadOnStart     bool
	logger          *slog.Logger
	now             func() time.Time
}

// New creates the model. A nil controller gets a default one backed by
// the in-memory store.
func New(opts Options) Model {
	ctl := opts.Controller
	if ctl == nil {
		ctl = editor.New(editor.Options{Logger: opts.Logger})
	}
	m := Model{
		ctl:             ctl,
		gestures:        viewport.NewGestures(ctl.Viewport(), ctl.Screen()),
		diagram:         opts.Diagram,
		noticeTTL:       opts.NoticeTTL,
		saveTimeout:     opts.SaveTimeout,
		generateTimeout: opts.GenerateTimeout,
		loadOnStart:     opts.LoadOnStart,
		logger:          opts.Logger,
		now:             opts.Now,
	}
	if !m.diagram.Valid() {
		m.diagram = graphmodel.DiagramFlowchart
	}
	if m.noticeTTL <= 0 {
		m.noticeTTL = DefaultNoticeTTL
	}
	if m.saveTimeout <= 0 {
		m.saveTimeout = DefaultSaveTimeout
	}
	if m.generateTimeout <= 0 {
		m.generateTimeout = DefaultGenerateTimeout
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Controller returns the editor controller behind the model.
func (m Model) Controller() *editor.Controller { return m.ctl }

// Tool returns the active tool.
func (m Model) Tool() Tool { return m.tool }

// Diagram returns the selected diagram type.
func (m Model) Diagram() graphmodel.DiagramType { return m.diagram }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.loadOnStart {
		cmds = append(cmds, loadCmd(m.ctl.BeginLoad(), m.saveTimeout))
	}
	if m.ctl.RecomputePending() {
		cmds = append(cmds, settleTick(m.ctl.SettleDelay()))
	}
	return tea.Batch(cmds...)
}

// resize recomputes the canvas size after a terminal resize.
func (m *Model) resize() {
	canvas := m.layout().Get(regionCanvas).Rect
	screen := geom.Sz(float64(canvas.Dx()*CellW), float64(canvas.Dy()*CellH))
	m.ctl.Resize(screen)
	m.gestures.Screen = screen
}

// nextDiagram cycles the diagram type selector.
func (m *Model) nextDiagram() {
	for i, t := range DiagramTypes {
		if t == m.diagram {
			m.diagram = DiagramTypes[(i+1)%len(DiagramTypes)]
			return
		}
	}
	m.diagram = DiagramTypes[0]
}

func (m *Model) cancelInteraction() {
	m.dragging = false
	m.banding = false
	m.connectFrom = ""
	m.gestures.PointerUp()
}
