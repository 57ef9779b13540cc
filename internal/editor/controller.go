// Package editor is the interaction controller: it maps user gestures onto
// graph model mutations and transient UI state (selection, context menu,
// notices, busy flags).
//
// The controller is not safe for concurrent use. Hosts call it from their
// event loop; the only blocking work (loading, saving, generating) is split into a
// Begin step on the loop, a Run step that may execute elsewhere, and a
// Finish step back on the loop.
package editor

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/softpython2884/StudyVerse-sub000/internal/aigen"
	"github.com/softpython2884/StudyVerse-sub000/internal/export"
	"github.com/softpython2884/StudyVerse-sub000/internal/pagestore"
	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
	"github.com/softpython2884/StudyVerse-sub000/pkg/edgeroute"
	"github.com/softpython2884/StudyVerse-sub000/pkg/geom"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
	"github.com/softpython2884/StudyVerse-sub000/pkg/viewport"
)

// PageStore saves and loads whole graphs. *pagestore.Adapter implements it.
type PageStore interface {
	Save(ctx context.Context, pageID string, g *graphmodel.Graph) pagestore.Result
	Load(ctx context.Context, pageID string) (*graphmodel.Graph, error)
}

// Generator produces diagrams. *aigen.Adapter implements it.
type Generator interface {
	Generate(ctx context.Context, kind graphmodel.DiagramType, instruction string, existing *graphmodel.Graph) (aigen.Result, error)
}

// Printer sends a rendered image to the platform print command.
type Printer interface {
	Print(ctx context.Context, png []byte) error
}

// Prompter asks the user for a line of text. ok is false when cancelled.
type Prompter interface {
	Prompt(title, initial string) (text string, ok bool)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(title, initial string) (string, bool)

// Prompt implements Prompter.
func (f PrompterFunc) Prompt(title, initial string) (string, bool) { return f(title, initial) }

var (
	// ErrNoTarget means a menu action ran without a matching open menu.
	ErrNoTarget = errors.New("no context menu target")
	// ErrSelfConnection rejects connecting a node to itself by dragging.
	ErrSelfConnection = errors.New("cannot connect a node to itself")
	// ErrNotConfigured means the collaborator for an action is missing.
	ErrNotConfigured = errors.New("not configured")
)

// Options configures New. Zero values are usable: a memory store, no
// generator, the system clipboard and no printer.
type Options struct {
	PageID    string
	Store     PageStore
	Generator Generator
	Clipboard export.Clipboard
	Printer   Printer
	ExportDir string
	// ExportScale multiplies the zoom when rendering PNGs. Zero means 1.
	ExportScale float64
	Viewport    viewport.Config
	// Screen is the size of the canvas area in screen units.
	Screen geom.Size
	// MenuReserve is the room a context menu needs; menus opened closer
	// than this to the right or bottom edge are anchored to that edge.
	MenuReserve geom.Size
	Logger      *slog.Logger
	NewID       func() string
	Now         func() time.Time
}

// DefaultMenuReserve matches a typical context menu in pixels.
var DefaultMenuReserve = geom.Sz(200, 200)

// NoticeLevel classifies a notice.
type NoticeLevel int

const (
	NoticeInfo NoticeLevel = iota
	NoticeSuccess
	NoticeError
)

// String returns the string representation of NoticeLevel.
func (l NoticeLevel) String() string {
	switch l {
	case NoticeSuccess:
		return "success"
	case NoticeError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient message for the user.
type Notice struct {
	Level NoticeLevel
	Text  string
	At    time.Time
}

// Controller owns one diagram editing session.
type Controller struct {
	graph   *graphmodel.Graph
	view    *viewport.Viewport
	screen  geom.Size
	router  *edgeroute.Scheduler
	sel     Selection
	menu    *ContextMenu
	notice  *Notice
	pageID  string
	session uint64

	saving     bool
	generating bool
	loading    bool

	// added numbers new nodes; it starts at the page's node count.
	added int

	store     PageStore
	gen       Generator
	clip      export.Clipboard
	printer   Printer
	exportDir string
	scale     float64
	reserve   geom.Size
	logger    *slog.Logger
	newID     func() string
	now       func() time.Time
}

// New creates a controller with an empty graph.
func New(opts Options) *Controller {
	c := &Controller{
		graph:     graphmodel.New(),
		view:      viewport.New(opts.Viewport),
		screen:    opts.Screen,
		router:    edgeroute.NewScheduler(),
		sel:       NewSelection(),
		pageID:    opts.PageID,
		store:     opts.Store,
		gen:       opts.Generator,
		clip:      opts.Clipboard,
		printer:   opts.Printer,
		exportDir: opts.ExportDir,
		scale:     opts.ExportScale,
		reserve:   opts.MenuReserve,
		logger:    opts.Logger,
		newID:     opts.NewID,
		now:       opts.Now,
	}
	if c.pageID == "" {
		c.pageID = "default"
	}
	if c.store == nil {
		c.store = pagestore.NewAdapter(pagestore.NewMemory(), opts.Logger)
	}
	if c.clip == nil {
		c.clip = export.SystemClipboard{}
	}
	if c.exportDir == "" {
		c.exportDir = "."
	}
	if c.scale <= 0 {
		c.scale = 1
	}
	if c.reserve.IsZero() {
		c.reserve = DefaultMenuReserve
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c
}

// ── Accessors ──

// Graph returns the live graph. Callers must not mutate it directly.
func (c *Controller) Graph() *graphmodel.Graph { return c.graph }

// Viewport returns the live viewport.
func (c *Controller) Viewport() *viewport.Viewport { return c.view }

// Screen returns the canvas size in screen units.
func (c *Controller) Screen() geom.Size { return c.screen }

// Resize records a new canvas size.
func (c *Controller) Resize(s geom.Size) { c.screen = s }

// PageID returns the page being edited.
func (c *Controller) PageID() string { return c.pageID }

// Session returns the session generation; it changes on navigation.
func (c *Controller) Session() uint64 { return c.session }

// Selection returns the current selection.
func (c *Controller) Selection() *Selection { return &c.sel }

// Menu returns the open context menu, if any.
func (c *Controller) Menu() (ContextMenu, bool) {
	if c.menu == nil {
		return ContextMenu{}, false
	}
	return *c.menu, true
}

// Saving reports whether a save is outstanding.
func (c *Controller) Saving() bool { return c.saving }

// Generating reports whether a generation is outstanding.
func (c *Controller) Generating() bool { return c.generating }

// Loading reports whether a page load is outstanding.
func (c *Controller) Loading() bool { return c.loading }

// ── Notices ──

// Notice returns the current notice.
func (c *Controller) Notice() (Notice, bool) {
	if c.notice == nil {
		return Notice{}, false
	}
	return *c.notice, true
}

// ClearNotice drops the current notice.
func (c *Controller) ClearNotice() { c.notice = nil }

// ExpireNotice drops the notice if it is older than ttl.
func (c *Controller) ExpireNotice(ttl time.Duration) bool {
	if c.notice != nil && c.now().Sub(c.notice.At) >= ttl {
		c.notice = nil
		return true
	}
	return false
}

// Report shows err as an error notice, worded for the user.
func (c *Controller) Report(err error) {
	if err != nil {
		c.notify(NoticeError, diagerr.UserMessage(err))
	}
}

// Inform shows an informational notice.
func (c *Controller) Inform(text string) { c.notify(NoticeInfo, text) }

func (c *Controller) notify(level NoticeLevel, text string) {
	c.notice = &Notice{Level: level, Text: text, At: c.now()}
}

// ── Edge paths ──

// RequestRecompute marks routed edges stale.
func (c *Controller) RequestRecompute() { c.router.Request() }

// RecomputePending reports whether routed edges are stale.
func (c *Controller) RecomputePending() bool {
	return c.router.Stale(c.graph.Version())
}

// SettleDelay is how long hosts wait after geometry changes before
// measuring and routing.
func (c *Controller) SettleDelay() time.Duration { return c.router.Settle }

// Paths returns routed edges, recomputing them when stale.
func (c *Controller) Paths() []edgeroute.Path {
	if c.router.Stale(c.graph.Version()) {
		c.router.Recompute(c.graph, edgeroute.ArenaFromGraph(c.graph))
	}
	return c.router.Paths()
}

// LastPaths returns the paths from the last recompute without routing
// again, for renderers that redraw faster than the settle delay.
func (c *Controller) LastPaths() []edgeroute.Path { return c.router.Paths() }

// MeasureNode records the rendered size of a node.
func (c *Controller) MeasureNode(id string, size geom.Size) error {
	return c.graph.SetNodeSize(id, size)
}

// replaceGraph swaps in g and resets everything derived from the old one.
func (c *Controller) replaceGraph(g *graphmodel.Graph) {
	if g == nil {
		g = graphmodel.New()
	}
	c.graph = g
	c.added = 0
	for _, n := range g.Nodes() {
		if !n.IsGroup() {
			c.added++
		}
	}
	c.sel.Clear()
	c.menu = nil
	c.router = edgeroute.NewScheduler()
	c.router.Request()
}
