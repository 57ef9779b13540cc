package editor

import (
	"context"
	"errors"
	"strings"

	"github.com/softpython2884/StudyVerse-sub000/internal/aigen"
	"github.com/softpython2884/StudyVerse-sub000/internal/pagestore"
	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

// ── Save ──

// SaveTicket is an outstanding save. Run may be called off the event loop;
// it only touches the snapshot taken by BeginSave.
type SaveTicket struct {
	Session uint64
	PageID  string
	graph   *graphmodel.Graph
	store   PageStore
}

// SaveOutcome is the result of running a SaveTicket.
type SaveOutcome struct {
	Session uint64
	Result  pagestore.Result
}

// Run performs the save.
func (t SaveTicket) Run(ctx context.Context) SaveOutcome {
	return SaveOutcome{Session: t.Session, Result: t.store.Save(ctx, t.PageID, t.graph)}
}

// BeginSave snapshots the graph for saving. It fails with a busy error
// while another save is outstanding or the page is still loading, since
// the graph is then only a placeholder.
func (c *Controller) BeginSave() (SaveTicket, error) {
	if c.saving || c.loading {
		return SaveTicket{}, diagerr.Busy("editor.Save")
	}
	c.saving = true
	return SaveTicket{
		Session: c.session,
		PageID:  c.pageID,
		graph:   c.graph.Clone(),
		store:   c.store,
	}, nil
}

// FinishSave applies a save outcome. Outcomes from an earlier session are
// dropped with ErrStaleSession.
func (c *Controller) FinishSave(o SaveOutcome) error {
	if o.Session != c.session {
		c.logger.Debug("discarding stale save", "session", o.Session, "current", c.session)
		return diagerr.ErrStaleSession
	}
	c.saving = false
	if !o.Result.Success {
		c.notify(NoticeError, o.Result.Message)
		if o.Result.Err != nil {
			return o.Result.Err
		}
		return diagerr.Persistence("editor.Save", errors.New(o.Result.Message))
	}
	c.notify(NoticeSuccess, o.Result.Message)
	return nil
}

// Save runs a whole save on the calling goroutine.
func (c *Controller) Save(ctx context.Context) error {
	t, err := c.BeginSave()
	if err != nil {
		c.notify(NoticeInfo, c.busyText("A save is already in progress"))
		return err
	}
	return c.FinishSave(t.Run(ctx))
}

// ── Generate ──

// GenerateTicket is an outstanding AI generation.
type GenerateTicket struct {
	Session     uint64
	Kind        graphmodel.DiagramType
	Instruction string
	existing    *graphmodel.Graph
	gen         Generator
}

// GenerateOutcome is the result of running a GenerateTicket.
type GenerateOutcome struct {
	Session uint64
	Result  aigen.Result
	Err     error
}

// Run performs the generation.
func (t GenerateTicket) Run(ctx context.Context) GenerateOutcome {
	res, err := t.gen.Generate(ctx, t.Kind, t.Instruction, t.existing)
	return GenerateOutcome{Session: t.Session, Result: res, Err: err}
}

// BeginGenerate validates the prompt and snapshots the current diagram as
// context. It fails while another generation is outstanding.
func (c *Controller) BeginGenerate(prompt string, kind graphmodel.DiagramType) (GenerateTicket, error) {
	const op = "editor.Generate"
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return GenerateTicket{}, diagerr.Validation(op, diagerr.ErrEmptyPrompt)
	}
	if c.gen == nil {
		return GenerateTicket{}, diagerr.External(op, ErrNotConfigured)
	}
	if c.generating || c.loading {
		return GenerateTicket{}, diagerr.Busy(op)
	}
	c.generating = true
	var existing *graphmodel.Graph
	if c.graph.Len() > 0 {
		existing = c.graph.Clone()
	}
	return GenerateTicket{
		Session:     c.session,
		Kind:        kind,
		Instruction: prompt,
		existing:    existing,
		gen:         c.gen,
	}, nil
}

// FinishGenerate applies a generation outcome. On success the whole graph
// is replaced; on failure it is left untouched.
func (c *Controller) FinishGenerate(o GenerateOutcome) error {
	if o.Session != c.session {
		c.logger.Debug("discarding stale generation", "session", o.Session, "current", c.session)
		return diagerr.ErrStaleSession
	}
	c.generating = false
	if o.Err != nil {
		c.notify(NoticeError, diagerr.UserMessage(o.Err))
		return o.Err
	}
	c.replaceGraph(o.Result.Graph)
	msg := o.Result.Message
	if msg == "" {
		msg = "Diagram generated"
	}
	c.notify(NoticeSuccess, msg)
	return nil
}

// Generate runs a whole generation on the calling goroutine.
func (c *Controller) Generate(ctx context.Context, prompt string, kind graphmodel.DiagramType) error {
	t, err := c.BeginGenerate(prompt, kind)
	if err != nil {
		c.notify(NoticeError, diagerr.UserMessage(err))
		return err
	}
	return c.FinishGenerate(t.Run(ctx))
}

// ── Navigation ──

// Navigate switches to pageID with an empty graph. Outstanding saves and
// generations belong to the old session and will be discarded.
func (c *Controller) Navigate(pageID string) {
	c.session++
	c.saving = false
	c.generating = false
	c.loading = false
	c.pageID = pageID
	c.notice = nil
	c.replaceGraph(nil)
	c.view.Reset()
}

// Open navigates to pageID and installs g as its graph.
func (c *Controller) Open(pageID string, g *graphmodel.Graph) {
	c.Navigate(pageID)
	c.replaceGraph(g)
}

// busyText explains a busy error to the user.
func (c *Controller) busyText(otherwise string) string {
	if c.loading {
		return "The page is still loading"
	}
	return otherwise
}

// LoadTicket is an outstanding page load.
type LoadTicket struct {
	Session uint64
	PageID  string
	store   PageStore
}

// LoadOutcome is the result of running a LoadTicket.
type LoadOutcome struct {
	Session uint64
	PageID  string
	Graph   *graphmodel.Graph
	Err     error
}

// Run reads the page. It does not touch the controller.
func (t LoadTicket) Run(ctx context.Context) LoadOutcome {
	g, err := t.store.Load(ctx, t.PageID)
	return LoadOutcome{Session: t.Session, PageID: t.PageID, Graph: g, Err: err}
}

// BeginLoad starts loading the current page. Until FinishLoad, saves and
// generations are refused so the placeholder graph never reaches the store.
func (c *Controller) BeginLoad() LoadTicket {
	c.loading = true
	return LoadTicket{Session: c.session, PageID: c.pageID, store: c.store}
}

// FinishLoad installs a loaded page. Outcomes from an earlier session are
// dropped with ErrStaleSession; on failure the current graph is kept.
func (c *Controller) FinishLoad(o LoadOutcome) error {
	if o.Session != c.session {
		c.logger.Debug("discarding stale load", "page", o.PageID, "session", o.Session, "current", c.session)
		return diagerr.ErrStaleSession
	}
	c.loading = false
	if o.Err != nil {
		c.notify(NoticeError, diagerr.UserMessage(o.Err))
		return o.Err
	}
	c.Open(o.PageID, o.Graph)
	return nil
}

// Load reads the current page on the calling goroutine. A missing page
// opens empty.
func (c *Controller) Load(ctx context.Context) error {
	return c.FinishLoad(c.BeginLoad().Run(ctx))
}
