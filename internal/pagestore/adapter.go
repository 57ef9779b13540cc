package pagestore

import (
	"context"
	"log/slog"

	"github.com/softpython2884/StudyVerse-sub000/internal/docjson"
	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
	"github.com/softpython2884/StudyVerse-sub000/pkg/graphmodel"
)

// Result is what a save reports back to the user.
type Result struct {
	Success bool
	Message string
	Err     error
}

// Adapter saves and loads graphs through a Store.
type Adapter struct {
	store  Store
	logger *slog.Logger
}

// NewAdapter creates an adapter over store.
func NewAdapter(store Store, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{store: store, logger: logger}
}

// Save encodes g and writes it as the content of pageID. The graph is
// only read; on failure the caller keeps its state and may retry.
func (a *Adapter) Save(ctx context.Context, pageID string, g *graphmodel.Graph) Result {
	data, err := docjson.Encode(g)
	if err != nil {
		err = diagerr.Persistence("pagestore.Save", err)
		return a.fail(pageID, err)
	}
	if err := a.store.Save(ctx, pageID, data); err != nil {
		if _, classified := diagerr.KindOf(err); !classified {
			err = diagerr.Persistence("pagestore.Save", err)
		}
		return a.fail(pageID, err)
	}
	a.logger.Info("page saved", "page", pageID, "nodes", g.Len(), "bytes", len(data))
	return Result{Success: true, Message: "Diagram saved"}
}

func (a *Adapter) fail(pageID string, err error) Result {
	a.logger.Warn("page save failed", "page", pageID, "error", err)
	return Result{Message: diagerr.UserMessage(err), Err: err}
}

// Load reads pageID and decodes it. It returns nil, nil when the page does
// not exist, so the caller can start from an empty diagram.
func (a *Adapter) Load(ctx context.Context, pageID string) (*graphmodel.Graph, error) {
	page, err := a.store.Load(ctx, pageID)
	if err != nil {
		if _, classified := diagerr.KindOf(err); !classified {
			err = diagerr.Persistence("pagestore.Load", err)
		}
		return nil, err
	}
	if page == nil {
		return nil, nil
	}
	if len(page.Content) == 0 {
		return graphmodel.New(), nil
	}
	g, err := docjson.Decode(page.Content)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("page loaded", "page", pageID, "nodes", g.Len())
	return g, nil
}
