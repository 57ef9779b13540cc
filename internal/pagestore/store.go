// Package pagestore persists diagram documents as page content.
//
// A Store only moves bytes; Adapter sits between the editor and a Store,
// encoding the graph and turning failures into the save result the user
// sees. Saves are never retried automatically.
package pagestore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
)

// Page is a stored document.
type Page struct {
	ID        string          `json:"id"`
	Content   json.RawMessage `json:"content"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Store is the persistence contract. Load returns nil, nil when the page
// does not exist.
type Store interface {
	Save(ctx context.Context, pageID string, content []byte) error
	Load(ctx context.Context, pageID string) (*Page, error)
}

func checkPageID(op, pageID string) error {
	if pageID == "" {
		return diagerr.Persistence(op, fmt.Errorf("page %w", diagerr.ErrEmptyID))
	}
	return nil
}
