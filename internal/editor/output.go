package editor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/softpython2884/StudyVerse-sub000/internal/docjson"
	"github.com/softpython2884/StudyVerse-sub000/internal/export"
	"github.com/softpython2884/StudyVerse-sub000/pkg/diagerr"
)

// pngOptions renders what is currently on screen at the current zoom
// times the export scale.
func (c *Controller) pngOptions() export.PNGOptions {
	opts := export.PNGOptions{Scale: c.view.Zoom * c.scale}
	if c.screen.W > 0 && c.screen.H > 0 {
		opts.Region = c.view.Visible(c.screen)
	}
	return opts
}

// ExportPNG writes the visible canvas to path. An empty path picks a
// timestamped file in the export directory. It returns the path written.
func (c *Controller) ExportPNG(path string) (string, error) {
	if path == "" {
		name := fmt.Sprintf("diagram-%s-%s.png", c.pageID, c.now().Format("20060102-150405"))
		path = filepath.Join(c.exportDir, name)
	}
	if err := export.SavePNG(path, c.graph, c.Paths(), c.pngOptions()); err != nil {
		c.notify(NoticeError, "Export failed: "+err.Error())
		return "", err
	}
	c.logger.Info("exported png", "page", c.pageID, "path", path)
	c.notify(NoticeSuccess, "Exported "+path)
	return path, nil
}

// ExportPDF renders the visible canvas and hands it to the print command.
func (c *Controller) ExportPDF(ctx context.Context) error {
	if c.printer == nil {
		err := diagerr.External("editor.ExportPDF", fmt.Errorf("printer %w", ErrNotConfigured))
		c.notify(NoticeError, "Print failed: no print command")
		return err
	}
	data, err := export.EncodePNG(c.graph, c.Paths(), c.pngOptions())
	if err != nil {
		c.notify(NoticeError, "Print failed: "+err.Error())
		return err
	}
	if err := c.printer.Print(ctx, data); err != nil {
		c.notify(NoticeError, "Print failed: "+err.Error())
		return err
	}
	c.notify(NoticeSuccess, "Sent to printer")
	return nil
}

// CopyJSON puts the document form of the graph on the clipboard.
func (c *Controller) CopyJSON() error {
	data, err := docjson.Encode(c.graph)
	if err != nil {
		c.notify(NoticeError, err.Error())
		return err
	}
	if err := c.clip.WriteAll(string(data)); err != nil {
		c.notify(NoticeError, "Copy failed: "+err.Error())
		return err
	}
	c.notify(NoticeSuccess, "Copied diagram JSON")
	return nil
}
