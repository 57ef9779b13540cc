package export

import (
	"errors"

	"github.com/atotto/clipboard"
)

var errUnsupportedClipboard = errors.New("clipboard not supported on this system")

// Clipboard receives text copies of the document.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errUnsupportedClipboard
	}
	return clipboard.WriteAll(text)
}
