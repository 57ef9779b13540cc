package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Printer hands a rendered image to the platform print command. The print
// dialog itself belongs to the platform; we only feed it the image.
type Printer struct {
	Command string
	Args    []string
}

// ErrNoPrinter means no print command could be found.
var ErrNoPrinter = errors.New("no print command available")

// DefaultPrinter picks lp or lpr, whichever is installed.
func DefaultPrinter() (Printer, error) {
	for _, cmd := range []string{"lp", "lpr"} {
		if path, err := exec.LookPath(cmd); err == nil {
			return Printer{Command: path}, nil
		}
	}
	return Printer{}, ErrNoPrinter
}

// Print pipes png to the print command.
func (p Printer) Print(ctx context.Context, png []byte) error {
	if p.Command == "" {
		return ErrNoPrinter
	}
	cmd := exec.CommandContext(ctx, p.Command, p.Args...)
	cmd.Stdin = bytes.NewReader(png)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return fmt.Errorf("%s: %w: %s", p.Command, err, msg)
		}
		return fmt.Errorf("%s: %w", p.Command, err)
	}
	return nil
}
