// Package pager decides whether output fits the terminal and hands long output to an external pager.
package pager

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"

	"github.com/rbhz/jisho-cli/app/executil"
)

// DefaultCommand is used when no pager is configured
const DefaultCommand = "less"

// Mode tells how output should be shown
type Mode int

const (
	// Direct writes output straight to stdout
	Direct Mode = iota
	// Paged pipes output through the pager
	Paged
)

func (m Mode) String() string {
	if m == Paged {
		return "paged"
	}
	return "direct"
}

// Decide chooses Paged when totalLines would not fit a terminal of the given height.
// rows <= 0 means stdout is not a terminal or its size is unknown.
func Decide(totalLines, rows int) Mode {
	if rows <= 0 {
		return Direct
	}
	if totalLines >= rows-1 {
		return Paged
	}
	return Direct
}

var (
	isTerminal  = term.IsTerminal
	termGetSize = term.GetSize
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isTerminal(int(f.Fd()))
}

// TerminalRows returns the height of the terminal attached to f, or 0 if f is not a terminal
func TerminalRows(f *os.File) int {
	fd := int(f.Fd())
	if !isTerminal(fd) {
		return 0
	}
	_, height, err := termGetSize(fd)
	if err != nil || height < 0 {
		return 0
	}
	return height
}

// Pager runs an external pager program
type Pager struct {
	cmd  string
	args []string
	exec executil.Executor
	out  io.Writer
	err  io.Writer
}

// New creates Pager from a command line such as "less -R".
// An empty command falls back to DefaultCommand.
// less always gets -R so ANSI colors pass through.
func New(command string, exec executil.Executor, out, errOut io.Writer) *Pager {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		fields = []string{DefaultCommand}
	}
	p := &Pager{cmd: fields[0], args: fields[1:], exec: exec, out: out, err: errOut}
	if filepath.Base(p.cmd) == "less" && !hasRawControlFlag(p.args) {
		p.args = append(p.args, "-R")
	}
	return p
}

func hasRawControlFlag(args []string) bool {
	for _, a := range args {
		if a == "-R" || a == "-r" || a == "--RAW-CONTROL-CHARS" || a == "--raw-control-chars" {
			return true
		}
	}
	return false
}

// Show pipes text to the pager and waits for it to exit.
// If the pager can't be started text is written directly to the output.
func (p *Pager) Show(ctx context.Context, text string) error {
	err := p.exec.RunStream(ctx, strings.NewReader(text), p.out, p.err, p.cmd, p.args...)
	if err == nil {
		return nil
	}
	var startErr *executil.StartError
	if errors.As(err, &startErr) {
		log.Debug().Err(err).Str("pager", p.cmd).Msg("pager unavailable, printing directly")
		if _, werr := io.WriteString(p.out, text); werr != nil {
			return fmt.Errorf("write output: %w", werr)
		}
		return nil
	}
	log.Debug().Err(err).Str("pager", p.cmd).Msg("pager exited with error")
	return nil
}
