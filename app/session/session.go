// Package session runs dictionary lookups and prints their results, once or in a loop.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/rbhz/jisho-cli/app/clients/jisho"
	"github.com/rbhz/jisho-cli/app/pager"
	"github.com/rbhz/jisho-cli/app/render"
)

// DefaultLimit is the number of entries considered when no limit is set
const DefaultLimit = 4

// Prompt is printed before reading a query in interactive mode
const Prompt = "=> "

// Searcher looks up entries for a query
type Searcher interface {
	Search(query string) (jisho.SearchResult, error)
}

// Pager shows long output
type Pager interface {
	Show(ctx context.Context, text string) error
}

// KanjiOpener opens kanji pages for every character of a query
type KanjiOpener interface {
	Open(ctx context.Context, query string) error
}

// Config holds session settings
type Config struct {
	// Limit caps the number of entries considered, 0 means DefaultLimit
	Limit int
	// Kanji makes Run open kanji pages instead of searching words
	Kanji bool
	// Rows returns the terminal height, 0 if output is not a terminal
	Rows func() int
	Out  io.Writer
}

// Session holds everything needed to run lookups
type Session struct {
	search   Searcher
	renderer *render.Renderer
	pager    Pager
	kanji    KanjiOpener
	cfg      Config
}

// New creates Session
func New(search Searcher, renderer *render.Renderer, p Pager, kanji KanjiOpener, cfg Config) *Session {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Rows == nil {
		cfg.Rows = func() int { return 0 }
	}
	return &Session{search: search, renderer: renderer, pager: p, kanji: kanji, cfg: cfg}
}

// Run handles a single query in the configured mode
func (s *Session) Run(ctx context.Context, query string) error {
	if s.cfg.Kanji {
		return errors.Wrap(s.kanji.Open(ctx, query), "open kanji pages")
	}
	return s.Lookup(ctx, query)
}

// Lookup searches query and prints up to Limit rendered entries.
// A response with an unexpected shape is logged and treated as no results.
func (s *Session) Lookup(ctx context.Context, query string) error {
	result, err := s.search.Search(query)
	if err != nil {
		if errors.Is(err, jisho.ErrInvalidResponse) {
			log.Error().Err(err).Str("query", query).Msg("invalid response")
			return nil
		}
		return errors.Wrap(err, "search")
	}
	if result.Skipped > 0 {
		log.Debug().Int("skipped", result.Skipped).Str("query", query).Msg("malformed entries dropped")
	}

	text, lines := s.renderEntries(query, result.Entries)
	if lines == 0 {
		text = s.renderer.Dim(fmt.Sprintf("No results for %q", query)) + "\n"
		lines = 1
	}

	mode := pager.Decide(lines, s.cfg.Rows())
	log.Debug().Int("lines", lines).Stringer("mode", mode).Msg("output ready")
	if mode == pager.Paged {
		return s.pager.Show(ctx, text)
	}
	if _, err := io.WriteString(s.cfg.Out, text); err != nil {
		return errors.Wrap(err, "write output")
	}
	return nil
}

// renderEntries renders the first Limit entries, separated by blank lines.
// It returns the text and the number of lines it takes.
func (s *Session) renderEntries(query string, entries []jisho.Entry) (string, int) {
	var b strings.Builder
	lines, shown := 0, 0
	for i, e := range entries {
		if i >= s.cfg.Limit {
			break
		}
		block, ok := s.renderer.Render(query, e)
		if !ok {
			continue
		}
		if shown > 0 {
			b.WriteByte('\n')
			lines++
		}
		b.WriteString(block.Text)
		lines += block.Lines
		shown++
	}
	return b.String(), lines
}

// Interactive prompts for queries and runs them until in is exhausted.
// A failed lookup is logged and the loop goes on.
func (s *Session) Interactive(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		query, ok := s.readQuery(scanner)
		if !ok {
			return scanner.Err()
		}
		if err := s.Run(ctx, query); err != nil {
			log.Error().Err(err).Str("query", query).Msg("lookup failed")
		}
		if err := ctx.Err(); err != nil {
			return nil
		}
	}
}

// readQuery prompts once and blocks until a non-blank line is read
func (s *Session) readQuery(scanner *bufio.Scanner) (string, bool) {
	fmt.Fprint(s.cfg.Out, Prompt)
	for scanner.Scan() {
		if query := strings.TrimSpace(scanner.Text()); query != "" {
			return query, true
		}
	}
	fmt.Fprintln(s.cfg.Out)
	return "", false
}
