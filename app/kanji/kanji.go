// Package kanji opens Jisho kanji pages in the default browser, one per character.
package kanji

import (
	"context"
	"fmt"
	"net/url"
	"runtime"
	"unicode"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/rbhz/jisho-cli/app/executil"
)

const searchURL = "https://jisho.org/search/"

// URL returns the kanji details page for a character
func URL(r rune) string {
	return searchURL + url.PathEscape(string(r)+" #kanji")
}

// Characters returns the characters of query to look up, skipping whitespace
func Characters(query string) []rune {
	chars := make([]rune, 0, len(query))
	for _, r := range query {
		if unicode.IsSpace(r) {
			continue
		}
		chars = append(chars, r)
	}
	return chars
}

// Opener opens URLs in the platform default browser
type Opener struct {
	exec executil.Executor
	goos string
}

// NewOpener creates Opener for the current platform
func NewOpener(exec executil.Executor) Opener {
	return Opener{exec: exec, goos: runtime.GOOS}
}

func (o Opener) command(u string) (string, []string, error) {
	switch o.goos {
	case "darwin":
		return "open", []string{u}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", u}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{u}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform %s", o.goos)
	}
}

// OpenURL opens a single URL and waits for the opener to exit
func (o Opener) OpenURL(ctx context.Context, u string) error {
	cmd, args, err := o.command(u)
	if err != nil {
		return err
	}
	if _, err := o.exec.Run(ctx, cmd, args...); err != nil {
		return fmt.Errorf("open %s: %w", u, err)
	}
	return nil
}

// Open opens a kanji page for every character of query.
// All pages are opened concurrently and every launch runs to completion even if others fail;
// failures are logged and the first one is returned.
func (o Opener) Open(ctx context.Context, query string) error {
	var g errgroup.Group
	for _, r := range Characters(query) {
		r := r
		g.Go(func() error {
			u := URL(r)
			if err := o.OpenURL(ctx, u); err != nil {
				log.Error().Err(err).Str("kanji", string(r)).Msg("failed to open browser")
				return err
			}
			log.Debug().Str("kanji", string(r)).Str("url", u).Msg("opened browser")
			return nil
		})
	}
	return g.Wait()
}
