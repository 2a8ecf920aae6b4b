package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/rs/zerolog/log"

	"github.com/rbhz/jisho-cli/app/clients/jisho"
	"github.com/rbhz/jisho-cli/app/executil"
	"github.com/rbhz/jisho-cli/app/kanji"
	"github.com/rbhz/jisho-cli/app/logutils"
	"github.com/rbhz/jisho-cli/app/pager"
	"github.com/rbhz/jisho-cli/app/render"
	"github.com/rbhz/jisho-cli/app/session"
)

// Populated at build-time via -ldflags.
var version = "dev"

const appName = "jisho-cli"

type Opts struct {
	Limit       int    `short:"n" long:"limit" description:"Maximum number of entries to show (0 = 4)"`
	Interactive bool   `short:"i" long:"interactive" description:"Keep prompting for new queries"`
	Kanji       bool   `short:"k" long:"kanji" description:"Open a kanji page in the browser for every character of the query"`
	Version     bool   `short:"V" long:"version" description:"Print version and exit"`
	NoColor     bool   `long:"no-color" description:"Disable colors (also NO_COLOR)"`
	Pager       string `long:"pager" env:"PAGER" default:"less" description:"Pager for output taller than the terminal"`
	API         string `long:"api" env:"JISHO_API_URL" default:"https://jisho.org/api/v1" description:"Jisho API base URL"`
	LogLevel    string `long:"log-level" env:"JISHO_LOG_LEVEL" default:"warn" description:"Log level (debug, info, warn, error)"`
}

// environment holds process resources so run can be driven from tests
type environment struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	terminal bool
	rows     func() int
	getenv   func(string) string
	exec     executil.Executor
}

func build() string {
	v := version
	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
		}
	}
	return v
}

func main() {
	os.Exit(run(os.Args[1:], environment{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		terminal: pager.IsTerminal(os.Stdout),
		rows:     func() int { return pager.TerminalRows(os.Stdout) },
		getenv:   os.Getenv,
		exec:     &executil.RealExecutor{},
	}))
}

func run(args []string, env environment) int {
	var opts Opts
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = appName
	parser.Usage = "[OPTIONS] [keywords...]"
	keywords, err := parser.ParseArgs(args)
	if err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(env.stdout, err)
			return 0
		}
		fmt.Fprintln(env.stderr, err)
		return 2
	}

	logger, err := logutils.New(opts.LogLevel, env.stderr)
	if err != nil {
		fmt.Fprintf(env.stderr, "invalid log level %q: %v\n", opts.LogLevel, err)
		return 2
	}
	log.Logger = logger

	if opts.Version {
		fmt.Fprintf(env.stdout, "%s %s\n", appName, build())
		return 0
	}

	query := strings.TrimSpace(strings.Join(keywords, " "))
	if query == "" && !opts.Interactive {
		fmt.Fprintf(env.stdout, "Usage: %s %s\n", parser.Name, parser.Usage)
		return 0
	}

	ctx := context.Background()
	color := env.terminal && !opts.NoColor && env.getenv("NO_COLOR") == ""
	sess := session.New(
		jisho.NewClient(ctx, opts.API, appName+"/"+build()),
		render.New(env.stdout, color),
		pager.New(opts.Pager, env.exec, env.stdout, env.stderr),
		kanji.NewOpener(env.exec),
		session.Config{
			Limit: opts.Limit,
			Kanji: opts.Kanji,
			Rows:  env.rows,
			Out:   env.stdout,
		},
	)

	if !opts.Interactive {
		if err := sess.Run(ctx, query); err != nil {
			log.Error().Err(err).Str("query", query).Msg("lookup failed")
			return 1
		}
		return 0
	}

	if query != "" {
		if err := sess.Run(ctx, query); err != nil {
			log.Error().Err(err).Str("query", query).Msg("lookup failed")
		}
	}
	if err := sess.Interactive(ctx, env.stdin); err != nil {
		log.Error().Err(err).Msg("failed to read query")
		return 1
	}
	return 0
}
