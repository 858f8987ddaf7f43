// Package main is the entry point for docproxy.
//
// docproxy edits text fields through document proxies, either from a Lua
// script or interactively in the terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/dshills/docproxy/internal/config"
	"github.com/dshills/docproxy/internal/config/watcher"
	"github.com/dshills/docproxy/internal/document"
	"github.com/dshills/docproxy/internal/host"
	"github.com/dshills/docproxy/internal/logging"
	"github.com/dshills/docproxy/internal/plugin/api"
	"github.com/dshills/docproxy/internal/plugin/lua"
	"github.com/dshills/docproxy/internal/registry"
	"github.com/dshills/docproxy/internal/textinput"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	ConfigPath  string
	Text        string
	Script      string
	Interactive bool
	Watch       bool
	LogLevel    string
	ShowVersion bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.ShowVersion {
		fmt.Fprintf(stdout, "docproxy %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	cfg := config.Default()
	if opts.ConfigPath != "" {
		cfg, err = config.Load(opts.ConfigPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}

	logCfg := logging.FromEnv(cfg.Logging)
	if opts.LogLevel != "" {
		logCfg.Level = opts.LogLevel
	}
	log := logging.New(logCfg, stderr)

	reg := registry.New(registry.WithLogger(log))

	switch {
	case opts.Interactive:
		err = runInteractive(ctx, opts, cfg, reg, log)
	case opts.Script != "":
		err = runScript(ctx, opts, cfg, reg, log, stdout)
	default:
		field := document.New(document.WithText(opts.Text))
		proxy := reg.Bind(reg.Register(field), cfg.Profile.Option())
		printResult(stdout, field.Content(), proxy.Traits)
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("docproxy", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.Text, "text", "", "Initial text of the document")
	fs.StringVar(&opts.Script, "script", "", "Lua script to run against the document")
	fs.StringVar(&opts.Script, "s", "", "Lua script to run (shorthand)")
	fs.BoolVar(&opts.Interactive, "interactive", false, "Edit fields in the terminal")
	fs.BoolVar(&opts.Interactive, "i", false, "Edit fields in the terminal (shorthand)")
	fs.BoolVar(&opts.Watch, "watch", false, "Reload the configuration file when it changes")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level ("+strings.Join(logging.Levels, ", ")+")")
	fs.BoolVar(&opts.ShowVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "docproxy - edit text fields through document proxies\n\n")
		fmt.Fprintf(stderr, "Usage: docproxy [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  docproxy -text hello -s edit.lua   Run a script\n")
		fmt.Fprintf(stderr, "  docproxy -i -c docproxy.toml -watch Edit with a live profile\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be one of %s)\n", opts.LogLevel, strings.Join(logging.Levels, ", "))
		return opts, errors.New("invalid log level")
	}
	if opts.Watch && opts.ConfigPath == "" {
		fmt.Fprintf(stderr, "Error: -watch requires -config\n")
		return opts, errors.New("watch without config")
	}

	return opts, nil
}

// runScript runs the Lua script against a proxy bound to a field seeded
// with the initial text, then prints the result.
func runScript(ctx context.Context, opts options, cfg config.Config, reg *registry.Registry, log zerolog.Logger, stdout io.Writer) error {
	field := document.New(document.WithText(opts.Text))
	proxy := reg.Bind(reg.Register(field), cfg.Profile.Option())

	modules := api.NewRegistry()
	for _, mod := range []api.Module{api.NewDocModule(proxy), api.NewTextModule()} {
		if err := modules.Register(mod); err != nil {
			return err
		}
	}

	state, err := lua.NewState(lua.WithOutput(stdout), lua.WithLogger(log))
	if err != nil {
		return err
	}
	defer func() { _ = state.Close() }()

	if err := state.Inject(modules); err != nil {
		return err
	}
	if err := state.DoFile(ctx, opts.Script); err != nil {
		return fmt.Errorf("script %s: %w", opts.Script, err)
	}

	printResult(stdout, field.Content(), proxy.Traits)
	return nil
}

// runInteractive edits a small form in the terminal.
func runInteractive(ctx context.Context, opts options, cfg config.Config, reg *registry.Registry, log zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer screen.Fini()

	hostOpts := []host.Option{
		host.WithLogger(log),
		host.WithProfile(cfg.Profile),
		host.WithSubmit(func(id registry.ID, text string, rk textinput.ReturnKeyType) {
			log.Info().Str("field", id.String()).Str("return_key", rk.String()).Int("length", len(text)).Msg("submitted")
		}),
	}

	if opts.Watch {
		w, err := watcher.New(opts.ConfigPath, watcher.WithLogger(log))
		if err != nil {
			return fmt.Errorf("failed to watch config: %w", err)
		}
		defer func() { _ = w.Close() }()
		hostOpts = append(hostOpts, host.WithUpdates(w.Updates()))
	}

	h := host.New(screen, reg, hostOpts...)
	h.AddField("text", document.New(document.WithText(opts.Text)))
	h.AddField("search", document.New(document.WithTraits(textinput.Traits{
		KeyboardType:                  textinput.KeyboardTypeWebSearch,
		ReturnKeyType:                 textinput.ReturnKeySearch,
		EnablesReturnKeyAutomatically: true,
	})))
	h.AddField("pin", document.New(
		document.WithMaxLength(6),
		document.WithTraits(textinput.Traits{
			KeyboardType:    textinput.KeyboardTypeNumberPad,
			SecureTextEntry: true,
			ReturnKeyType:   textinput.ReturnKeyDone,
		}),
	))

	return h.Run(ctx)
}

// printResult writes the final text and traits.
func printResult(w io.Writer, text string, t textinput.Traits) {
	fmt.Fprintf(w, "text: %q\n", text)
	fmt.Fprintf(w, "autocapitalization: %s\n", t.Autocapitalization)
	fmt.Fprintf(w, "autocorrection: %s\n", t.Autocorrection)
	fmt.Fprintf(w, "spell_checking: %s\n", t.SpellChecking)
	fmt.Fprintf(w, "smart_dashes: %s\n", t.SmartDashes)
	fmt.Fprintf(w, "smart_insert_delete: %s\n", t.SmartInsertDelete)
	fmt.Fprintf(w, "smart_quotes: %s\n", t.SmartQuotes)
	fmt.Fprintf(w, "enables_return_key_automatically: %t\n", t.EnablesReturnKeyAutomatically)
	fmt.Fprintf(w, "secure_text_entry: %t\n", t.SecureTextEntry)
	fmt.Fprintf(w, "keyboard_appearance: %s\n", t.KeyboardAppearance)
	fmt.Fprintf(w, "keyboard_type: %s\n", t.KeyboardType)
	fmt.Fprintf(w, "return_key_type: %s\n", t.ReturnKeyType)
}
