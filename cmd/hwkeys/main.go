// Package main is the entry point for hwkeys, a hardware key decoding tool.
//
// In a terminal, hwkeys shows each key press and the event it decodes to.
// With stdin redirected, it reads one signal per line and prints one
// decoded event per line.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/dshills/hwkeys/internal/app"
	"github.com/dshills/hwkeys/internal/config"
	"github.com/dshills/hwkeys/internal/input/hardware"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	DeviceID   int
	Format     string
	LogLevel   string
	LogFile    string
	Watch      bool

	set map[string]bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	applyFlags(cfg, opts)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	deadKeys, err := cfg.DeadKeyTable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	format, err := app.NewFormatter(cfg.Output.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	logOut, closeLog, err := openLog(opts.LogFile, interactive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open log file: %v\n", err)
		return 1
	}
	defer closeLog()

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Log.Level),
		Output: logOut,
		Prefix: "hwkeys",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	translator := hardware.NewTcellTranslator(deadKeys)
	decoder := hardware.NewKeyboardDecoder(cfg.Keyboard.DeviceID)
	logger.Info("decoding device %d (%d dead keys)", decoder.DeviceID(), len(deadKeys))

	if opts.Watch && opts.ConfigPath != "" {
		cfgLogger := logger.WithComponent("config")
		watcher, err := config.NewWatcher(opts.ConfigPath, reloadHandler(translator, logger, cfgLogger),
			config.WithErrorHandler(func(err error) {
				cfgLogger.Warn("reload failed: %v", err)
			}))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to watch config: %v\n", err)
			return 1
		}
		defer watcher.Close()
	}

	var source app.Source
	var sink app.Sink
	release := func() {}
	if interactive {
		screen, err := tcell.NewScreen()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
			return 1
		}
		if err := screen.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to initialize terminal: %v\n", err)
			return 1
		}
		release = screen.Fini

		source = app.NewTerminalSource(screen, translator)
		sink = app.NewScreenSink(screen, format, fmt.Sprintf("hwkeys %s: device %d, press keys, Ctrl+C to quit", version, decoder.DeviceID()))
	} else {
		source = app.NewScriptSource(os.Stdin)
		sink = app.NewWriterSink(os.Stdout, format)
	}

	session := app.NewSession(decoder, source, sink, logger)
	err = session.Run(ctx)
	release()
	if err != nil {
		logger.Error("session failed: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	return 0
}

// reloadHandler applies a reloaded configuration. Only the dead-key table
// and the log level change; the device id is fixed for the process.
func reloadHandler(translator *hardware.TcellTranslator, logger, cfgLogger *app.Logger) config.ReloadHandler {
	return func(next *config.Config) {
		table, err := next.DeadKeyTable()
		if err != nil {
			cfgLogger.Warn("ignoring reloaded config: %v", err)
			return
		}
		translator.SetDeadKeys(table)
		logger.SetLevel(app.ParseLogLevel(next.Log.Level))
		cfgLogger.Info("reloaded %d dead keys, log level %s", len(table), next.Log.Level)
	}
}

// openLog picks the log destination. Interactive sessions own the terminal,
// so without a log file their logs are discarded.
func openLog(path string, interactive bool) (io.Writer, func(), error) {
	if path == "" {
		if interactive {
			return io.Discard, func() {}, nil
		}
		return os.Stderr, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

// applyFlags overrides configuration values with flags given explicitly.
func applyFlags(cfg *config.Config, opts options) {
	if opts.set["device"] {
		cfg.Keyboard.DeviceID = opts.DeviceID
	}
	if opts.set["format"] || opts.set["f"] {
		cfg.Output.Format = opts.Format
	}
	if opts.set["log-level"] {
		cfg.Log.Level = opts.LogLevel
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.IntVar(&opts.DeviceID, "device", 0, "Input device id")
	flag.StringVar(&opts.Format, "format", "text", "Output format (text, json)")
	flag.StringVar(&opts.Format, "f", "text", "Output format (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.LogFile, "log-file", "", "Write logs to this file")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload dead keys when the config file changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "hwkeys - hardware keyboard event decoder\n\n")
		fmt.Fprintf(os.Stderr, "Usage: hwkeys [options] [< signals.txt]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  hwkeys                                 Decode keys typed in this terminal\n")
		fmt.Fprintf(os.Stderr, "  hwkeys -c hwkeys.toml -watch           Use and live-reload a config file\n")
		fmt.Fprintf(os.Stderr, "  echo 'key=Enter mods=Shift' | hwkeys   Decode a scripted signal\n")
		fmt.Fprintf(os.Stderr, "  hwkeys -f json < signals.txt           Decode a script as JSON lines\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("hwkeys %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	opts.set = map[string]bool{}
	flag.Visit(func(f *flag.Flag) {
		opts.set[f.Name] = true
	})

	return opts
}
