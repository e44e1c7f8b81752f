// Package cmd implements the CLI application to manage a collection of sets.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/bricks"
	"github.com/etnz/bricks/storage"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

const (
	EnvStore   = "SETS_STORE"
	EnvKey     = "SETS_KEY"
	EnvVerbose = "SETS_VERBOSE"
	EnvLogFile = "SETS_LOG_FILE"
	EnvRaw     = "SETS_RAW"
)

// DefaultStore is the storage used without -store nor SETS_STORE.
const DefaultStore = "sets.json"

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
//
// Flags have no default so that the environment, possibly loaded from a .env
// file after flags are declared, is read when the flag is used.

var storeFlag = flag.String("store", "", "Storage of the collection: a file path, file:<path>, sqlite:<path>, redis://host:port/db or mem: (env "+EnvStore+", default "+DefaultStore+")")
var keyFlag = flag.String("key", "", "Key of the collection in its storage (env "+EnvKey+", default "+storage.DefaultKey+")")
var verboseFlag = flag.Bool("v", false, "Verbose logging (env "+EnvVerbose+")")
var logFileFlag = flag.String("log-file", "", "Append JSON logs to this file instead of the console (env "+EnvLogFile+")")
var rawFlag = flag.Bool("raw", false, "Print markdown without terminal styling (env "+EnvRaw+")")

// StoreURL returns the storage of the collection.
func StoreURL() string { return pick(*storeFlag, os.Getenv(EnvStore), DefaultStore) }

// StoreKey returns the key of the collection in its storage.
func StoreKey() string { return pick(*keyFlag, os.Getenv(EnvKey), storage.DefaultKey) }

// Verbose reports whether debug logging is on.
func Verbose() bool { return *verboseFlag || envBool(EnvVerbose) }

func logFile() string { return pick(*logFileFlag, os.Getenv(EnvLogFile)) }

// pick returns the first non empty value.
func pick(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func envBool(name string) bool {
	b, _ := strconv.ParseBool(os.Getenv(name))
	return b
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.commands {
			c.Register(cmd, g.name)
		}
	}
}

var groups = []struct {
	name     string
	commands []subcommands.Command
}{
	{"sets", []subcommands.Command{&listCmd{}, &showCmd{}, &addCmd{}, &editCmd{}, &rmCmd{}}},
	{"files", []subcommands.Command{&importCmd{}, &exportCmd{}, &restoreCmd{}}},
	{"help", []subcommands.Command{&topicCmd{}, &AssistCmd{}}},
}

// Commands returns all the commands of the application.
func Commands() []subcommands.Command {
	var all []subcommands.Command
	for _, g := range groups {
		all = append(all, g.commands...)
	}
	return all
}

// IsCommand reports whether name is a command of the application, or one of
// the commands the commander brings (help, flags, commands).
func IsCommand(name string) bool {
	if slices.Contains([]string{"help", "flags", "commands"}, name) {
		return true
	}
	for _, c := range Commands() {
		if c.Name() == name {
			return true
		}
	}
	return false
}

// NewLogger returns the logger of the application: warnings and errors on the
// console, everything with -v. With -log-file logs are appended to the file
// as JSON lines.
func NewLogger() (zerolog.Logger, io.Closer) {
	level := zerolog.WarnLevel
	if Verbose() {
		level = zerolog.DebugLevel
	}
	var (
		w      io.Writer
		closer io.Closer = nopCloser{}
	)
	if path := logFile(); path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0664)
		if err == nil {
			w, closer = zerolog.SyncWriter(f), f
		} else {
			fmt.Fprintf(os.Stderr, "Warning: cannot open log file %q: %v\n", path, err)
		}
	}
	if w == nil {
		w = zerolog.ConsoleWriter{Out: os.Stderr, NoColor: !isatty.IsTerminal(os.Stderr.Fd())}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), closer
}

// Session is the collection opened for a command.
type Session struct {
	*bricks.Store
	Log    zerolog.Logger
	slot   storage.Slot
	logs   io.Closer
	source string
}

// OpenStore opens the storage of the application and loads the collection.
// The caller must Close the session.
func OpenStore(ctx context.Context) (*Session, error) {
	log, logs := NewLogger()
	url := StoreURL()
	slot, err := storage.Open(url, StoreKey())
	if err != nil {
		logs.Close()
		return nil, fmt.Errorf("could not open storage %q: %w", url, err)
	}
	s := &Session{
		Store:  bricks.NewStore(slot, bricks.WithLogger(log)),
		Log:    log,
		slot:   slot,
		logs:   logs,
		source: url,
	}
	s.Load(ctx)
	log.Debug().Str("store", url).Int("sets", s.Len()).Msg("collection loaded")
	return s, nil
}

// Close releases the storage.
func (s *Session) Close() {
	if err := s.slot.Close(); err != nil {
		s.Log.Warn().Err(err).Str("store", s.source).Msg("closing storage")
	}
	s.logs.Close()
}

// printMarkdown prints md on the standard output, styled for terminals.
func printMarkdown(md string) {
	if *rawFlag || envBool(EnvRaw) || !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
