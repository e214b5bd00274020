package sh

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/inktools/pkg/discovery"
	"github.com/robotalks/inktools/pkg/icon"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool

	Shell   *ishell.Shell
	Scan    *discovery.Config
	Convert *icon.Config

	// Last is the most recent scan.
	Last *discovery.Session
}

const (
	shellKey = "$shell"
	prompt   = "ink > "
)

var (
	evalOnly bool

	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&DevicesCmd,
		&ConvertCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// New creates a new shell.
func New(scan *discovery.Config, convert *icon.Config) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Scan:        scan,
		Convert:     convert,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(prompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// Discover runs a scan and prints devices to w as they are found.
func (s *Shell) Discover(ctx context.Context, w io.Writer, duration time.Duration) (*discovery.Session, error) {
	conf := *s.Scan
	if duration > 0 {
		conf.Duration = duration
	}
	session, err := conf.NewSession(ctx)
	if err != nil {
		return nil, err
	}
	defer session.Transport.Close()
	session.Observer = &discovery.Printer{W: w}
	s.Last = session
	return session, session.Run(ctx)
}

// interruptContext is canceled by Ctrl-C while a command runs.
func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

// shellWriter adapts ishell.Context to io.Writer.
type shellWriter struct {
	c *ishell.Context
}

func (w shellWriter) Write(p []byte) (int, error) {
	w.c.Print(string(p))
	return len(p), nil
}

var (
	// DiscoverCmd scans for devices.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"scan", "s"},
		Help:    "[SECONDS]",
		Func: func(c *ishell.Context) {
			var duration time.Duration
			if len(c.Args) > 0 {
				secs, err := strconv.ParseFloat(c.Args[0], 64)
				if err != nil || secs <= 0 {
					c.Err(fmt.Errorf("invalid duration %q", c.Args[0]))
					return
				}
				duration = time.Duration(secs * float64(time.Second))
			}
			w := shellWriter{c}
			ctx, stop := interruptContext()
			defer stop()
			session, err := ShellFrom(c).Discover(ctx, w, duration)
			if err != nil && !errors.Is(err, context.Canceled) {
				c.Err(err)
				if session == nil {
					return
				}
			}
			if err := discovery.WriteSummary(w, session.Registry.Devices()); err != nil {
				c.Err(err)
			}
		},
	}

	// DevicesCmd lists devices found by the last scan.
	DevicesCmd = ishell.Cmd{
		Name:    "devices",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if s.Last == nil {
				c.Err(fmt.Errorf("no scan yet, run discover first"))
				return
			}
			if err := discovery.WriteSummary(shellWriter{c}, s.Last.Registry.Devices()); err != nil {
				c.Err(err)
			}
		},
	}

	// ConvertCmd converts icons to firmware headers.
	ConvertCmd = ishell.Cmd{
		Name:    "convert",
		Aliases: []string{"c"},
		Help:    "[SRC_DIR] [OUT_DIR]",
		Func: func(c *ishell.Context) {
			conf := *ShellFrom(c).Convert
			if len(c.Args) > 0 {
				conf.SourceDir = c.Args[0]
			}
			if len(c.Args) > 1 {
				conf.OutputDir = c.Args[1]
			}
			results, err := conf.NewConverter().Run()
			for _, res := range results {
				c.Printf("%s -> %s\n", res.Source, res.Output)
			}
			if err != nil {
				c.Err(err)
			}
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(discovery.NewConfig(), icon.NewConfig()).Run(flag.Args()...)
}
