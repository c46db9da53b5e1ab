package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chazu/unitconv/config"
	"github.com/chazu/unitconv/dimension"
	"github.com/chazu/unitconv/input"
	"github.com/chazu/unitconv/registry"
	"github.com/chazu/unitconv/server"
)

// session evaluates conversions and expressions for the one-shot CLI and
// the REPL. When remote is set, conversions go to a conversion server.
type session struct {
	reg     *registry.Registry
	display config.Display
	out     io.Writer
	remote  *server.Client
}

func newSession(reg *registry.Registry, display config.Display, out io.Writer) *session {
	return &session{reg: reg, display: display, out: out}
}

// eval converts a line with a separator, otherwise prints the base units
// of the expression.
func (s *session) eval(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if input.HasSeparator(line) {
		return s.convert(ctx, line)
	}
	return s.base(line)
}

func (s *session) convert(ctx context.Context, line string) error {
	if s.remote != nil {
		c, err := s.remote.Convert(ctx, line)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%s %s = %s %s\n",
			input.FormatValue(c.Input, s.display.Precision), c.From,
			input.FormatValue(c.Value, s.display.Precision), c.To)
		return nil
	}

	res, err := input.Convert(s.reg, line)
	if err != nil {
		return err
	}
	fmt.Fprintln(s.out, res.Format(s.display.Precision))
	return nil
}

func (s *session) base(expr string) error {
	d, err := dimension.Parse(s.reg, expr)
	if err != nil {
		return err
	}
	units := d.AsBaseUnits()
	if s.display.Superscript {
		units = d.Superscript()
	}
	fmt.Fprintf(s.out, "%s = %s (%s)\n", d, units, d.Summary())
	return nil
}

// runREPL starts an interactive read-eval-print loop
func (s *session) runREPL(in io.Reader) {
	fmt.Fprintln(s.out, "unitconv REPL (type 'exit' to quit, ':help' for commands)")
	fmt.Fprintln(s.out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, ">> ")
		if !scanner.Scan() {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line == "" {
			continue
		}

		// Handle REPL commands (start with ':')
		if strings.HasPrefix(line, ":") {
			s.handleCommand(line)
			continue
		}

		if err := s.eval(context.Background(), line); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}

	fmt.Fprintln(s.out)
}

// handleCommand handles REPL meta-commands
func (s *session) handleCommand(cmd string) {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":help", ":h", ":?":
		fmt.Fprintln(s.out, "REPL Commands:")
		fmt.Fprintln(s.out, "  :help, :h, :?     Show this help")
		fmt.Fprintln(s.out, "  :units [space]    List units, optionally of one space")
		fmt.Fprintln(s.out, "  :spaces           List unit spaces")
		fmt.Fprintln(s.out, "  :base <expr>      Show the base units of an expression")
		fmt.Fprintln(s.out, "  exit, quit        Exit REPL")
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, "Conversions: 10 m/s => mi/h, 3 ft -> in, 1 mi to km")
	case ":units":
		units := s.reg.Units()
		if arg != "" {
			units = s.reg.UnitsIn(registry.Space(arg))
			if len(units) == 0 {
				fmt.Fprintf(s.out, "Unknown space: %s\n", arg)
				return
			}
		}
		for _, u := range units {
			fmt.Fprintf(s.out, "  %-14s %-8s %s\n", u.Name, u.Space, strings.Join(u.Aliases, ", "))
		}
	case ":spaces":
		for _, sp := range s.reg.Spaces() {
			fmt.Fprintf(s.out, "  %s (%d units)\n", sp, len(s.reg.UnitsIn(sp)))
		}
	case ":base":
		if arg == "" {
			fmt.Fprintln(s.out, "Usage: :base <expr>")
			return
		}
		if err := s.base(arg); err != nil {
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type :help for commands)\n", cmd)
	}
}
