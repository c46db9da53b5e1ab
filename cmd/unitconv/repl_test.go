package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazu/unitconv/config"
	"github.com/chazu/unitconv/dimension"
	"github.com/chazu/unitconv/registry"
)

func newTestSession(display config.Display) (*session, *bytes.Buffer) {
	var out bytes.Buffer
	return newSession(registry.Default(), display, &out), &out
}

// ---------------------------------------------------------------------------
// eval
// ---------------------------------------------------------------------------

func TestEval_Conversion(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"10 m/s => mi/h", "10 m/s = 22.37 mi/h\n"},
		{"1 km -> m", "1 km = 1000 m\n"},
		{"ft to in", "1 ft = 12 in\n"},
	}
	for _, tt := range tests {
		s, out := newTestSession(config.Display{Precision: 2})
		if err := s.eval(context.Background(), tt.line); err != nil {
			t.Errorf("eval(%q): %v", tt.line, err)
			continue
		}
		if out.String() != tt.want {
			t.Errorf("eval(%q) printed %q, want %q", tt.line, out.String(), tt.want)
		}
	}
}

func TestEval_Expression(t *testing.T) {
	s, out := newTestSession(config.Display{Precision: 4})
	if err := s.eval(context.Background(), "m/s^2"); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if want := "m/s^2 = [meter] [second]^-2 (length time^-2)\n"; out.String() != want {
		t.Errorf("printed %q, want %q", out.String(), want)
	}

	s, out = newTestSession(config.Display{Precision: 4, Superscript: true})
	if err := s.eval(context.Background(), "m/s^2"); err != nil {
		t.Fatalf("eval: %v", err)
	}
	if want := "m/s^2 = [meter] [second]⁻² (length time^-2)\n"; out.String() != want {
		t.Errorf("printed %q, want %q", out.String(), want)
	}
}

func TestEval_Errors(t *testing.T) {
	s, out := newTestSession(config.Display{Precision: 4})

	err := s.eval(context.Background(), "1 m => s")
	if !errors.Is(err, dimension.ErrDimensionMismatch) {
		t.Errorf("eval mismatch err = %v, want ErrDimensionMismatch", err)
	}
	err = s.eval(context.Background(), "furlong")
	if !errors.Is(err, dimension.ErrInvalidToken) {
		t.Errorf("eval unknown unit err = %v, want ErrInvalidToken", err)
	}
	if out.Len() != 0 {
		t.Errorf("failed evaluations printed %q", out.String())
	}
}

// ---------------------------------------------------------------------------
// REPL
// ---------------------------------------------------------------------------

func TestREPL_Session(t *testing.T) {
	s, out := newTestSession(config.Display{Precision: 3})
	s.runREPL(strings.NewReader("1 mi => km\n\n1 m => s\nexit\n1 ft => in\n"))

	got := out.String()
	if !strings.Contains(got, "1 mi = 1.609 km") {
		t.Errorf("REPL output missing conversion:\n%s", got)
	}
	if !strings.Contains(got, "Error: dimension mismatch") {
		t.Errorf("REPL output missing mismatch error:\n%s", got)
	}
	if strings.Contains(got, "12 in") {
		t.Errorf("REPL kept evaluating after exit:\n%s", got)
	}
}

func TestREPL_Commands(t *testing.T) {
	tests := []struct {
		cmd      string
		contains []string
	}{
		{":help", []string{":units", ":spaces", ":base"}},
		{":spaces", []string{"length (8 units)", "mass (4 units)", "time (6 units)"}},
		{":units mass", []string{"gram", "tonne", "pound", "ounce"}},
		{":units color", []string{"Unknown space: color"}},
		{":base km/h", []string{"[meter] [hour]^-1"}},
		{":base", []string{"Usage: :base <expr>"}},
		{":base m^", []string{"Error:"}},
		{":frobnicate", []string{"Unknown command: :frobnicate"}},
	}
	for _, tt := range tests {
		s, out := newTestSession(config.Display{Precision: 4})
		s.handleCommand(tt.cmd)
		for _, want := range tt.contains {
			if !strings.Contains(out.String(), want) {
				t.Errorf("%s output = %q, missing %q", tt.cmd, out.String(), want)
			}
		}
	}
}

func TestREPL_UnitsExcludesOtherSpaces(t *testing.T) {
	s, out := newTestSession(config.Display{Precision: 4})
	s.handleCommand(":units time")
	if strings.Contains(out.String(), "meter") {
		t.Errorf(":units time listed a length unit:\n%s", out.String())
	}
}

// ---------------------------------------------------------------------------
// loadConfig
// ---------------------------------------------------------------------------

func TestLoadConfig_Dir(t *testing.T) {
	dir := t.TempDir()
	if err := writeFile(dir, config.FileName, "[display]\nprecision = 1\n"); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Display.Precision != 1 {
		t.Errorf("Precision = %d, want 1", cfg.Display.Precision)
	}
}

func TestLoadConfig_MissingDir(t *testing.T) {
	if _, err := loadConfig(t.TempDir()); err == nil {
		t.Error("loadConfig of a dir without unitconv.toml should fail")
	}
}

func writeFile(dir, name, content string) error {
	return os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)
}
