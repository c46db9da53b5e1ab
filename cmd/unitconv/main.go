package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tliron/commonlog"

	"github.com/chazu/unitconv/config"
	"github.com/chazu/unitconv/server"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	verbose := flag.Int("v", 0, "Log verbosity (0 quiet, 1 notice, 2 info, 3 debug)")
	interactive := flag.Bool("i", false, "Start interactive REPL")
	configDir := flag.String("config", "", "Directory containing unitconv.toml (default: search upward from .)")
	precision := flag.Int("precision", -1, "Decimals printed in results (default from config)")
	serveMode := flag.Bool("serve", false, "Start conversion server (gRPC + Connect HTTP/JSON)")
	servePort := flag.Int("port", 0, "Conversion server port (used with -serve, default from config)")
	lspMode := flag.Bool("lsp", false, "Start worksheet language server on stdio")
	remote := flag.String("remote", "", "Convert through a conversion server at host:port")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: unitconv [options] [conversion]\n\n")
		fmt.Fprintf(os.Stderr, "Converts a value between compatible unit expressions.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  unitconv '10 m/s => mi/h'     # Convert once\n")
		fmt.Fprintf(os.Stderr, "  unitconv 'kg*m/s^2'           # Show base units of an expression\n")
		fmt.Fprintf(os.Stderr, "  unitconv -i                   # Start REPL\n")
		fmt.Fprintf(os.Stderr, "\nServer:\n")
		fmt.Fprintf(os.Stderr, "  unitconv -serve               # Serve on :7788\n")
		fmt.Fprintf(os.Stderr, "  unitconv -remote host:7788 '1 mi to km'\n")
		fmt.Fprintf(os.Stderr, "  unitconv -lsp                 # Worksheet language server on stdio\n")
	}
	flag.Parse()

	commonlog.Configure(*verbose, nil)

	cfg, err := loadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *precision >= 0 {
		cfg.Display.Precision = *precision
	}
	if *servePort > 0 {
		cfg.Server.Port = *servePort
	}

	reg, err := cfg.Registry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *lspMode {
		if err := server.NewLSP(reg, cfg.Display.Precision).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "LSP error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *serveMode {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := server.New(reg).Serve(ctx, addr); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	sess := newSession(reg, cfg.Display, os.Stdout)
	if *remote != "" {
		client, err := server.Dial(*remote)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer client.Close()
		sess.remote = client
	}

	if *interactive || flag.NArg() == 0 {
		sess.runREPL(os.Stdin)
		return
	}

	if err := sess.eval(context.Background(), strings.Join(flag.Args(), " ")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads unitconv.toml from dir, or searches upward from the
// working directory when dir is empty. Without a file the defaults apply.
func loadConfig(dir string) (*config.Config, error) {
	if dir != "" {
		return config.Load(dir)
	}
	cfg, err := config.FindAndLoad(".")
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return config.Default(), nil
	}
	return cfg, nil
}
