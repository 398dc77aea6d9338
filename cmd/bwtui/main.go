package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/leddt/bwtui/pkg/cache"
	"github.com/leddt/bwtui/pkg/logger"
	"github.com/leddt/bwtui/pkg/model"
	"github.com/leddt/bwtui/pkg/session"
	"github.com/leddt/bwtui/pkg/ui"
	"github.com/leddt/bwtui/pkg/vault"
)

const version = "0.2.0"

// systemClipboard adapts the OS clipboard to the orchestrator's interface.
type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

func main() {
	versionFlag := flag.Bool("version", false, "Show version")
	demo := flag.Bool("demo", false, "Run with built-in demo data (no bw CLI needed)")
	noCache := flag.Bool("no-cache", false, "Skip loading the cached item list at startup")
	caseSensitive := flag.Bool("case-sensitive", false, "Case-sensitive search")
	exact := flag.Bool("exact", false, "Substring search instead of fuzzy matching")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("bwtui %s\n", version)
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "bwtui must be run in a terminal")
		os.Exit(1)
	}

	log := logger.New(*logLevel)
	defer log.Sync()

	cachePath, err := cache.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving cache path: %v\n", err)
		os.Exit(1)
	}

	state := vault.NewState()
	state.Items.SetMatchOptions(!*exact, *caseSensitive)

	var clip vault.Clipboard
	if !clipboard.Unsupported {
		clip = systemClipboard{}
	}

	store := cache.NewStore(cachePath, log)
	tokens := session.NewStore(log)
	orch := vault.NewOrchestrator(state, store, tokens, clip, log)

	ctx := context.Background()

	if *demo {
		state.Items.Load(model.DemoItems())
		state.SetStatus("Demo mode: showing sample data", vault.LevelInfo)
	} else {
		if !*noCache {
			orch.LoadCache()
		}
		orch.Start(ctx)
	}

	if clip == nil {
		state.SetStatus("Clipboard not available on this system", vault.LevelWarning)
	}

	p := tea.NewProgram(
		ui.NewModel(ctx, state, orch),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
