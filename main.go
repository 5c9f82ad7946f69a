package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ecagl/tempo/internal/api"
	"github.com/ecagl/tempo/internal/config"
	"github.com/ecagl/tempo/internal/export"
	"github.com/ecagl/tempo/internal/storage"
	"github.com/ecagl/tempo/internal/track"
	"github.com/ecagl/tempo/internal/tui"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:           "tempo",
		Short:         "Personal time-tracking dashboard for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(configPath)
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "path to the TOML config file")

	var outPath string
	exportCmd := &cobra.Command{
		Use:       "export {csv|json}",
		Short:     "Export the entry log without opening the dashboard",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"csv", "json"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(configPath, args[0], outPath)
		},
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (defaults to the home directory)")
	cmd.AddCommand(exportCmd)

	return cmd
}

// setup wires config, snapshot storage, the mock backend and the
// tracker. The boolean reports whether a snapshot was restored; a
// fresh tracker seeds from the backend instead.
func setup(configPath string) (*track.Tracker, *storage.Store, bool, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, false, err
	}

	dbPath := ""
	if cfg.Storage.Path != nil {
		dbPath = *cfg.Storage.Path
	} else {
		dbPath, err = storage.DefaultPath()
		if err != nil {
			return nil, nil, false, fmt.Errorf("resolve storage path: %w", err)
		}
	}

	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, nil, false, fmt.Errorf("open storage: %w", err)
	}

	delay := api.DefaultDelay
	if cfg.API.DelayMS != nil {
		delay = time.Duration(*cfg.API.DelayMS) * time.Millisecond
	}

	tracker := track.New(api.NewMock(delay), store)

	snap, restored, err := store.LoadSnapshot()
	if err != nil {
		store.Close()
		return nil, nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	if restored {
		tracker.Restore(snap)
	} else if cfg.UI.Dark != nil && *cfg.UI.Dark {
		tracker.ToggleDarkMode()
	}

	return tracker, store, restored, nil
}

func runTUI(configPath string) error {
	tracker, store, restored, err := setup(configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	app := tui.NewApp(tracker, !restored)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runExport(configPath, format, outPath string) error {
	tracker, store, _, err := setup(configPath)
	if err != nil {
		return err
	}
	defer store.Close()

	st := tracker.State()

	if outPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dateStr := time.Now().Format("2006-01-02")
		outPath = filepath.Join(home, fmt.Sprintf("tempo-export-%s.%s", dateStr, format))
	}

	switch format {
	case "csv":
		err = export.ToCSV(st.Entries, st.Projects, outPath)
	case "json":
		err = export.ToJSON(st.Entries, st.Projects, outPath)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", outPath)
	return nil
}
