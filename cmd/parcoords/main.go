// Command parcoords explores a tabular dataset as interactive parallel
// coordinates in the terminal.
package main

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"parcoords/internal/config"
	"parcoords/internal/logging"
	"parcoords/internal/state"
	"parcoords/internal/tui"
)

var (
	configPath string
	statePath  string
	height     int
	colorBy    string
	logFile    string
	logLevel   string
	seed       int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parcoords [data.csv|data.json|data.geojson|data.xlsx]",
		Short: "Explore a dataset with parallel coordinates",
		Long: `parcoords draws every row of a dataset as a line across one vertical
axis per column. Brush ranges on the axes to filter, drag axis labels to
reorder or remove them and click a label to invert its axis.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run,
	}

	f := rootCmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML config file")
	f.StringVar(&statePath, "state", "", "File keeping axis order, types and coloring (default from config)")
	f.IntVar(&height, "height", 0, "Plot height in terminal rows")
	f.StringVar(&colorBy, "color-by", "", "Column used to color the lines")
	f.StringVar(&logFile, "log-file", "", "Write logs to this file")
	f.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.Int64Var(&seed, "seed", 0, "Seed for the render order (0 picks one)")

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("state") {
		cfg.StateFile = statePath
	}
	if flags.Changed("height") {
		cfg.PlotHeight = height
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.LogFile != "" {
		lf, err := logging.ToFile(cfg.LogFile)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer lf.Close()
	}
	logging.SetLevel(cfg.LogLevel)

	store := state.New()
	if cfg.StateFile != "" {
		if store, err = state.Open(cfg.StateFile); err != nil {
			return err
		}
	}
	if colorBy != "" {
		if err := store.Set("colorby", colorBy); err != nil {
			return fmt.Errorf("save color-by: %w", err)
		}
	}

	var m tui.Model
	if len(args) > 0 {
		m = tui.NewWithPath(cfg, store, args[0])
	} else {
		m = tui.New(cfg, store)
	}
	logging.Infof("parcoords: starting")
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion()).Run(); err != nil {
		return err
	}
	return nil
}
