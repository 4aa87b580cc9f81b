package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gridboard/app"
	"gridboard/card"
	"gridboard/config"
	"gridboard/grid"
	"gridboard/log"
	"gridboard/ui/overlay"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	version  = "1.0.0"
	widthFlag int
	tierFlag  string
	jsonFlag  bool

	rootCmd = &cobra.Command{
		Use:   "gridboard [deck]",
		Short: "Gridboard - A responsive card dashboard for the terminal.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			log.Initialize()
			defer log.Close()

			deckPath, err := resolveDeckPath(args)
			if err != nil {
				return err
			}

			return app.Run(ctx, deckPath)
		},
	}

	packCmd = &cobra.Command{
		Use:   "pack [deck]",
		Short: "Pack a deck once and print the layout without starting the UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			deckPath, err := resolveDeckPath(args)
			if err != nil {
				return err
			}
			deck, err := card.LoadDeck(deckPath)
			if err != nil {
				return err
			}

			cfg := config.LoadConfig()
			table := cfg.BreakpointTable()

			width := widthFlag
			if width <= 0 {
				w, _, err := term.GetSize(int(os.Stdout.Fd()))
				if err != nil {
					w = grid.StandardWidth
				}
				width = w
			}

			active := tierFlag
			if active == "" {
				active = table.Resolve(width)
			}

			items := deck.Items(nil, "")
			cols := deck.ColumnTable(cfg.ColumnTable())
			layout := grid.ComputeLayout(items, table, cols, active, width, deck.GapOrDefault(cfg.Gap))

			if jsonFlag {
				data, err := json.MarshalIndent(layout, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Printf("%s: %d columns, %d rows (width %d, cell %.2f)\n",
				layout.Breakpoint, layout.Columns, layout.Rows(), width, layout.CellSize)
			for _, p := range layout.Placements {
				fmt.Printf("  %-20s col %d row %d span %dx%d\n", p.ID, p.Col, p.Row, p.ColSpan, p.RowSpan)
			}
			return nil
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset all stored card state (dismissed and pinned cards)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			state := config.LoadState()
			storage := card.NewStorage(state)
			if err := storage.DeleteAll(); err != nil {
				return fmt.Errorf("failed to reset card state: %w", err)
			}
			fmt.Println("Card state has been reset successfully")

			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize()
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)
			fmt.Printf("State: %s\n", filepath.Join(configDir, config.StateFileName))
			fmt.Printf("Log: %s\n", log.Path())

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gridboard",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gridboard version %s\n", version)
		},
	}
)

// resolveDeckPath finds the deck to open: the command line argument, then the
// configured default deck, then a deck.yaml in the working directory, and
// finally an interactive picker.
func resolveDeckPath(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	cfg := config.LoadConfig()
	if cfg.DefaultDeck != "" {
		if _, err := os.Stat(cfg.DefaultDeck); err == nil {
			return cfg.DefaultDeck, nil
		}
	}

	if _, err := os.Stat(config.DefaultDeckName); err == nil {
		return config.DefaultDeckName, nil
	}

	return pickDeck()
}

// pickerModel is a minimal bubbletea model wrapping the file browser overlay
// so a deck can be chosen before the board starts.
type pickerModel struct {
	fb *overlay.FileBrowserOverlay
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.fb.SetSize(msg.Width-4, msg.Height-2)
		return m, nil
	case tea.KeyMsg:
		if m.fb.HandleKeyPress(msg) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m pickerModel) View() string {
	return m.fb.View()
}

func pickDeck() (string, error) {
	fb, err := overlay.NewFileBrowserOverlay(".")
	if err != nil {
		return "", err
	}
	fb.SetSize(80, 24)

	p := tea.NewProgram(pickerModel{fb: fb}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return "", err
	}

	if !fb.IsSubmitted() {
		return "", fmt.Errorf("no deck selected")
	}
	return fb.GetSelectedPath(), nil
}

func init() {
	packCmd.Flags().IntVarP(&widthFlag, "width", "w", 0,
		"Container width to pack for. Defaults to the terminal width.")
	packCmd.Flags().StringVarP(&tierFlag, "tier", "t", "",
		"Breakpoint tier to pack for (e.g. 'compact'). Defaults to resolving from the width.")
	packCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the layout as JSON")

	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
	}
}
