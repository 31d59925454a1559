package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [pack]",
	Short: "List and validate levels",
	Long: `List the built-in levels, or load a level pack and report every
file that fails validation.

A pack is a .yaml, .yml or .toml file, or a directory of them. Each file
holds one level:

  id: "01-classic"
  name: "Classic"
  rows:
    - "1111111111"
    - "2222222222"
    - "#..XX..#.."

Legend: '.' empty, '1'-'9' hit points, '#' wall, 'X' obstacle.

Examples:
  breakout levels
  breakout levels ./packs/classic`,
	Args: cobra.MaximumNArgs(1),
	Run:  runLevels,
}

func runLevels(cmd *cobra.Command, args []string) {
	cfg := config.DefaultBreakoutConfig()
	if err := levels.CheckLattice(cfg.Field.CellSize, cfg.Ball.Size); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	var pack levels.Pack
	if len(args) == 0 {
		pack = levels.Pack{Catalog: levels.Builtin()}
		fmt.Println("Built-in levels:")
	} else {
		var err error
		pack, err = levels.LoadPack(args[0])
		for _, problem := range pack.Problems {
			fmt.Fprintf(os.Stderr, "  skipped: %v\n", problem)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Levels in %s:\n", args[0])
	}
	fmt.Println()

	fmt.Printf("  %-3s  %-20s  %-20s  %s\n", "#", "ID", "Name", "Blocks")
	fmt.Printf("  %-3s  %-20s  %-20s  %s\n", "-", "--", "----", "------")
	for i, lvl := range pack.Catalog.Levels() {
		fmt.Printf("  %-3d  %-20s  %-20s  %d/%d\n", i+1, lvl.ID, lvl.Name, lvl.Grid.Scoring(), lvl.Grid.Occupied())
	}

	if len(pack.Problems) > 0 {
		fmt.Printf("\n%d file(s) skipped.\n", len(pack.Problems))
		os.Exit(1)
	}
}
