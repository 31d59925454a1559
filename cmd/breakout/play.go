package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout/levels"
	"github.com/vovakirdan/tui-breakout/internal/platform/spectate"
	"github.com/vovakirdan/tui-breakout/internal/platform/tui"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagLevel      int
	flagLevels     string
	flagSpectate   string
	flagSelect     bool
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play Breakout",
	Long: `Start playing the given variant (default: breakout).

Variants:
  breakout       - Classic rules
  breakout_plus  - Falling power-ups: widen, narrow and heal

Controls:
  Left/Right, A/D  - Move paddle (or move the mouse)
  Space/Enter      - Start a run, launch the ball
  P                - Pause
  Esc/B            - Back to the selector (title screen only)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Base ball speed, ramps up with score
  normal - Starts at 30% of the speed ramp
  hard   - Starts at 70% of the speed ramp
  fixed  - Constant ball speed

Examples:
  breakout play
  breakout play breakout_plus --difficulty hard
  breakout play --level 3
  breakout play --levels ./packs/classic --select
  breakout play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom breakout config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start level (1-based)")
	playCmd.Flags().StringVar(&flagLevels, "levels", "", "Level pack: a .yaml/.yml/.toml file or a directory of them")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a websocket spectator feed on this address (e.g. :8080)")
	playCmd.Flags().BoolVar(&flagSelect, "select", false, "Pick variant and start level interactively")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "breakout"
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'breakout list' to see available variants.")
		os.Exit(1)
	}
	if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
		fmt.Fprintf(os.Stderr, "Error: unknown difficulty %q (want easy, normal, hard or fixed)\n", flagDifficulty)
		os.Exit(1)
	}

	logger, closeLog, err := openLogger(io.Discard, "breakout")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	breakout.SetConfigPath(flagConfig)
	breakout.SetDifficultyPreset(flagDifficulty)
	breakout.SetLevelPack(flagLevels)
	if cmd.Flags().Changed("level") {
		breakout.SetStartLevel(flagLevel - 1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	opts := tui.ModelOptions{Logger: logger}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		// The game still works; the high score lives in memory only.
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		opts.Store = store
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	if flagSelect {
		selection, selErr := tui.RunSelector(resolveCatalog(logger), store, cfg)
		if selErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", selErr)
			os.Exit(1)
		}
		if selection == nil {
			return
		}
		gameID = selection.GameID
		breakout.SetStartLevel(selection.Level)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	if flagSpectate != "" {
		hub := spectate.NewHub(spectate.WithLogger(logger))
		opts.Publisher = hub
		go func() {
			if err := spectate.Serve(ctx, flagSpectate, hub); err != nil {
				logger.Error("spectator feed stopped", "err", err)
			}
		}()
	}

	runErr := tui.Run(game, cfg, opts)

	cancel()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// resolveCatalog loads the pack named by --levels or the config, falling back
// to the built-in levels.
func resolveCatalog(logger *log.Logger) *levels.Catalog {
	pack := flagLevels
	if pack == "" {
		if cfg, err := config.LoadBreakout(flagConfig); err == nil {
			pack = cfg.Levels.Pack
		}
	}
	catalog, err := levels.Load(pack)
	if err != nil {
		logger.Warn("using built-in levels", "pack", pack, "err", err)
		return levels.Builtin()
	}
	return catalog
}
