// catch is a terminal game about catching falling balls, driven by a
// fixed-timestep simulation.
//
// Usage:
//
//	catch                  - Start the menu
//	catch play             - Play the campaign directly
//	catch levels           - Show the level table
//	catch scores           - Show high scores and level history
//	catch serve            - Start SSH server for remote play
//	catch simulate         - Run a headless autopilot session and export telemetry
//
// Global flags:
//
//	--fps <rate>         - Set display frame rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.arcade/catch.db)
//	--config <path>      - Load game settings from a YAML file
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register it
	_ "github.com/vovakirdan/tui-catch/internal/games/catch"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "catch",
	Short: "Catch - catch the falling balls in your terminal",
	Long: `Catch is a terminal arcade game. Balls fall from the sky; move the
basket under them before they hit the ground.

Available commands:
  menu      - Interactive menu (default)
  play      - Play a mode directly
  levels    - Show the level table
  scores    - View high scores and level history
  serve     - Start SSH server for remote play
  simulate  - Headless autopilot run with telemetry export

Examples:
  catch
  catch play --level 2
  catch play --mode endless
  catch serve --ssh :2222
  catch simulate --seconds 120 --out ./run1`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display frame rate")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/catch.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}
