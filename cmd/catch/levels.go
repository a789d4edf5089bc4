package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-catch/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Show the level table and game modes",
	Long: `Shows the campaign levels from the active configuration
(--config, ~/.arcade/configs/catch.yaml, ./configs/catch.yaml or the built-in
defaults) and the registered game modes.`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	fmt.Println("Campaign levels:")
	fmt.Println()
	fmt.Printf("  %-3s  %-10s  %-6s  %-5s  %-6s  %s\n", "#", "Name", "Target", "Lives", "Speed", "Balls")
	fmt.Printf("  %-3s  %-10s  %-6s  %-5s  %-6s  %s\n", "-", "----", "------", "-----", "-----", "-----")
	for i, lvl := range gameCfg.Levels {
		fmt.Printf("  %-3d  %-10s  %-6d  %-5d  x%-5.1f  %d\n",
			i+1, lvl.Name, lvl.Target, lvl.Lives, lvl.TimeScale, lvl.TargetBodies())
	}

	e := gameCfg.Endless
	fmt.Println()
	fmt.Printf("Endless: %d lives, speed x%.1f, %d balls at once\n", e.Lives, e.TimeScale, e.TargetBodies())

	fmt.Println()
	fmt.Println("Modes:")
	for _, g := range registry.List() {
		fmt.Printf("  %-14s  %s\n", g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Run 'catch play --level <n>' to start on a level.")
}
