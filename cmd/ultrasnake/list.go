package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ultrasnake/internal/config"
	"github.com/vovakirdan/ultrasnake/internal/games/ultrasnake"
	"github.com/vovakirdan/ultrasnake/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game modes",
	Long:  `Shows the registered game modes, difficulty presets and themes.`,
	Args:  cobra.NoArgs,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	maxIDLen := 2 // "ID" header
	for _, g := range modes {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Println("Game modes:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range modes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Print("Difficulties:")
	for _, p := range config.Presets() {
		fmt.Printf(" %s", p)
	}
	fmt.Println()
	fmt.Print("Themes:      ")
	for _, t := range ultrasnake.Themes() {
		fmt.Printf(" %s", t)
	}
	fmt.Println()

	fmt.Println()
	fmt.Println("Run 'ultrasnake play <id>' to play a mode.")
}
