package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-agi/internal/registry"
	"github.com/vovakirdan/tui-agi/internal/resource"
)

var listCmd = &cobra.Command{
	Use:   "list [game]",
	Short: "List installed games or the resources of one",
	Long: `Without arguments, shows the games registered in the games catalog.

With a game, shows how many logics, pictures, views and sounds its
directory indexes, with their numbers, followed by the vocabulary size
and the inventory items.

Examples:
  agi list
  agi list kq1
  agi list ./sq2`,
	Args: cobra.MaximumNArgs(1),
	Run:  runList,
}

func runList(_ *cobra.Command, args []string) {
	catalog, err := loadCatalog()
	if err != nil {
		fail("%v", err)
	}
	if len(args) == 0 {
		listGames(catalog)
		return
	}

	info, err := catalog.Resolve(args[0])
	if err != nil {
		fail("%v", err)
	}
	dir, err := info.Dir()
	if err != nil {
		fail("cannot open game: %v", err)
	}

	fmt.Printf("Resources in %s (%s):\n", info.Title, info.Path)
	fmt.Println()

	// Print header
	fmt.Printf("  %-8s  %-5s  %s\n", "Kind", "Count", "Numbers")
	fmt.Printf("  %-8s  %-5s  %s\n", "----", "-----", "-------")

	for _, kind := range []resource.Kind{resource.KindLogic, resource.KindPicture, resource.KindView, resource.KindSound} {
		fmt.Printf("  %-8s  %-5d  %s\n", kind, dir.Count(kind), numberRanges(dir.Numbers(kind)))
	}

	fmt.Println()
	fmt.Printf("Words: %d\n", dir.WordCount())

	items := dir.Items()
	if len(items) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %-3s  %-4s  %s\n", "#", "Room", "Item")
	fmt.Printf("  %-3s  %-4s  %s\n", "-", "----", "----")
	for i, it := range items {
		fmt.Printf("  %-3d  %-4d  %s\n", i, it.Room, it.Name)
	}
}

func listGames(catalog *registry.Catalog) {
	games := catalog.List()

	if len(games) == 0 {
		fmt.Println("No games in the catalog.")
		fmt.Println("Add some to ~/.agi/configs/games.yaml, or pass a game directory.")
		return
	}

	fmt.Println("Installed games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
		maxTitleLen = max(maxTitleLen, len(g.Title))
	}

	// Print header
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Path")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "----")

	// Print games
	for _, g := range games {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, g.ID, maxTitleLen, g.Title, g.Path)
	}

	fmt.Println()
	fmt.Println("Run 'agi play <id>' to play a game.")
}

// numberRanges compacts sorted numbers to "0-3, 5, 7-9".
func numberRanges(nums []int) string {
	if len(nums) == 0 {
		return "-"
	}
	var out string
	start, prev := nums[0], nums[0]
	flush := func() {
		if out != "" {
			out += ", "
		}
		if start == prev {
			out += fmt.Sprintf("%d", start)
		} else {
			out += fmt.Sprintf("%d-%d", start, prev)
		}
	}
	for _, n := range nums[1:] {
		if n == prev+1 {
			prev = n
			continue
		}
		flush()
		start, prev = n, n
	}
	flush()
	return out
}
