package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-agi/internal/logic"
)

var disasmCmd = &cobra.Command{
	Use:   "disasm <game> <logic>",
	Short: "Disassemble a logic resource",
	Long: `Decode a logic resource and print its instructions, one per line,
with jump targets labelled, followed by its message table. Message text
is decrypted unless the engine config sets scripts.messages_crypted to
false.

Examples:
  agi disasm kq1 0
  agi disasm ./kq1 101`,
	Args: cobra.ExactArgs(2),
	Run:  runDisasm,
}

func runDisasm(_ *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 0 || n > 255 {
		fail("logic number must be 0-255, got %q", args[1])
	}

	catalog, err := loadCatalog()
	if err != nil {
		fail("%v", err)
	}
	info, err := catalog.Resolve(args[0])
	if err != nil {
		fail("%v", err)
	}
	dir, err := info.Dir()
	if err != nil {
		fail("cannot open game: %v", err)
	}
	data, err := dir.Logic(n)
	if err != nil {
		fail("%v", err)
	}
	p, err := logic.Decode(n, data, logic.DecodeOptions{MessagesCrypted: cfg.Scripts.MessagesCrypted})
	if err != nil {
		fail("%v", err)
	}

	fmt.Print(logic.Disassemble(p))
}
