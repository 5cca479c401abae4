// Command usonic-stl emits the private, contract-internal strict-type library and
// Vesper type tree: Codex's internal shape (with LibSite and CoreConfig) and the USONIC
// opcode table. The public types printed by ultrasonic-stl are not repeated here. It
// is a thin wrapper, not part of the core
// (see SPEC_FULL.md §6.3).
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ultrasonic.dev/sonic/alu"
	"ultrasonic.dev/sonic/config"
)

type fieldType struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type typeDef struct {
	Name   string      `json:"name"`
	Kind   string      `json:"kind"`
	Fields []fieldType `json:"fields,omitempty"`
}

var internalTypes = []typeDef{
	{Name: "Codex", Kind: "struct", Fields: []fieldType{
		{Name: "version", Type: "u8"},
		{Name: "name", Type: "string"},
		{Name: "developer", Type: "string"},
		{Name: "timestamp", Type: "i64"},
		{Name: "field_order", Type: "uint"},
		{Name: "input_config", Type: "CoreConfig"},
		{Name: "verification_config", Type: "CoreConfig"},
		{Name: "verifiers", Type: "map<u16, LibSite>"},
	}},
	{Name: "LibSite", Kind: "struct", Fields: []fieldType{
		{Name: "lib", Type: "LibId"},
		{Name: "offset", Type: "u16"},
	}},
	{Name: "CoreConfig", Kind: "struct", Fields: []fieldType{
		{Name: "halt", Type: "bool"},
		{Name: "complexity_lim", Type: "u64"},
	}},
}

var opcodeNames = []string{
	"cknxi_destructible", "cknxi_immutable", "cknxo_destructible", "cknxo_immutable",
	"ldw", "ldi_witness", "ldi_lock", "ldi_auth", "ldi_destructible", "ldi_immutable",
	"ldo_destructible", "ldo_immutable", "rsti_destructible", "rsti_immutable",
	"rsto_destructible", "rsto_immutable",
}

func opcodeTable() map[string]int {
	table := make(map[string]int, len(opcodeNames))
	for i, name := range opcodeNames {
		table[name] = alu.ExtRangeStart + i
	}
	return table
}

func rootCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "usonic-stl",
		Short: "Emit the private strict-type library, Vesper type tree, and USONIC opcode table",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zerolog.New(os.Stderr).With().Timestamp().Str("component", "usonic-stl").Logger()
			if err := config.Validate(cfg); err != nil {
				log.Error().Err(err).Msg("invalid configuration")
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Library string         `json:"library"`
				Types   []typeDef      `json:"types"`
				Opcodes map[string]int `json:"opcodes"`
			}{Library: "UltraSONIC (private)", Types: internalTypes, Opcodes: opcodeTable()})
		},
	}

	cmd.Flags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "unused placeholder, kept for flag-set parity with ultrasonic-stl")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "usonic-stl: %v\n", err)
		os.Exit(1)
	}
}
