// Command ultrasonic-stl emits a strict-type library and Vesper type tree
// description for UltraSONIC's public types. It is a thin wrapper: actual
// strict-encoding/Vesper code generation is out of scope (see SPEC_FULL.md §6.3);
// this only prints the type graph a generator would need.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

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

// publicTypes describes the library's public surface: the structures every consumer
// of sonic.Verify exchanges, independent of any contract-internal detail.
var publicTypes = []typeDef{
	{Name: "StateValue", Kind: "enum", Fields: []fieldType{
		{Name: "None", Type: "unit"},
		{Name: "Single", Type: "fe256"},
		{Name: "Double", Type: "(fe256, fe256)"},
		{Name: "Triple", Type: "(fe256, fe256, fe256)"},
		{Name: "Quadripple", Type: "(fe256, fe256, fe256, fe256)"},
	}},
	{Name: "AuthToken", Kind: "struct", Fields: []fieldType{{Name: "elem", Type: "fe256"}}},
	{Name: "RawData", Kind: "struct", Fields: []fieldType{{Name: "bytes", Type: "bytes<=65536"}}},
	{Name: "StateCell", Kind: "struct", Fields: []fieldType{
		{Name: "data", Type: "StateValue"},
		{Name: "auth", Type: "AuthToken"},
		{Name: "lock", Type: "Option<LibSite>"},
	}},
	{Name: "StateData", Kind: "struct", Fields: []fieldType{
		{Name: "value", Type: "StateValue"},
		{Name: "raw", Type: "Option<RawData>"},
	}},
	{Name: "CellAddr", Kind: "struct", Fields: []fieldType{
		{Name: "opid", Type: "Opid"},
		{Name: "pos", Type: "u16"},
	}},
	{Name: "Input", Kind: "struct", Fields: []fieldType{
		{Name: "addr", Type: "CellAddr"},
		{Name: "witness", Type: "StateValue"},
	}},
	{Name: "Operation", Kind: "struct", Fields: []fieldType{
		{Name: "version", Type: "u8"},
		{Name: "contract_id", Type: "ContractId"},
		{Name: "call_id", Type: "u16"},
		{Name: "nonce", Type: "fe256"},
		{Name: "destructible_in", Type: "[Input]"},
		{Name: "immutable_in", Type: "[CellAddr]"},
		{Name: "destructible_out", Type: "[StateCell]"},
		{Name: "immutable_out", Type: "[StateData]"},
	}},
	{Name: "Genesis", Kind: "struct", Fields: []fieldType{
		{Name: "version", Type: "u8"},
		{Name: "codex_id", Type: "CodexId"},
		{Name: "call_id", Type: "u16"},
		{Name: "nonce", Type: "fe256"},
		{Name: "destructible_out", Type: "[StateCell]"},
		{Name: "immutable_out", Type: "[StateData]"},
	}},
	{Name: "Issue", Kind: "struct", Fields: []fieldType{
		{Name: "version", Type: "u8"},
		{Name: "meta", Type: "ContractMeta"},
		{Name: "codex", Type: "Codex"},
		{Name: "genesis", Type: "Genesis"},
	}},
	{Name: "VerifiedOperation", Kind: "opaque"},
}

func rootCmd() *cobra.Command {
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "ultrasonic-stl",
		Short: "Emit the public strict-type library and Vesper type tree for UltraSONIC",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := zerolog.New(os.Stderr).With().Timestamp().Str("component", "ultrasonic-stl").Logger()
			if err := config.Validate(cfg); err != nil {
				log.Error().Err(err).Msg("invalid configuration")
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Library string    `json:"library"`
				Types   []typeDef `json:"types"`
			}{Library: "UltraSONIC", Types: publicTypes})
		},
	}

	cmd.Flags().StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "unused placeholder, kept for flag-set parity with usonic-stl")
	cmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ultrasonic-stl: %v\n", err)
		os.Exit(1)
	}
}
