package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gitrdm/wfccore/internal/tileset"
	"github.com/gitrdm/wfccore/pkg/wfc"
)

func newValidateCmd() *cobra.Command {
	var tilesetPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Compile a tileset and report existence/commutativity errors without solving",
		RunE: func(cmd *cobra.Command, args []string) error {
			constraints, err := tileset.Load(tilesetPath)
			if err != nil {
				return err
			}
			table, err := wfc.Compile(constraints)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tiles compiled\n", table.N())
			return nil
		},
	}

	cmd.Flags().StringVar(&tilesetPath, "tileset", "", "path to a tileset YAML file")
	_ = cmd.MarkFlagRequired("tileset")

	return cmd
}
