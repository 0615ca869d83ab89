package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gitrdm/wfccore/internal/tileset"
	"github.com/gitrdm/wfccore/pkg/wfc"
)

func newSolveCmd() *cobra.Command {
	var (
		tilesetPath   string
		width, height int
		seed          int32
		cacheCapacity int
		showSnapshots bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a tileset over a width x height grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			constraints, err := tileset.Load(tilesetPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			stream := wfc.Solve(ctx, constraints, width, height, seed,
				wfc.WithLogger(logger),
				wfc.WithCacheCapacity(cacheCapacity),
			)

			for {
				ev, ok := stream.Next(ctx)
				if !ok {
					break
				}
				switch ev.Kind {
				case wfc.KindError:
					return ev.Err
				case wfc.KindSnapshot:
					if showSnapshots {
						printSnapshot(cmd, ev.Snapshot, width)
					}
				case wfc.KindDecision:
					logger.Debug("decision", zap.Int("x", ev.X), zap.Int("y", ev.Y), zap.Stringp("tile", ev.TileID))
				case wfc.KindResult:
					return printResult(cmd, ev.Result, width, height)
				}
			}
			return errors.New("wfcsolve: event stream ended without a terminal result")
		},
	}

	cmd.Flags().StringVar(&tilesetPath, "tileset", "", "path to a tileset YAML file")
	cmd.Flags().IntVar(&width, "width", 0, "grid width")
	cmd.Flags().IntVar(&height, "height", 0, "grid height")
	cmd.Flags().Int32Var(&seed, "seed", 0, "shuffle seed")
	cmd.Flags().IntVar(&cacheCapacity, "cache-capacity", 0, "bound the support cache to this many entries (0 = unbounded)")
	cmd.Flags().BoolVar(&showSnapshots, "show-initial-snapshot", false, "print the initial post-propagation possibility set")
	_ = cmd.MarkFlagRequired("tileset")

	return cmd
}

func printSnapshot(cmd *cobra.Command, snapshot [][]string, width int) {
	fmt.Fprintln(cmd.OutOrStdout(), "initial possibilities:")
	for i, cell := range snapshot {
		if i > 0 && i%width == 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] ", strings.Join(cell, ","))
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

func printResult(cmd *cobra.Command, res wfc.Result, width, height int) error {
	if !res.Solved {
		fmt.Fprintln(cmd.OutOrStdout(), "no solution")
		return nil
	}
	for i, tile := range res.Tiles {
		if i > 0 && width > 0 && i%width == 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s ", tile)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}
