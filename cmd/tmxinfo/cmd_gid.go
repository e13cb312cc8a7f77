package main

import (
	"fmt"
	"strconv"

	"github.com/automoto/tiledmap/tmx"
	"github.com/spf13/cobra"
)

func newGIDCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gid <map.tmx> <gid>",
		Short: "Resolve a global tile id to its tileset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gid, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid gid %q: %w", args[1], err)
			}
			m, err := tmx.LoadFile(args[0])
			if err != nil {
				return err
			}

			ts := m.TilesetForGID(uint32(gid))
			if ts == nil {
				return fmt.Errorf("gid %d belongs to no tileset", gid)
			}
			local, _ := ts.LocalID(uint32(gid))
			fmt.Fprintf(cmd.OutOrStdout(), "gid %d: tileset %q (firstgid %d) local id %d image %s\n",
				gid, ts.Name, ts.FirstGID, local, m.ImagePath(*ts))
			return nil
		},
	}
}
