package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/automoto/tiledmap/tmx"
	"github.com/lafriks/go-tiled"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <map.tmx>",
		Short: "Cross-check tile decoding against go-tiled",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ours, err := tmx.LoadFile(path)
			if err != nil {
				return err
			}
			fsys := os.DirFS(filepath.Dir(path))
			theirs, err := tiled.LoadFile(filepath.Base(path), tiled.WithFileSystem(fsys))
			if err != nil {
				return fmt.Errorf("go-tiled: %w", err)
			}

			mismatches := compareLayers(ours, theirs)
			for _, msg := range mismatches {
				logrus.Warn(msg)
			}
			if len(mismatches) > 0 {
				return fmt.Errorf("%s: %d mismatches", path, len(mismatches))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tile layers match go-tiled\n", path, len(ours.TileLayers()))
			return nil
		},
	}
}

// compareLayers matches tile layers by position; go-tiled keeps them in
// document order as well.
func compareLayers(ours *tmx.Map, theirs *tiled.Map) []string {
	var out []string
	layers := ours.TileLayers()
	if len(layers) != len(theirs.Layers) {
		out = append(out, fmt.Sprintf("tile layer count: ours %d, go-tiled %d", len(layers), len(theirs.Layers)))
		return out
	}
	for i, l := range layers {
		ref := theirs.Layers[i]
		if l.Name != ref.Name {
			out = append(out, fmt.Sprintf("layer %d: name %q, go-tiled %q", i, l.Name, ref.Name))
		}
		if len(l.Tiles) != len(ref.Tiles) {
			out = append(out, fmt.Sprintf("layer %q: %d tiles, go-tiled %d", l.Name, len(l.Tiles), len(ref.Tiles)))
			continue
		}
		for k, t := range l.Tiles {
			var want uint32
			if rt := ref.Tiles[k]; !rt.IsNil() {
				want = rt.Tileset.FirstGID + rt.ID
			}
			if t.GID != want {
				out = append(out, fmt.Sprintf("layer %q (%d,%d): gid %d, go-tiled %d", l.Name, t.X, t.Y, t.GID, want))
			}
		}
	}
	return out
}
