package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/automoto/tiledmap/tmx"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <map.tmx>",
		Short: "Print map size, properties, tilesets and layers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := tmx.LoadFile(args[0])
			if err != nil {
				return err
			}
			printMap(cmd.OutOrStdout(), m)
			return nil
		},
	}
}

func printMap(out io.Writer, m *tmx.Map) {
	fmt.Fprintf(out, "map %s\n", m.Source)
	fmt.Fprintf(out, "  size:   %dx%d tiles of %dx%d px (%dx%d px)\n",
		m.Width, m.Height, m.TileWidth, m.TileHeight, m.PixelWidth(), m.PixelHeight())
	printProperties(out, "  ", m.Properties)

	fmt.Fprintf(out, "tilesets (%d)\n", len(m.Tilesets))
	for _, ts := range m.Tilesets {
		fmt.Fprintf(out, "  %-16s firstgid=%-5d image=%s\n", ts.Name, ts.FirstGID, ts.Image)
	}

	fmt.Fprintf(out, "layers (%d)\n", len(m.Layers))
	for _, layer := range m.Layers {
		switch l := layer.(type) {
		case *tmx.TileLayer:
			var filled int
			for _, t := range l.Tiles {
				if !t.IsEmpty() {
					filled++
				}
			}
			fmt.Fprintf(out, "  layer       %-16s %dx%d encoding=%s opacity=%.2f tiles=%d\n",
				l.Name, l.Width, l.Height, l.Encoding, l.Opacity, filled)
		case *tmx.ObjectGroup:
			fmt.Fprintf(out, "  objectgroup %-16s objects=%d\n", l.Name, len(l.Objects))
			for _, o := range l.Objects {
				fmt.Fprintf(out, "    %-12s type=%-10s at (%d,%d) size %dx%d\n", o.Name, o.Type, o.X, o.Y, o.Width, o.Height)
			}
		}
		printProperties(out, "    ", layer.Info().Properties)
	}
}

func printProperties(out io.Writer, indent string, props tmx.Properties) {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s%s = %q\n", indent, k, props[k])
	}
}
