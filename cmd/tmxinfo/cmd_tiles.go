package main

import (
	"fmt"
	"strings"

	"github.com/automoto/tiledmap/tmx"
	"github.com/spf13/cobra"
)

func newTilesCmd() *cobra.Command {
	var layerName string
	var all bool

	cmd := &cobra.Command{
		Use:   "tiles <map.tmx>",
		Short: "Print the gid grid of a tile layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := tmx.LoadFile(args[0])
			if err != nil {
				return err
			}

			var layers []*tmx.TileLayer
			for _, l := range m.TileLayers() {
				if layerName == "" || l.Name == layerName {
					layers = append(layers, l)
				}
			}
			if len(layers) == 0 {
				return fmt.Errorf("no tile layer named %q", layerName)
			}
			// duplicate names are legal; only print them all on request
			if !all {
				layers = layers[:1]
			}

			out := cmd.OutOrStdout()
			for _, l := range layers {
				fmt.Fprintf(out, "# %s (%dx%d)\n", l.Name, l.Width, l.Height)
				row := make([]string, l.Width)
				for y := 0; y < l.Height; y++ {
					for x := 0; x < l.Width; x++ {
						t, _ := l.TileAt(x, y)
						row[x] = fmt.Sprint(t.GID)
					}
					fmt.Fprintln(out, strings.Join(row, ","))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&layerName, "layer", "l", "", "layer name (default: first tile layer)")
	cmd.Flags().BoolVar(&all, "all", false, "print every layer matching --layer")
	return cmd
}
