package main

import (
	"fmt"

	"github.com/automoto/tiledmap/scene"
	"github.com/automoto/tiledmap/tmx"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"
)

func newCollideCmd() *cobra.Command {
	var configPath string
	var layers []string

	cmd := &cobra.Command{
		Use:   "collide <map.tmx>",
		Short: "Build collision grids for the configured collider layers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSceneConfig(configPath)
			if err != nil {
				return err
			}
			for _, name := range layers {
				cfg.Colliders[name] = []string{"solid"}
			}
			if len(cfg.Colliders) == 0 {
				return fmt.Errorf("no collider layers: pass --layer or a config with [colliders]")
			}

			m, err := tmx.LoadFile(args[0])
			if err != nil {
				return err
			}

			b := &scene.Builder{Config: cfg, Log: logrus.StandardLogger()}
			w, stats, err := b.Build(m)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			scene.Collider.Each(w, func(e *donburi.Entry) {
				g := scene.Collider.Get(e).Grid
				fmt.Fprintf(out, "%-16s tags=%v solid=%d of %d cells\n", g.Name, g.Tags, len(g.Cells), m.Width*m.Height)
			})
			fmt.Fprintf(out, "%d collision grids\n", stats.Colliders)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "scene config (.toml or .yaml)")
	cmd.Flags().StringSliceVarP(&layers, "layer", "l", nil, "treat layer as solid (repeatable)")
	return cmd
}
