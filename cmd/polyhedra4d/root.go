package main

import (
	"github.com/lukaszgryglicki/polyhedra4d/internal/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:          "polyhedra4d",
		Short:        "Catmull-Clark subdivision of polygon cages and 600-cell exploration",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (.json, .toml, .yaml)")
	load := func() (*config.Config, error) {
		if cfgPath == "" {
			cfg := config.Default()
			return &cfg, nil
		}
		return config.Load(cfgPath)
	}
	root.AddCommand(newSubdivideCmd(load), newExploreCmd(load), newTableCmd())
	return root
}

type loader func() (*config.Config, error)
