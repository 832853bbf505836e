package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lukaszgryglicki/polyhedra4d/internal/cells"
	"github.com/lukaszgryglicki/polyhedra4d/internal/config"
	"github.com/lukaszgryglicki/polyhedra4d/internal/export"
	"github.com/spf13/cobra"
)

func newExploreCmd(load loader) *cobra.Command {
	var flags config.ExploreCfg
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Walk the cells of a 4D polytope face by face and write the visible cells",
		Long: `Starts from cell 0 embedded as a regular tetrahedron and runs a step script:
0..3 cross that face of the current cell, d deletes the current cell.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			e := &cfg.Explore
			f := cmd.Flags()
			if f.Changed("table") {
				e.Table = flags.Table
			}
			if f.Changed("steps") {
				e.Steps = flags.Steps
			}
			if f.Changed("edge") {
				e.Edge = flags.Edge
			}
			if f.Changed("out") {
				e.Out = flags.Out
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runExplore(cmd, *e)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.Table, "table", "", "cell table JSON (default: generated 600-cell)")
	f.StringVarP(&flags.Steps, "steps", "s", "", `step script, e.g. "0,1,2,d"`)
	f.Float64Var(&flags.Edge, "edge", config.SeedEdge, "seed tetrahedron scale")
	f.StringVarP(&flags.Out, "out", "o", config.ExploreOut, "output file (.json, .stl, .glb, .gltf)")
	return cmd
}

func loadTable(path string) (*cells.Table, error) {
	if path == "" {
		return cells.Cell600Table()
	}
	return cells.LoadTable(path)
}

func runExplore(cmd *cobra.Command, e config.ExploreCfg) error {
	tab, err := loadTable(e.Table)
	if err != nil {
		return err
	}
	steps, err := cells.ParseSteps(e.Steps)
	if err != nil {
		return err
	}
	nav, err := cells.NewNavigator(tab, cells.SeedTetrahedron(e.Edge))
	if err != nil {
		return err
	}
	ex := cells.NewExplorer(nav)
	outcomes, err := ex.Run(steps)
	out := cmd.OutOrStdout()
	for _, o := range outcomes {
		switch {
		case o.Err == nil:
			fmt.Fprintf(out, "%s: current %d\n", o.Step, o.Current)
		case errors.Is(o.Err, cells.ErrAlreadyVisible):
			fmt.Fprintf(out, "%s: %v (current %d)\n", o.Step, o.Err, o.Current)
		default:
			fmt.Fprintf(out, "%s: %v\n", o.Step, o.Err)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d visible cells, current %d\n", nav.Len(), ex.Current)

	if strings.EqualFold(filepath.Ext(e.Out), ".json") {
		err = saveCellsJSON(e.Out, nav)
	} else {
		err = export.Save(e.Out, export.FromNavigator("cells", nav), export.Options{})
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", e.Out)
	return nil
}

type cellJSON struct {
	Index     int           `json:"index"`
	Labels    cells.Labels  `json:"labels"`
	Positions [4][3]float64 `json:"positions"`
}

func saveCellsJSON(path string, nav *cells.Navigator) error {
	var list []cellJSON
	for _, c := range nav.Cells() {
		cj := cellJSON{Index: c.Index, Labels: c.Labels()}
		for i, p := range c.Positions() {
			cj.Positions[i] = [3]float64{p.X, p.Y, p.Z}
		}
		list = append(list, cj)
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
