package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lukaszgryglicki/polyhedra4d/internal/config"
	"github.com/lukaszgryglicki/polyhedra4d/internal/export"
	"github.com/lukaszgryglicki/polyhedra4d/internal/mesh"
	"github.com/spf13/cobra"
)

func newSubdivideCmd(load loader) *cobra.Command {
	var flags config.SubdivideCfg
	cmd := &cobra.Command{
		Use:   "subdivide",
		Short: "Build a cage (or read a mesh), subdivide it and write .obj, .stl, .glb or .gltf",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			s := &cfg.Subdivide
			f := cmd.Flags()
			if f.Changed("cage") {
				s.Cage, s.Input = flags.Cage, ""
			}
			if f.Changed("input") {
				s.Input = flags.Input
			}
			if f.Changed("morph") {
				s.Morph = flags.Morph
			}
			if f.Changed("rounds") {
				s.Rounds = flags.Rounds
			}
			if f.Changed("out") {
				s.Out = flags.Out
			}
			if f.Changed("simplify") {
				s.Simplify = flags.Simplify
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runSubdivide(cmd, *s)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.Cage, "cage", config.Cage, "cage: "+strings.Join(config.Cages, ", "))
	f.StringVarP(&flags.Input, "input", "i", "", "input mesh (.obj or .stl) instead of a cage")
	f.Float64Var(&flags.Morph, "morph", 0, "morph parameter t in [0,1] for the morph cage")
	f.IntVarP(&flags.Rounds, "rounds", "n", config.Rounds, "subdivision rounds")
	f.StringVarP(&flags.Out, "out", "o", config.SubdivideOut, "output file")
	f.Float64Var(&flags.Simplify, "simplify", 0, "STL only: keep this fraction of triangles")
	return cmd
}

func baseMesh(s config.SubdivideCfg) (*mesh.Mesh, string, error) {
	if s.Input != "" {
		name := strings.TrimSuffix(filepath.Base(s.Input), filepath.Ext(s.Input))
		var (
			m   *mesh.Mesh
			err error
		)
		switch ext := strings.ToLower(filepath.Ext(s.Input)); ext {
		case ".obj":
			m, err = mesh.LoadOBJ(s.Input)
		case ".stl":
			m, err = export.LoadSTL(s.Input, 0)
		default:
			err = fmt.Errorf("unsupported input format %q", ext)
		}
		if err != nil {
			return nil, "", err
		}
		if !s.Transform.IsIdentity() {
			m, err = m.Transformed(s.Transform.Matrix())
		}
		return m, name, err
	}
	var cage *mesh.Cage
	switch s.Cage {
	case "cube":
		cage = mesh.Cube(2)
	case "tetrahedron":
		cage = mesh.Tetrahedron()
	case "morph":
		var err error
		if cage, err = mesh.MorphCage(s.Morph); err != nil {
			return nil, "", err
		}
	default:
		return nil, "", fmt.Errorf("unknown cage %q", s.Cage)
	}
	if !s.Transform.IsIdentity() {
		cage.Transform(s.Transform.Matrix())
	}
	m, err := cage.Build()
	return m, s.Cage, err
}

func runSubdivide(cmd *cobra.Command, s config.SubdivideCfg) error {
	base, name, err := baseMesh(s)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", name, base.Stats())
	m, err := mesh.SubdivideN(base, s.Rounds)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d rounds: %s\n", s.Rounds, m.Stats())
	if strings.EqualFold(filepath.Ext(s.Out), ".obj") {
		err = m.SaveOBJ(s.Out)
	} else {
		err = export.Save(s.Out, export.FromMesh(name, m), export.Options{Simplify: s.Simplify})
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", s.Out)
	return nil
}
