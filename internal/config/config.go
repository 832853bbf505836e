package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lukaszgryglicki/polyhedra4d/internal/cells"
	"github.com/lukaszgryglicki/polyhedra4d/internal/debuglog"
	"github.com/lukaszgryglicki/polyhedra4d/internal/mesh"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	Cage         = "cube"
	Rounds       = 3
	MaxRounds    = 8
	SubdivideOut = "out/subdivided.obj"
	ExploreOut   = "out/cells.glb"
	SeedEdge     = 1.0
)

// Cages that can be built without an input file.
var Cages = []string{"cube", "tetrahedron", "morph"}

// Transform is applied to the cage (or input mesh) points before subdivision.
// Rotation in degrees around X, then Y, then Z.
type Transform struct {
	Translate [3]float64 `json:"translate" toml:"translate" yaml:"translate"`
	RotateDeg [3]float64 `json:"rotateDeg" toml:"rotateDeg" yaml:"rotateDeg"`
	Scale     float64    `json:"scale,omitempty" toml:"scale,omitempty" yaml:"scale,omitempty"` // defaults 1
}

func (t Transform) Matrix() mgl64.Mat4 {
	return mesh.Affine(t.Translate, t.RotateDeg, t.Scale)
}

func (t Transform) IsIdentity() bool {
	return t.Translate == [3]float64{} && t.RotateDeg == [3]float64{} && t.Scale == 1
}

type SubdivideCfg struct {
	Cage      string    `json:"cage,omitempty" toml:"cage,omitempty" yaml:"cage,omitempty"`
	Morph     float64   `json:"morph,omitempty" toml:"morph,omitempty" yaml:"morph,omitempty"`
	Input     string    `json:"input,omitempty" toml:"input,omitempty" yaml:"input,omitempty"` // .obj or .stl, replaces the cage
	Rounds    int       `json:"rounds" toml:"rounds" yaml:"rounds"`
	Transform Transform `json:"transform" toml:"transform" yaml:"transform"`
	Out       string    `json:"out,omitempty" toml:"out,omitempty" yaml:"out,omitempty"`
	Simplify  float64   `json:"simplify,omitempty" toml:"simplify,omitempty" yaml:"simplify,omitempty"` // STL only, (0,1)
}

type ExploreCfg struct {
	Table string  `json:"table,omitempty" toml:"table,omitempty" yaml:"table,omitempty"` // JSON table, default 600-cell
	Steps string  `json:"steps,omitempty" toml:"steps,omitempty" yaml:"steps,omitempty"`
	Edge  float64 `json:"edge,omitempty" toml:"edge,omitempty" yaml:"edge,omitempty"` // seed scale
	Out   string  `json:"out,omitempty" toml:"out,omitempty" yaml:"out,omitempty"`
}

type Config struct {
	Subdivide SubdivideCfg `json:"subdivide" toml:"subdivide" yaml:"subdivide"`
	Explore   ExploreCfg   `json:"explore" toml:"explore" yaml:"explore"`
}

// Default returns a config with every default filled in.
func Default() Config {
	cfg := Config{Subdivide: SubdivideCfg{Rounds: Rounds}}
	cfg.fill()
	return cfg
}

func (c *Config) fill() {
	s := &c.Subdivide
	if s.Cage == "" && s.Input == "" {
		s.Cage = Cage
	}
	if s.Transform.Scale == 0 {
		s.Transform.Scale = 1
	}
	if s.Out == "" {
		s.Out = SubdivideOut
	}
	e := &c.Explore
	if e.Edge <= 0 {
		e.Edge = SeedEdge
	}
	if e.Out == "" {
		e.Out = ExploreOut
	}
}

// Validate rejects values no command can run with.
func (c *Config) Validate() error {
	s := c.Subdivide
	if s.Input == "" {
		ok := false
		for _, name := range Cages {
			ok = ok || s.Cage == name
		}
		if !ok {
			return fmt.Errorf("subdivide: unknown cage %q, want one of %s", s.Cage, strings.Join(Cages, ", "))
		}
	}
	if s.Morph < 0 || s.Morph > 1 || math.IsNaN(s.Morph) {
		return fmt.Errorf("subdivide: morph must be in [0,1], got %g", s.Morph)
	}
	if s.Rounds < 0 || s.Rounds > MaxRounds {
		return fmt.Errorf("subdivide: rounds must be in [0,%d], got %d", MaxRounds, s.Rounds)
	}
	if s.Transform.Scale <= 0 {
		return fmt.Errorf("subdivide: transform scale must be > 0, got %g", s.Transform.Scale)
	}
	if s.Simplify < 0 || s.Simplify > 1 {
		return fmt.Errorf("subdivide: simplify must be in [0,1], got %g", s.Simplify)
	}
	if _, err := cells.ParseSteps(c.Explore.Steps); err != nil {
		return fmt.Errorf("explore: %w", err)
	}
	return nil
}

// Load decodes a .json, .toml or .yaml/.yml file, fills defaults and validates.
// Unknown keys are errors.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	debuglog.Printf("Loaded config from %s: cage=%q input=%q rounds=%d out=%q, explore steps=%q out=%q",
		path, cfg.Subdivide.Cage, cfg.Subdivide.Input, cfg.Subdivide.Rounds, cfg.Subdivide.Out, cfg.Explore.Steps, cfg.Explore.Out)
	return cfg, nil
}

// Decode parses data in the format named by ext (".json", ".toml", ".yaml", ".yml").
func Decode(ext string, data []byte) (*Config, error) {
	cfg := Config{Subdivide: SubdivideCfg{Rounds: Rounds}}
	var err error
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&cfg)
	case ".toml":
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg.fill()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
