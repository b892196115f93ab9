// Copyright © 2024 Galvanized Logic Inc.

package main

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gazed/physcore/math/lin"
	"github.com/gazed/physcore/physics"
)

// SceneConfig is a string-based yaml scene description, the same way
// the teacher pack's load/shd.go keeps its shader config string-based
// "so that it is easier to read". It generalizes PhysicsConfig (spec
// §4.I / §6) plus a flat list of bodies to spawn before stepping.
type SceneConfig struct {
	Name    string `yaml:"name"`
	Steps   int    `yaml:"steps"`
	Gravity struct {
		X float64 `yaml:"x"`
		Y float64 `yaml:"y"`
		Z float64 `yaml:"z"`
	} `yaml:"gravity"`
	TimeStep         float64 `yaml:"time_step"`
	SolverIterations int     `yaml:"solver_iterations"`

	Rigids []rigidConfig `yaml:"rigids"`
	Ropes  []ropeConfig  `yaml:"ropes"`
	Fluids []fluidConfig `yaml:"fluids"`
}

type rigidConfig struct {
	Shape    string    `yaml:"shape"` // sphere, box, capsule, cylinder
	Radius   float64   `yaml:"radius"`
	HalfX    float64   `yaml:"half_x"`
	HalfY    float64   `yaml:"half_y"`
	HalfZ    float64   `yaml:"half_z"`
	Height   float64   `yaml:"height"`
	Mass     float64   `yaml:"mass"`
	Position []float64 `yaml:"position"` // [x, y, z]
}

// ropeConfig spawns a chain of point masses connected by distance
// constraints, spec §8's "rope chain" scenario.
type ropeConfig struct {
	Links      int       `yaml:"links"`
	LinkLength float64   `yaml:"link_length"`
	Mass       float64   `yaml:"mass"`
	Anchor     []float64 `yaml:"anchor"` // [x, y, z], first link's fixed end
	Stiffness  float64   `yaml:"stiffness"`
}

type fluidConfig struct {
	Seed        [][]float64 `yaml:"seed"` // list of [x, y, z]; takes precedence over SeedBox
	RestDensity float64     `yaml:"rest_density"`
	Bounds      struct {
		Min []float64 `yaml:"min"`
		Max []float64 `yaml:"max"`
	} `yaml:"bounds"`

	// SeedBox, when Seed is empty, generates the initial particle block
	// with physics.SampleGridJittered instead of listing coordinates by
	// hand, per SPEC_FULL.md §C's sampling.rs-grounded seeding helper.
	SeedBox *struct {
		Min     []float64 `yaml:"min"`
		Max     []float64 `yaml:"max"`
		Spacing float64   `yaml:"spacing"`
		Jitter  float64   `yaml:"jitter"`
		Seed    int64     `yaml:"seed"`
	} `yaml:"seed_box"`
}

// loadScene parses a yaml scene description, following load/shd.go's
// Shd(name, data) -> (*Shader, error) pattern.
func loadScene(data []byte) (*SceneConfig, error) {
	cfg := &SceneConfig{Steps: 120, TimeStep: 1.0 / 60.0, SolverIterations: 8}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("loadScene: yaml %w", err)
	}
	return cfg, nil
}

func v3(xyz []float64) lin.V3 {
	if len(xyz) < 3 {
		return lin.V3{}
	}
	return lin.V3{X: xyz[0], Y: xyz[1], Z: xyz[2]}
}

// populate spawns every rigid/rope/fluid body SceneConfig names into w
// and applies the scene's gravity/Δt/iteration settings.
func (cfg *SceneConfig) populate(w *physics.World) error {
	w.SetGravity(lin.V3{X: cfg.Gravity.X, Y: cfg.Gravity.Y, Z: cfg.Gravity.Z})
	if cfg.TimeStep > 0 {
		if err := w.SetTimeStep(cfg.TimeStep); err != nil {
			return err
		}
	}
	if cfg.SolverIterations > 0 {
		if err := w.SetSolverIterations(cfg.SolverIterations); err != nil {
			return err
		}
	}

	for _, r := range cfg.Rigids {
		spec, err := r.shapeSpec()
		if err != nil {
			return err
		}
		w.SpawnRigid(spec, r.Mass, v3(r.Position))
	}

	for _, rope := range cfg.Ropes {
		if err := rope.spawn(w); err != nil {
			return err
		}
	}

	for _, f := range cfg.Fluids {
		bounds := lin.AABB{Min: v3(f.Bounds.Min), Max: v3(f.Bounds.Max)}
		var seed []lin.V3
		switch {
		case len(f.Seed) > 0:
			seed = make([]lin.V3, len(f.Seed))
			for i, p := range f.Seed {
				seed[i] = v3(p)
			}
		case f.SeedBox != nil:
			box := lin.AABB{Min: v3(f.SeedBox.Min), Max: v3(f.SeedBox.Max)}
			seed = physics.SampleGridJittered(box, f.SeedBox.Spacing, f.SeedBox.Jitter, f.SeedBox.Seed)
		}
		w.SpawnFluid(seed, f.RestDensity, bounds)
	}

	return nil
}

func (r rigidConfig) shapeSpec() (physics.ShapeSpec, error) {
	switch r.Shape {
	case "", "sphere":
		return physics.ShapeSpec{Type: physics.ShapeSphere, Radius: r.Radius}, nil
	case "box":
		return physics.ShapeSpec{Type: physics.ShapeBox, HalfX: r.HalfX, HalfY: r.HalfY, HalfZ: r.HalfZ}, nil
	case "capsule":
		return physics.ShapeSpec{Type: physics.ShapeCapsule, Radius: r.Radius, Height: r.Height}, nil
	case "cylinder":
		return physics.ShapeSpec{Type: physics.ShapeCylinder, Radius: r.Radius, Height: r.Height}, nil
	default:
		return physics.ShapeSpec{}, fmt.Errorf("loadScene: unsupported rigid shape %q", r.Shape)
	}
}

// spawn builds rope.Links point-mass rigid bodies hanging from anchor
// and connects consecutive links (and the anchor itself) with distance
// constraints, per spec §8's rope-chain scenario.
func (rope ropeConfig) spawn(w *physics.World) error {
	if rope.Links <= 0 {
		return nil
	}
	linkLen := rope.LinkLength
	if linkLen <= 0 {
		linkLen = 0.5
	}
	anchor := v3(rope.Anchor)

	anchorHandle := w.SpawnRigid(physics.ShapeSpec{Type: physics.ShapeSphere, Radius: 0.05}, 0, anchor)
	prev := anchorHandle
	prevPos := anchor
	for i := 0; i < rope.Links; i++ {
		pos := lin.V3{X: prevPos.X, Y: prevPos.Y - linkLen, Z: prevPos.Z}
		h := w.SpawnRigid(physics.ShapeSpec{Type: physics.ShapeSphere, Radius: 0.08}, rope.Mass, pos)
		w.AddConstraint(physics.Constraint{
			Kind:       physics.ConstraintDistance,
			A:          prev,
			B:          h,
			RestLength: linkLen,
			Stiffness:  rope.Stiffness,
		})
		prev, prevPos = h, pos
	}
	return nil
}
