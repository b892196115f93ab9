// Copyright © 2024 Galvanized Logic Inc.

package main

// Builtin scenes mirror spec §8's worked scenarios: a lone body under
// gravity, a resting stack, a hanging rope chain, and a fluid dam
// break. They exist so physdemo runs something sensible with zero
// arguments and so the scenarios spec §8 describes as prose have a
// runnable counterpart.

const freeFallScene = `
name: free_fall
steps: 180
gravity: {x: 0, y: -9.81, z: 0}
time_step: 0.01666667
solver_iterations: 8
rigids:
  - shape: sphere
    radius: 0.5
    mass: 1.0
    position: [0, 10, 0]
`

const stackedSpheresScene = `
name: stacked_spheres_at_rest
steps: 300
gravity: {x: 0, y: -9.81, z: 0}
time_step: 0.01666667
solver_iterations: 8
rigids:
  - shape: box
    half_x: 5
    half_y: 0.25
    half_z: 5
    mass: 0
    position: [0, 0, 0]
  - shape: sphere
    radius: 0.5
    mass: 1.0
    position: [0, 1.0, 0]
  - shape: sphere
    radius: 0.5
    mass: 1.0
    position: [0, 2.01, 0]
  - shape: sphere
    radius: 0.5
    mass: 1.0
    position: [0, 3.02, 0]
`

const ropeChainScene = `
name: rope_chain
steps: 240
gravity: {x: 0, y: -9.81, z: 0}
time_step: 0.01666667
solver_iterations: 12
ropes:
  - links: 10
    link_length: 0.4
    mass: 0.2
    anchor: [0, 8, 0]
    stiffness: 500
`

const damBreakScene = `
name: dam_break
steps: 200
gravity: {x: 0, y: -9.81, z: 0}
time_step: 0.01666667
solver_iterations: 4
fluids:
  - rest_density: 1000
    bounds:
      min: [-2, 0, -2]
      max: [2, 6, 2]
    seed_box:
      min: [-1.9, 0.1, -1.9]
      max: [-0.9, 1.6, -0.9]
      spacing: 0.15
      jitter: 0.1
      seed: 42
`
