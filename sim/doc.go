// Package sim provides the physics and timing core of the double-slit
// simulator.
//
// # Reading Guide
//
// Start with these files to understand the core:
//   - intensity.go: far-field interference × single-slit diffraction model
//   - clock.go: pausable, rate-scaled simulation clock
//   - particles.go: rejection-sampled detection events with staggered reveal times
//   - validate.go: parameter bounds and repair rules applied to every update
//   - simulator.go: the coordinating owner that ties the four together and
//     publishes one Frame per tick
//
// # Architecture
//
// The Simulator is the single owner of validated PhysicsParams, the Clock and
// the current Population. A Loop (loop.go) ticks it from a TimeProvider and
// serialises parameter updates onto the same goroutine, so no locks are needed
// in the core. Display consumers subscribe to Frames:
//   - sim/view/: terminal renderer (tcell)
//   - sim/report/: HTML intensity and histogram report (go-echarts)
//   - sim/audio/: detector click sonification (beep)
//   - sim/trace/: regeneration and repair event recording
//
// The core never fails: invalid parameters are clamped or substituted, a
// degenerate geometry yields a dark screen, and a particle population that runs
// out of sampling attempts is simply smaller.
package sim
