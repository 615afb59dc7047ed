// Package metrics holds sim.Metric implementations computed from the physics
// snapshot after each tick.
package metrics
