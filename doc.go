// Package astar provides a generic and concurrent A* pathfinding implementation.
//
// It exposes two main entry points:
//
//   - Search: run the algorithm to completion and get a Result.
//   - Stepper: iterate the search one expansion at a time to drive UIs or debugging tools.
//
// Both report the size of the open set (frontier) and the closed set
// (visited) so callers can measure how much of the graph a search touched.
//
// This package is the snapshot search used by the replanning simulator in
// the sub-packages: dynmap rebuilds a grid whose obstacles move every tick,
// and replan runs one full Search per tick, takes a single step and
// advances the world.
package astar
