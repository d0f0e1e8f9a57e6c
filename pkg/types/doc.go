// Package types defines the shared data model for sectorlink:
// link entries and plans, per-entry outcomes, run summaries, and the
// filesystem interface every component operates against.
package types
