// Package testutil provides the in-memory types.FS implementation used
// by tests, with per-operation fault injection for simulating
// cross-volume and privilege failures.
package testutil
