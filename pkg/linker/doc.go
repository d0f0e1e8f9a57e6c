// Package linker is the link-establishment engine: per plan entry it
// validates preconditions, picks a mechanism (junction for directories;
// hardlink, symlink, then copy for files), applies it idempotently, and
// reports a structured outcome.
package linker
