// Package filesystem provides the production types.FS implementation
// backed by the OS, including the Windows junction fallback for
// directory links.
package filesystem
