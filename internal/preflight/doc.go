// Package preflight provides readiness checks for the filesystem paths
// voxnote writes to: the model cache, lock, log, and history directories.
//
// The doctor command renders these next to the external binary checks from
// package deps.
package preflight
