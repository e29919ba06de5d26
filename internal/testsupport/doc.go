// Package testsupport provides shared helpers for voxnote tests: isolated
// configs rooted in t.TempDir and stub executables on PATH.
package testsupport
