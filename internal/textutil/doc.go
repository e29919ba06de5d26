// Package textutil provides small text helpers shared by the note renderer.
//
// The primary use cases are:
//   - Splitting transcript text into sentences with a punctuation heuristic
//   - Grouping sentences into fixed-size paragraphs
//   - Turning arbitrary names into filesystem-safe tokens
package textutil
