// Package generator provides the file-generation toolkit used by mintforge.
//
// Generators produce Operations (file writes, directory creation) that are
// validated before anything touches disk, then executed in order. Writes are
// atomic: content goes to a temp file in the target directory and is renamed
// into place, so a concurrent reader never observes partial content.
//
// Transaction wraps a sequence of generation steps with compensation: each
// successful step registers an undo action, and a failing step unwinds the
// accumulated undos in LIFO order before the error propagates.
package generator
