// Package document provides Field, an in-memory single-document text
// control that implements the textinput capability contracts.
//
// Offsets:
//
// Content is stored as UTF-8 and addressed by byte offsets internally.
// Positions handed out through textinput.Position always sit on grapheme
// cluster boundaries, and character offsets (PositionFrom, marked text
// spans) count grapheme clusters, so "e" followed by a combining accent or
// a flag emoji moves as one character.
//
// Editing Model:
//
//   - InsertText replaces the marked text if any, else the selection,
//     and leaves a collapsed cursor after the inserted text
//   - DeleteBackward removes the selection, or the cluster before the cursor
//   - SetMarkedText replaces the marked text (or selection), marks the
//     result and selects a span inside it
//   - UnmarkText commits the marked text in place
//
// A Field may have no selection at all (ClearSelection), which models a
// control that is not accepting input.
//
// Thread Safety:
//
// All Field methods are safe for concurrent use.
package document
