// Package collection implements the page-indexed note collection.
//
// Notes live in an arena keyed by model.NoteID. Each page keeps an ordered
// index of IDs sorted by model.Compare, and a roaring bitmap tracks which
// pages currently hold notes so document-order navigation can skip empty
// stretches.
//
// The collection always spans pages 0..Len()-1 with no holes: growing to a
// page index extends it with empty pages. Removing notes never shrinks it.
//
// A Paged is not safe for concurrent use.
package collection
