// Package document validates a renderer output document and indexes it.
//
// Indexing resolves every line segment endpoint, given as a pixel
// coordinate, to the index of the matching pin location. The first pin at a
// coordinate wins when two pins share one. Each resolved pair is stored in
// canonical (min, max) order and segments keep their input order.
//
// All checks run before anything is returned, so a caller never sees a
// partially indexed document.
package document
