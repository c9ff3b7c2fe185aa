// Package cellset implements a set of table cells stored as
// non-overlapping rectangular regions.
//
// It is meant for selections of virtualized tables where whole rows,
// columns or blocks of cells are selected at once and storing one entry
// per selected cell would cost memory proportional to rows times columns.
//
// Besides membership and set algebra the Set follows index changes of
// the table that owns it (rows or columns inserted, removed, replaced
// or moved) and reports cells that were really added or removed
// to a ChangeFunc listener.
package cellset
