package cellset

// View is a table of NumRows rows and len(Columns()) columns
// whose cells are addressed by zero based row and column indices.
type View interface {
	// Title of the table
	Title() string
	// Columns returns the column titles
	Columns() []string
	// NumRows returns the number of rows
	NumRows() int
	// Cell returns the value of a cell
	// or nil if row or col are out of bounds.
	Cell(row, col int) any
}
