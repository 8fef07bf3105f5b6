package maze

// CellKind classifies a single cell of the maze grid.
type CellKind int

const (
	Empty    CellKind = iota // Empty cells can be traversed.
	Obstacle                 // Obstacle cells block traversal.
)

// String returns the symbol used for the kind in textual grids.
func (k CellKind) String() string {
	if k == Obstacle {
		return "#"
	}
	return "."
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row" bson:"row"` // Row index of the cell
	Col int `json:"col" bson:"col"` // Column index of the cell
}

// GetRow returns the row index of the cell.
func (cp CellPosition) GetRow() int {
	return cp.Row
}

// GetCol returns the column index of the cell.
func (cp CellPosition) GetCol() int {
	return cp.Col
}

// right, left, up and down return the orthogonal candidates of a position.
func (cp CellPosition) right() CellPosition { return CellPosition{Row: cp.Row, Col: cp.Col + 1} }
func (cp CellPosition) left() CellPosition  { return CellPosition{Row: cp.Row, Col: cp.Col - 1} }
func (cp CellPosition) up() CellPosition    { return CellPosition{Row: cp.Row - 1, Col: cp.Col} }
func (cp CellPosition) down() CellPosition  { return CellPosition{Row: cp.Row + 1, Col: cp.Col} }
