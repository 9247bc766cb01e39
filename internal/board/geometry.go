package board

import "github.com/jharte/settlers-backend/internal/engine"

// The fixed geometry uses the columnar numbering: settlement locations run
// down six vertical columns of widths 7/9/11/11/9/7 (0-53), hexes down five
// columns of 3/4/5/4/3 (0-18). Consecutive locations within a column are
// joined by a road edge; columns are joined by 24 horizontal edges.

var (
	colWidth = [6]int{7, 9, 11, 11, 9, 7}
	colStart [6]int

	hexColWidth = [5]int{3, 4, 5, 4, 3}
	hexColStart [5]int

	// neighbors[v] lists every location one road edge away from v.
	neighbors [54][]engine.Location
	// hexVertices[h] lists the six locations touching hex h.
	hexVertices [19][6]engine.Location
	// vertexHexes[v] lists the hexes touching location v.
	vertexHexes [54][]engine.HexID
)

func init() {
	for i := 1; i < 6; i++ {
		colStart[i] = colStart[i-1] + colWidth[i-1]
	}
	for i := 1; i < 5; i++ {
		hexColStart[i] = hexColStart[i-1] + hexColWidth[i-1]
	}

	link := func(a, b int) {
		neighbors[a] = append(neighbors[a], engine.Location(b))
		neighbors[b] = append(neighbors[b], engine.Location(a))
	}

	// Vertical edges within each column.
	for c := 0; c < 6; c++ {
		for o := 0; o < colWidth[c]-1; o++ {
			link(colStart[c]+o, colStart[c]+o+1)
		}
	}

	// Horizontal edges between adjacent columns. Growing transitions connect
	// even offsets left to offset+1 right; the middle pair connects even to
	// even; shrinking transitions mirror the growing ones.
	for c := 0; c < 5; c++ {
		switch {
		case colWidth[c] < colWidth[c+1]:
			for o := 0; o < colWidth[c]; o += 2 {
				link(colStart[c]+o, colStart[c+1]+o+1)
			}
		case colWidth[c] == colWidth[c+1]:
			for o := 0; o < colWidth[c]; o += 2 {
				link(colStart[c]+o, colStart[c+1]+o)
			}
		default:
			for o := 1; o < colWidth[c]; o += 2 {
				link(colStart[c]+o, colStart[c+1]+o-1)
			}
		}
	}

	// Hex incidence: three locations on the left column, three on the right.
	for c := 0; c < 5; c++ {
		for k := 0; k < hexColWidth[c]; k++ {
			h := hexColStart[c] + k
			var leftBase, rightBase int
			switch {
			case colWidth[c] < colWidth[c+1]: // growing
				leftBase, rightBase = 2*k, 2*k+1
			case colWidth[c] == colWidth[c+1]: // middle
				leftBase, rightBase = 2*k, 2*k
			default: // shrinking
				leftBase, rightBase = 2*k+1, 2*k
			}
			for i := 0; i < 3; i++ {
				hexVertices[h][i] = engine.Location(colStart[c] + leftBase + i)
				hexVertices[h][3+i] = engine.Location(colStart[c+1] + rightBase + i)
			}
			for _, v := range hexVertices[h] {
				vertexHexes[v] = append(vertexHexes[v], engine.HexID(h))
			}
		}
	}
}

func onBoard(loc engine.Location) bool {
	return loc >= 0 && loc <= engine.LastLocation
}

func adjacent(a, b engine.Location) bool {
	for _, n := range neighbors[a] {
		if n == b {
			return true
		}
	}
	return false
}

// edge is a normalized road key (lo < hi).
type edge struct {
	lo, hi engine.Location
}

func edgeKey(a, b engine.Location) edge {
	if a > b {
		a, b = b, a
	}
	return edge{lo: a, hi: b}
}
