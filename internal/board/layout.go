package board

import "github.com/jharte/settlers-backend/internal/engine"

// Hex is one production hex. Resource is empty for the desert, which never
// produces and carries no number.
type Hex struct {
	Resource engine.ResourceKind
	Number   int
}

// desertHex is the board's single resource-less hex; the robber starts there.
const desertHex engine.HexID = 9

// standardLayout is the fixed resource/number distribution, hex-column order.
var standardLayout = [19]Hex{
	{engine.ResourceOre, 10},
	{engine.ResourceGrain, 12},
	{engine.ResourceLumber, 9},

	{engine.ResourceBrick, 8},
	{engine.ResourceWool, 3},
	{engine.ResourceGrain, 4},
	{engine.ResourceOre, 5},

	{engine.ResourceLumber, 11},
	{engine.ResourceWool, 6},
	{"", 0}, // desert
	{engine.ResourceLumber, 5},
	{engine.ResourceGrain, 6},

	{engine.ResourceBrick, 10},
	{engine.ResourceWool, 9},
	{engine.ResourceGrain, 2},
	{engine.ResourceBrick, 3},

	{engine.ResourceOre, 8},
	{engine.ResourceLumber, 4},
	{engine.ResourceWool, 11},
}
