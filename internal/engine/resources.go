package engine

// ResourceKind identifies one of the five tradable resources.
type ResourceKind string

const (
	ResourceBrick  ResourceKind = "brick"
	ResourceGrain  ResourceKind = "grain"
	ResourceLumber ResourceKind = "lumber"
	ResourceOre    ResourceKind = "ore"
	ResourceWool   ResourceKind = "wool"
)

// ResourceKinds lists every kind in a fixed order. Anything that walks a
// clutch (robbery index selection, error text) relies on this order.
var ResourceKinds = []ResourceKind{ResourceBrick, ResourceGrain, ResourceLumber, ResourceOre, ResourceWool}

// ResourceClutch is a bundle of resource counts. The zero value is empty.
type ResourceClutch struct {
	Brick  int `json:"brick"`
	Grain  int `json:"grain"`
	Lumber int `json:"lumber"`
	Ore    int `json:"ore"`
	Wool   int `json:"wool"`
}

// Build costs.
var (
	RoadCost       = ResourceClutch{Brick: 1, Lumber: 1}
	SettlementCost = ResourceClutch{Brick: 1, Grain: 1, Lumber: 1, Wool: 1}
	CityCost       = ResourceClutch{Grain: 2, Ore: 3}
	DevCardCost    = ResourceClutch{Grain: 1, Ore: 1, Wool: 1}
)

// OfKind returns a clutch holding count of a single kind.
func OfKind(kind ResourceKind, count int) ResourceClutch {
	var c ResourceClutch
	c.SetCount(kind, count)
	return c
}

func (c ResourceClutch) Count(kind ResourceKind) int {
	switch kind {
	case ResourceBrick:
		return c.Brick
	case ResourceGrain:
		return c.Grain
	case ResourceLumber:
		return c.Lumber
	case ResourceOre:
		return c.Ore
	case ResourceWool:
		return c.Wool
	}
	return 0
}

func (c *ResourceClutch) SetCount(kind ResourceKind, count int) {
	switch kind {
	case ResourceBrick:
		c.Brick = count
	case ResourceGrain:
		c.Grain = count
	case ResourceLumber:
		c.Lumber = count
	case ResourceOre:
		c.Ore = count
	case ResourceWool:
		c.Wool = count
	}
}

// Total is the number of cards in the clutch.
func (c ResourceClutch) Total() int {
	return c.Brick + c.Grain + c.Lumber + c.Ore + c.Wool
}

func (c ResourceClutch) IsEmpty() bool { return c.Total() == 0 }

func (c ResourceClutch) Add(other ResourceClutch) ResourceClutch {
	return ResourceClutch{
		Brick:  c.Brick + other.Brick,
		Grain:  c.Grain + other.Grain,
		Lumber: c.Lumber + other.Lumber,
		Ore:    c.Ore + other.Ore,
		Wool:   c.Wool + other.Wool,
	}
}

func (c ResourceClutch) Subtract(other ResourceClutch) ResourceClutch {
	return ResourceClutch{
		Brick:  c.Brick - other.Brick,
		Grain:  c.Grain - other.Grain,
		Lumber: c.Lumber - other.Lumber,
		Ore:    c.Ore - other.Ore,
		Wool:   c.Wool - other.Wool,
	}
}

// HasNegative reports whether any component is below zero. Client-supplied
// clutches must be screened with this before any arithmetic; Covers and the
// total checks are meaningless on negative counts.
func (c ResourceClutch) HasNegative() bool {
	return c.Brick < 0 || c.Grain < 0 || c.Lumber < 0 || c.Ore < 0 || c.Wool < 0
}

// Covers reports whether c has at least as many of every kind as other.
func (c ResourceClutch) Covers(other ResourceClutch) bool {
	return c.Brick >= other.Brick &&
		c.Grain >= other.Grain &&
		c.Lumber >= other.Lumber &&
		c.Ore >= other.Ore &&
		c.Wool >= other.Wool
}

// KindAt maps a card index in [0, Total()) to a kind, walking kinds in the
// fixed order. Used to turn a random index into a stolen resource.
func (c ResourceClutch) KindAt(index int) (ResourceKind, bool) {
	for _, kind := range ResourceKinds {
		n := c.Count(kind)
		if index < n {
			return kind, true
		}
		index -= n
	}
	return "", false
}
