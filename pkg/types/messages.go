// Package types holds the JSON wire messages exchanged with game clients.
package types

// ResourceCounts mirrors the engine's resource clutch on the wire. Counts are
// never negative in either direction.
type ResourceCounts struct {
	Brick  int `json:"brick" validate:"min=0"`
	Grain  int `json:"grain" validate:"min=0"`
	Lumber int `json:"lumber" validate:"min=0"`
	Ore    int `json:"ore" validate:"min=0"`
	Wool   int `json:"wool" validate:"min=0"`
}

// ClientMessage is the flat envelope a client submits. Type selects the
// action; the remaining fields are the action-specific payload. Token must
// echo the turn token for turn-scoped actions.
type ClientMessage struct {
	Type  string `json:"type" validate:"required"`
	Token string `json:"token,omitempty" validate:"omitempty,uuid4"`

	Settlement int `json:"settlement,omitempty" validate:"min=0"`
	RoadEnd    int `json:"road_end,omitempty" validate:"min=0"`
	Location   int `json:"location,omitempty" validate:"min=0"`
	Start      int `json:"start,omitempty" validate:"min=0"`
	End        int `json:"end,omitempty" validate:"min=0"`

	FirstStart  int `json:"first_start,omitempty" validate:"min=0"`
	FirstEnd    int `json:"first_end,omitempty" validate:"min=0"`
	SecondStart int `json:"second_start,omitempty" validate:"min=0"`
	SecondEnd   int `json:"second_end,omitempty" validate:"min=0"`

	Hex int `json:"hex,omitempty" validate:"min=0"`

	Resource  string `json:"resource,omitempty"`
	First     string `json:"first,omitempty"`
	Second    string `json:"second,omitempty"`
	Giving    string `json:"giving,omitempty"`
	Receiving string `json:"receiving,omitempty"`

	Offered   *ResourceCounts `json:"offered,omitempty"`
	Wanted    *ResourceCounts `json:"wanted,omitempty"`
	Resources *ResourceCounts `json:"resources,omitempty"`

	SellerID string `json:"seller_id,omitempty" validate:"omitempty,uuid4"`
	VictimID string `json:"victim_id,omitempty" validate:"omitempty,uuid4"`
}

// ServerMessage wraps one outbound game event.
type ServerMessage struct {
	Type  string `json:"type"`
	Event any    `json:"event,omitempty"`
	Error string `json:"error,omitempty"`
}
