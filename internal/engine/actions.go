package engine

import "github.com/google/uuid"

// ActionType tags one of the closed set of player action kinds.
type ActionType string

const (
	ActionPlaceSetupInfrastructure ActionType = "place_setup_infrastructure"
	ActionConfirmGameStart         ActionType = "confirm_game_start"
	ActionPlaceRoadSegment         ActionType = "place_road_segment"
	ActionPlaceSettlement          ActionType = "place_settlement"
	ActionPlaceCity                ActionType = "place_city"
	ActionBuyDevelopmentCard       ActionType = "buy_development_card"
	ActionPlayKnightCard           ActionType = "play_knight_card"
	ActionPlayMonopolyCard         ActionType = "play_monopoly_card"
	ActionPlayYearOfPlentyCard     ActionType = "play_year_of_plenty_card"
	ActionPlayRoadBuildingCard     ActionType = "play_road_building_card"
	ActionTradeWithBank            ActionType = "trade_with_bank"
	ActionMakeDirectTradeOffer     ActionType = "make_direct_trade_offer"
	ActionAnswerDirectTradeOffer   ActionType = "answer_direct_trade_offer"
	ActionAcceptDirectTrade        ActionType = "accept_direct_trade"
	ActionPlaceRobber              ActionType = "place_robber"
	ActionSelectResourceFromPlayer ActionType = "select_resource_from_player"
	ActionLoseResources            ActionType = "lose_resources"
	ActionEndTurn                  ActionType = "end_turn"
	ActionQuitGame                 ActionType = "quit_game"
	ActionRequestState             ActionType = "request_state"
)

// IsAutomatic reports whether the type bypasses turn-ownership validation. A
// disconnecting or state-polling client is never blocked by whose turn it is.
func (t ActionType) IsAutomatic() bool {
	return t == ActionQuitGame || t == ActionRequestState
}

// PlayerAction is the closed variant over everything a client can submit.
// Implementations are immutable once constructed and consumed exactly once.
type PlayerAction interface {
	ActionType() ActionType
	Initiator() uuid.UUID
	TurnToken() uuid.UUID
}

// Base carries the fields every action shares. Token is the per-turn
// capability value; automatic and out-of-turn actions leave it zero.
type Base struct {
	PlayerID uuid.UUID
	Token    uuid.UUID
}

func (b Base) Initiator() uuid.UUID { return b.PlayerID }
func (b Base) TurnToken() uuid.UUID { return b.Token }

type PlaceSetupInfrastructureAction struct {
	Base
	Settlement Location
	RoadEnd    Location
}

type ConfirmGameStartAction struct{ Base }

type PlaceRoadSegmentAction struct {
	Base
	Start Location
	End   Location
}

type PlaceSettlementAction struct {
	Base
	Location Location
}

type PlaceCityAction struct {
	Base
	Location Location
}

type BuyDevelopmentCardAction struct{ Base }

type PlayKnightCardAction struct {
	Base
	NewRobberHex HexID
}

type PlayMonopolyCardAction struct {
	Base
	Resource ResourceKind
}

type PlayYearOfPlentyCardAction struct {
	Base
	First  ResourceKind
	Second ResourceKind
}

type PlayRoadBuildingCardAction struct {
	Base
	FirstStart  Location
	FirstEnd    Location
	SecondStart Location
	SecondEnd   Location
}

type TradeWithBankAction struct {
	Base
	Giving    ResourceKind
	Receiving ResourceKind
}

type MakeDirectTradeOfferAction struct {
	Base
	Offered ResourceClutch
	Wanted  ResourceClutch
}

type AnswerDirectTradeOfferAction struct {
	Base
	Offered ResourceClutch
	Wanted  ResourceClutch
}

type AcceptDirectTradeAction struct {
	Base
	SellerID uuid.UUID
}

type PlaceRobberAction struct {
	Base
	Hex HexID
}

type SelectResourceFromPlayerAction struct {
	Base
	Victim uuid.UUID
}

type LoseResourcesAction struct {
	Base
	Resources ResourceClutch
}

type EndTurnAction struct{ Base }

type QuitGameAction struct{ Base }

type RequestStateAction struct{ Base }

func (PlaceSetupInfrastructureAction) ActionType() ActionType { return ActionPlaceSetupInfrastructure }
func (ConfirmGameStartAction) ActionType() ActionType         { return ActionConfirmGameStart }
func (PlaceRoadSegmentAction) ActionType() ActionType         { return ActionPlaceRoadSegment }
func (PlaceSettlementAction) ActionType() ActionType          { return ActionPlaceSettlement }
func (PlaceCityAction) ActionType() ActionType                { return ActionPlaceCity }
func (BuyDevelopmentCardAction) ActionType() ActionType       { return ActionBuyDevelopmentCard }
func (PlayKnightCardAction) ActionType() ActionType           { return ActionPlayKnightCard }
func (PlayMonopolyCardAction) ActionType() ActionType         { return ActionPlayMonopolyCard }
func (PlayYearOfPlentyCardAction) ActionType() ActionType     { return ActionPlayYearOfPlentyCard }
func (PlayRoadBuildingCardAction) ActionType() ActionType     { return ActionPlayRoadBuildingCard }
func (TradeWithBankAction) ActionType() ActionType            { return ActionTradeWithBank }
func (MakeDirectTradeOfferAction) ActionType() ActionType     { return ActionMakeDirectTradeOffer }
func (AnswerDirectTradeOfferAction) ActionType() ActionType   { return ActionAnswerDirectTradeOffer }
func (AcceptDirectTradeAction) ActionType() ActionType        { return ActionAcceptDirectTrade }
func (PlaceRobberAction) ActionType() ActionType              { return ActionPlaceRobber }
func (SelectResourceFromPlayerAction) ActionType() ActionType { return ActionSelectResourceFromPlayer }
func (LoseResourcesAction) ActionType() ActionType            { return ActionLoseResources }
func (EndTurnAction) ActionType() ActionType                  { return ActionEndTurn }
func (QuitGameAction) ActionType() ActionType                 { return ActionQuitGame }
func (RequestStateAction) ActionType() ActionType             { return ActionRequestState }
