package engine

import "github.com/google/uuid"

// EventKind tags the closed set of outbound event variants.
type EventKind string

const (
	EvtGameJoined          EventKind = "GameJoined"
	EvtPlayerJoined        EventKind = "PlayerJoined"
	EvtPlayerOrder         EventKind = "PlayerOrder"
	EvtPlaceSetup          EventKind = "PlaceSetupInfrastructure"
	EvtSetupPlaced         EventKind = "SetupInfrastructurePlaced"
	EvtStartingResources   EventKind = "StartingResources"
	EvtConfirmGameStart    EventKind = "ConfirmGameStart"
	EvtStartTurn           EventKind = "StartTurn"
	EvtChooseLostResources EventKind = "ChooseLostResources"
	EvtResourcesLost       EventKind = "ResourcesLost"
	EvtRobberPlaced        EventKind = "RobberPlaced"
	EvtRobbingChoices      EventKind = "RobbingChoices"
	EvtResourceStolen      EventKind = "ResourceStolen"
	EvtResourceTheftNotice EventKind = "ResourceTheftNotice"
	EvtRoadSegmentPlaced   EventKind = "RoadSegmentPlaced"
	EvtSettlementPlaced    EventKind = "SettlementPlaced"
	EvtCityPlaced          EventKind = "CityPlaced"
	EvtDevCardBought       EventKind = "DevelopmentCardBought"
	EvtKnightPlayed        EventKind = "KnightCardPlayed"
	EvtMonopolyPlayed      EventKind = "MonopolyCardPlayed"
	EvtYearOfPlentyPlayed  EventKind = "YearOfPlentyCardPlayed"
	EvtRoadBuildingPlayed  EventKind = "RoadBuildingCardPlayed"
	EvtLargestArmyChanged  EventKind = "LargestArmyChanged"
	EvtLongestRoadBuilt    EventKind = "LongestRoadBuilt"
	EvtDirectTradeOffer    EventKind = "MakeDirectTradeOffer"
	EvtDirectTradeAnswer   EventKind = "AnswerDirectTradeOffer"
	EvtDirectTradeAccepted EventKind = "AcceptDirectTrade"
	EvtBankTrade           EventKind = "TradeWithBank"
	EvtGameError           EventKind = "GameError"
	EvtGameWin             EventKind = "GameWin"
	EvtPlayerQuit          EventKind = "PlayerQuit"
	EvtTurnTimeout         EventKind = "TurnTimeout"
	EvtSessionEnded        EventKind = "SessionEnded"
	EvtGameState           EventKind = "GameState"
)

// GameEvent is an immutable record of a state transition, broadcast to some
// subset of the session's players. Events are never mutated after creation.
type GameEvent interface {
	Kind() EventKind
}

// GameJoinedEvent confirms a join back to the joining client only.
type GameJoinedEvent struct {
	PlayerID  uuid.UUID `json:"player_id"`
	SessionID uuid.UUID `json:"session_id"`
}

// PlayerJoinedEvent tells everyone already in the lobby who arrived.
type PlayerJoinedEvent struct {
	PlayerID uuid.UUID `json:"player_id"`
	Name     string    `json:"name"`
}

// PlayerOrderEvent fixes the turn order at the start of setup.
type PlayerOrderEvent struct {
	PlayerIDs []uuid.UUID `json:"player_ids"`
}

// PlaceSetupInfrastructureEvent prompts one player to take their setup
// placement and hands them the turn token for it.
type PlaceSetupInfrastructureEvent struct {
	PlayerID uuid.UUID `json:"player_id"`
	Token    uuid.UUID `json:"token"`
}

type SetupInfrastructurePlacedEvent struct {
	PlayerID   uuid.UUID `json:"player_id"`
	Settlement Location  `json:"settlement"`
	RoadEnd    Location  `json:"road_end"`
}

// StartingResourcesEvent grants the setup pass 2 resources.
type StartingResourcesEvent struct {
	PlayerID  uuid.UUID      `json:"player_id"`
	Resources ResourceClutch `json:"resources"`
}

// ConfirmGameStartEvent asks every player to confirm or quit before main play.
type ConfirmGameStartEvent struct{}

// StartTurnEvent carries both dice values and the full per-player grant. Token
// is populated only on the copy sent to the acting player.
type StartTurnEvent struct {
	PlayerID  uuid.UUID                    `json:"player_id"`
	Dice1     int                          `json:"dice1"`
	Dice2     int                          `json:"dice2"`
	Collected map[uuid.UUID]ResourceClutch `json:"collected,omitempty"`
	Token     uuid.UUID                    `json:"token,omitempty"`
}

// ChooseLostResourcesEvent asks one over-limit player to discard Count cards.
type ChooseLostResourcesEvent struct {
	PlayerID uuid.UUID `json:"player_id"`
	Count    int       `json:"count"`
}

type ResourcesLostEvent struct {
	PlayerID  uuid.UUID      `json:"player_id"`
	Resources ResourceClutch `json:"resources"`
}

type RobberPlacedEvent struct {
	PlayerID uuid.UUID `json:"player_id"`
	Hex      HexID     `json:"hex"`
}

// RobbingChoicesEvent lists robbery candidates and their card counts; sent to
// the acting player only.
type RobbingChoicesEvent struct {
	PlayerID uuid.UUID         `json:"player_id"`
	Choices  map[uuid.UUID]int `json:"choices"`
}

// ResourceStolenEvent names the stolen resource; sent to thief and victim.
type ResourceStolenEvent struct {
	ThiefID  uuid.UUID    `json:"thief_id"`
	VictimID uuid.UUID    `json:"victim_id"`
	Resource ResourceKind `json:"resource"`
}

// ResourceTheftNoticeEvent is the less detailed variant everyone else gets.
type ResourceTheftNoticeEvent struct {
	ThiefID  uuid.UUID `json:"thief_id"`
	VictimID uuid.UUID `json:"victim_id"`
}

type RoadSegmentPlacedEvent struct {
	PlayerID uuid.UUID `json:"player_id"`
	Start    Location  `json:"start"`
	End      Location  `json:"end"`
}

type SettlementPlacedEvent struct {
	PlayerID uuid.UUID `json:"player_id"`
	Location Location  `json:"location"`
}

type CityPlacedEvent struct {
	PlayerID uuid.UUID `json:"player_id"`
	Location Location  `json:"location"`
}

// DevelopmentCardBoughtEvent reveals the card to the buyer only; other
// players receive a copy with Card empty.
type DevelopmentCardBoughtEvent struct {
	PlayerID uuid.UUID           `json:"player_id"`
	Card     DevelopmentCardType `json:"card,omitempty"`
}

type KnightCardPlayedEvent struct {
	PlayerID uuid.UUID `json:"player_id"`
	Hex      HexID     `json:"hex"`
}

type MonopolyCardPlayedEvent struct {
	PlayerID uuid.UUID         `json:"player_id"`
	Resource ResourceKind      `json:"resource"`
	Taken    map[uuid.UUID]int `json:"taken"`
}

type YearOfPlentyCardPlayedEvent struct {
	PlayerID uuid.UUID    `json:"player_id"`
	First    ResourceKind `json:"first"`
	Second   ResourceKind `json:"second"`
}

type RoadBuildingCardPlayedEvent struct {
	PlayerID    uuid.UUID `json:"player_id"`
	FirstStart  Location  `json:"first_start"`
	FirstEnd    Location  `json:"first_end"`
	SecondStart Location  `json:"second_start"`
	SecondEnd   Location  `json:"second_end"`
}

// LargestArmyChangedEvent names old and new holder; PreviousPlayerID is zero
// on the first award.
type LargestArmyChangedEvent struct {
	PreviousPlayerID uuid.UUID `json:"previous_player_id,omitempty"`
	NewPlayerID      uuid.UUID `json:"new_player_id"`
	Knights          int       `json:"knights"`
}

type LongestRoadBuiltEvent struct {
	PreviousPlayerID uuid.UUID `json:"previous_player_id,omitempty"`
	NewPlayerID      uuid.UUID `json:"new_player_id"`
	Length           int       `json:"length"`
}

type MakeDirectTradeOfferEvent struct {
	BuyerID uuid.UUID      `json:"buyer_id"`
	Offered ResourceClutch `json:"offered"`
	Wanted  ResourceClutch `json:"wanted"`
}

type AnswerDirectTradeOfferEvent struct {
	SellerID uuid.UUID      `json:"seller_id"`
	Offered  ResourceClutch `json:"offered"`
	Wanted   ResourceClutch `json:"wanted"`
}

type AcceptDirectTradeEvent struct {
	BuyerID    uuid.UUID      `json:"buyer_id"`
	SellerID   uuid.UUID      `json:"seller_id"`
	BuyerGave  ResourceClutch `json:"buyer_gave"`
	SellerGave ResourceClutch `json:"seller_gave"`
}

type TradeWithBankEvent struct {
	PlayerID uuid.UUID      `json:"player_id"`
	Gave     ResourceClutch `json:"gave"`
	Received ResourceClutch `json:"received"`
}

// GameErrorEvent reports a rule or protocol violation to the offending player
// only. Never fatal; the session keeps processing.
type GameErrorEvent struct {
	PlayerID uuid.UUID `json:"player_id"`
	Code     ErrorCode `json:"code"`
	Message  string    `json:"message"`
}

type GameWinEvent struct {
	PlayerID      uuid.UUID `json:"player_id"`
	VictoryPoints int       `json:"victory_points"`
}

type PlayerQuitEvent struct {
	PlayerID uuid.UUID `json:"player_id"`
}

// TurnTimeoutEvent reports a player forfeited by exceeding the turn time limit.
type TurnTimeoutEvent struct {
	PlayerID uuid.UUID `json:"player_id"`
}

type SessionEndedEvent struct{}

// PlayerState is one player's slice of a GameStateEvent snapshot.
type PlayerState struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Resources      ResourceClutch `json:"resources"`
	HeldCards      int            `json:"held_cards"`
	PlayedKnights  int            `json:"played_knights"`
	VictoryPoints  int            `json:"victory_points"`
	HasLargestArmy bool           `json:"has_largest_army"`
	HasLongestRoad bool           `json:"has_longest_road"`
}

// GameStateEvent answers a request-state action with a full snapshot.
type GameStateEvent struct {
	SessionID     uuid.UUID     `json:"session_id"`
	CurrentPlayer uuid.UUID     `json:"current_player,omitempty"`
	WinnerID      uuid.UUID     `json:"winner_id,omitempty"`
	RobberHex     HexID         `json:"robber_hex"`
	Players       []PlayerState `json:"players"`
}

func (GameJoinedEvent) Kind() EventKind                { return EvtGameJoined }
func (PlayerJoinedEvent) Kind() EventKind              { return EvtPlayerJoined }
func (PlayerOrderEvent) Kind() EventKind               { return EvtPlayerOrder }
func (PlaceSetupInfrastructureEvent) Kind() EventKind  { return EvtPlaceSetup }
func (SetupInfrastructurePlacedEvent) Kind() EventKind { return EvtSetupPlaced }
func (StartingResourcesEvent) Kind() EventKind         { return EvtStartingResources }
func (ConfirmGameStartEvent) Kind() EventKind          { return EvtConfirmGameStart }
func (StartTurnEvent) Kind() EventKind                 { return EvtStartTurn }
func (ChooseLostResourcesEvent) Kind() EventKind       { return EvtChooseLostResources }
func (ResourcesLostEvent) Kind() EventKind             { return EvtResourcesLost }
func (RobberPlacedEvent) Kind() EventKind              { return EvtRobberPlaced }
func (RobbingChoicesEvent) Kind() EventKind            { return EvtRobbingChoices }
func (ResourceStolenEvent) Kind() EventKind            { return EvtResourceStolen }
func (ResourceTheftNoticeEvent) Kind() EventKind       { return EvtResourceTheftNotice }
func (RoadSegmentPlacedEvent) Kind() EventKind         { return EvtRoadSegmentPlaced }
func (SettlementPlacedEvent) Kind() EventKind          { return EvtSettlementPlaced }
func (CityPlacedEvent) Kind() EventKind                { return EvtCityPlaced }
func (DevelopmentCardBoughtEvent) Kind() EventKind     { return EvtDevCardBought }
func (KnightCardPlayedEvent) Kind() EventKind          { return EvtKnightPlayed }
func (MonopolyCardPlayedEvent) Kind() EventKind        { return EvtMonopolyPlayed }
func (YearOfPlentyCardPlayedEvent) Kind() EventKind    { return EvtYearOfPlentyPlayed }
func (RoadBuildingCardPlayedEvent) Kind() EventKind    { return EvtRoadBuildingPlayed }
func (LargestArmyChangedEvent) Kind() EventKind        { return EvtLargestArmyChanged }
func (LongestRoadBuiltEvent) Kind() EventKind          { return EvtLongestRoadBuilt }
func (MakeDirectTradeOfferEvent) Kind() EventKind      { return EvtDirectTradeOffer }
func (AnswerDirectTradeOfferEvent) Kind() EventKind    { return EvtDirectTradeAnswer }
func (AcceptDirectTradeEvent) Kind() EventKind         { return EvtDirectTradeAccepted }
func (TradeWithBankEvent) Kind() EventKind             { return EvtBankTrade }
func (GameErrorEvent) Kind() EventKind                 { return EvtGameError }
func (GameWinEvent) Kind() EventKind                   { return EvtGameWin }
func (PlayerQuitEvent) Kind() EventKind                { return EvtPlayerQuit }
func (TurnTimeoutEvent) Kind() EventKind               { return EvtTurnTimeout }
func (SessionEndedEvent) Kind() EventKind              { return EvtSessionEnded }
func (GameStateEvent) Kind() EventKind                 { return EvtGameState }
