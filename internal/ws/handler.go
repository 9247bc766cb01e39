package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/jharte/settlers-backend/internal/engine"
	"github.com/jharte/settlers-backend/internal/hub"
	"github.com/jharte/settlers-backend/pkg/types"
)

var validate = validator.New()

// Handler upgrades a client connection, matches it into a session through
// the hub, and then shuttles actions in and events out. The reader posts to
// the session's action queue and never blocks on game logic.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	log = log.Named("ws")
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		if name == "" {
			http.Error(w, "missing name", http.StatusBadRequest)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan engine.GameEvent, 64)
		reply := make(chan hub.JoinResult, 1)
		h.Inbox() <- hub.JoinGame{Name: name, Outbox: out, Reply: reply}

		var joined hub.JoinResult
		select {
		case joined = <-reply:
		case <-r.Context().Done():
			return
		}
		if joined.Err != nil {
			payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: joined.Err.Error()})
			_ = conn.Write(r.Context(), websocket.MessageText, payload)
			return
		}
		playerID := joined.PlayerID
		session := joined.Session
		log.Info("client joined",
			zap.String("player_id", playerID.String()),
			zap.String("session_id", session.ID.String()))

		// A dropped connection counts as a quit; the session handles a
		// duplicate quit gracefully.
		defer session.Post(engine.QuitGameAction{Base: engine.Base{PlayerID: playerID}})

		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for ev := range out {
				payload, err := json.Marshal(types.ServerMessage{Type: string(ev.Kind()), Event: ev})
				if err != nil {
					continue
				}
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		for {
			_, data, err := conn.Read(r.Context())
			if err != nil {
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}
			if err := validate.Struct(cm); err != nil {
				writeError(r.Context(), conn, "invalid message: "+err.Error())
				continue
			}

			action, err := toAction(cm, playerID)
			if err != nil {
				writeError(r.Context(), conn, err.Error())
				continue
			}
			session.Post(action)
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "Error", Error: msg})
	_ = conn.Write(ctx, websocket.MessageText, payload)
}

func clutch(rc *types.ResourceCounts) engine.ResourceClutch {
	if rc == nil {
		return engine.ResourceClutch{}
	}
	return engine.ResourceClutch{Brick: rc.Brick, Grain: rc.Grain, Lumber: rc.Lumber, Ore: rc.Ore, Wool: rc.Wool}
}

func parseKind(s string) (engine.ResourceKind, error) {
	switch engine.ResourceKind(s) {
	case engine.ResourceBrick, engine.ResourceGrain, engine.ResourceLumber, engine.ResourceOre, engine.ResourceWool:
		return engine.ResourceKind(s), nil
	}
	return "", fmt.Errorf("unknown resource %q", s)
}

// toAction translates a wire message into the closed engine action set.
func toAction(m types.ClientMessage, playerID uuid.UUID) (engine.PlayerAction, error) {
	token, _ := uuid.Parse(m.Token)
	base := engine.Base{PlayerID: playerID, Token: token}

	switch engine.ActionType(m.Type) {
	case engine.ActionPlaceSetupInfrastructure:
		return engine.PlaceSetupInfrastructureAction{
			Base:       base,
			Settlement: engine.Location(m.Settlement),
			RoadEnd:    engine.Location(m.RoadEnd),
		}, nil
	case engine.ActionConfirmGameStart:
		return engine.ConfirmGameStartAction{Base: base}, nil
	case engine.ActionPlaceRoadSegment:
		return engine.PlaceRoadSegmentAction{Base: base, Start: engine.Location(m.Start), End: engine.Location(m.End)}, nil
	case engine.ActionPlaceSettlement:
		return engine.PlaceSettlementAction{Base: base, Location: engine.Location(m.Location)}, nil
	case engine.ActionPlaceCity:
		return engine.PlaceCityAction{Base: base, Location: engine.Location(m.Location)}, nil
	case engine.ActionBuyDevelopmentCard:
		return engine.BuyDevelopmentCardAction{Base: base}, nil
	case engine.ActionPlayKnightCard:
		return engine.PlayKnightCardAction{Base: base, NewRobberHex: engine.HexID(m.Hex)}, nil
	case engine.ActionPlayMonopolyCard:
		kind, err := parseKind(m.Resource)
		if err != nil {
			return nil, err
		}
		return engine.PlayMonopolyCardAction{Base: base, Resource: kind}, nil
	case engine.ActionPlayYearOfPlentyCard:
		first, err := parseKind(m.First)
		if err != nil {
			return nil, err
		}
		second, err := parseKind(m.Second)
		if err != nil {
			return nil, err
		}
		return engine.PlayYearOfPlentyCardAction{Base: base, First: first, Second: second}, nil
	case engine.ActionPlayRoadBuildingCard:
		return engine.PlayRoadBuildingCardAction{
			Base:        base,
			FirstStart:  engine.Location(m.FirstStart),
			FirstEnd:    engine.Location(m.FirstEnd),
			SecondStart: engine.Location(m.SecondStart),
			SecondEnd:   engine.Location(m.SecondEnd),
		}, nil
	case engine.ActionTradeWithBank:
		giving, err := parseKind(m.Giving)
		if err != nil {
			return nil, err
		}
		receiving, err := parseKind(m.Receiving)
		if err != nil {
			return nil, err
		}
		return engine.TradeWithBankAction{Base: base, Giving: giving, Receiving: receiving}, nil
	case engine.ActionMakeDirectTradeOffer:
		return engine.MakeDirectTradeOfferAction{Base: base, Offered: clutch(m.Offered), Wanted: clutch(m.Wanted)}, nil
	case engine.ActionAnswerDirectTradeOffer:
		return engine.AnswerDirectTradeOfferAction{Base: base, Offered: clutch(m.Offered), Wanted: clutch(m.Wanted)}, nil
	case engine.ActionAcceptDirectTrade:
		sellerID, err := uuid.Parse(m.SellerID)
		if err != nil {
			return nil, fmt.Errorf("invalid seller_id")
		}
		return engine.AcceptDirectTradeAction{Base: base, SellerID: sellerID}, nil
	case engine.ActionPlaceRobber:
		return engine.PlaceRobberAction{Base: base, Hex: engine.HexID(m.Hex)}, nil
	case engine.ActionSelectResourceFromPlayer:
		victimID, err := uuid.Parse(m.VictimID)
		if err != nil {
			return nil, fmt.Errorf("invalid victim_id")
		}
		return engine.SelectResourceFromPlayerAction{Base: base, Victim: victimID}, nil
	case engine.ActionLoseResources:
		return engine.LoseResourcesAction{Base: base, Resources: clutch(m.Resources)}, nil
	case engine.ActionEndTurn:
		return engine.EndTurnAction{Base: base}, nil
	case engine.ActionQuitGame:
		return engine.QuitGameAction{Base: base}, nil
	case engine.ActionRequestState:
		return engine.RequestStateAction{Base: base}, nil
	}
	return nil, fmt.Errorf("unknown type %q", m.Type)
}
