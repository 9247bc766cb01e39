package game

import (
	"github.com/google/uuid"

	"github.com/jharte/settlers-backend/internal/engine"
)

// Bank trades are a flat four-to-one.
const bankTradeRate = 4

func (s *Session) handleBankTrade(p *engine.Player, act engine.TradeWithBankAction) {
	if act.Giving == act.Receiving {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeBankTradeInvalid,
			"cannot trade a resource for itself"))
		return
	}
	payment := engine.OfKind(act.Giving, bankTradeRate)
	if !p.CanAfford(payment) {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNotEnoughResources,
			"bank trade requires %d %s", bankTradeRate, string(act.Giving)))
		return
	}
	received := engine.OfKind(act.Receiving, 1)
	p.Pay(payment)
	p.Receive(received)
	s.sendToAll(engine.TradeWithBankEvent{PlayerID: p.ID, Gave: payment, Received: received})
}

// handleMakeOffer opens (or replaces) the trade negotiation sub-state and
// grants every other player the answer permission.
func (s *Session) handleMakeOffer(p *engine.Player, act engine.MakeDirectTradeOfferAction) {
	if act.Offered.HasNegative() || act.Wanted.HasNegative() {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeMalformedResources,
			"resource counts must not be negative"))
		return
	}
	if !p.Resources.Covers(act.Offered) {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNotEnoughResources,
			"cannot offer resources you do not hold"))
		return
	}
	s.trade = &tradeNegotiation{
		buyerID: p.ID,
		offered: act.Offered,
		wanted:  act.Wanted,
		answers: map[uuid.UUID]answer{},
	}
	s.sendToAllExcept(engine.MakeDirectTradeOfferEvent{
		BuyerID: p.ID,
		Offered: act.Offered,
		Wanted:  act.Wanted,
	}, p.ID)
	for _, other := range s.players {
		if other.ID != p.ID {
			s.permitAlso(other.ID, engine.ActionAnswerDirectTradeOffer)
		}
	}
}

// handleTradeAnswer records one seller's counter-offer and forwards it to the
// offering player, who may now accept.
func (s *Session) handleTradeAnswer(act engine.AnswerDirectTradeOfferAction) {
	seller := s.byID[act.PlayerID]
	if s.trade == nil {
		s.sendTo(seller.ID, engine.NewGameError(seller.ID, engine.CodeInvalidTradeAnswer,
			"no trade offer to answer"))
		return
	}
	if act.Offered.HasNegative() || act.Wanted.HasNegative() {
		s.sendTo(seller.ID, engine.NewGameError(seller.ID, engine.CodeMalformedResources,
			"resource counts must not be negative"))
		return
	}
	if !seller.Resources.Covers(act.Offered) {
		s.sendTo(seller.ID, engine.NewGameError(seller.ID, engine.CodeNotEnoughResources,
			"cannot offer resources you do not hold"))
		return
	}
	s.trade.answers[seller.ID] = answer{offered: act.Offered, wanted: act.Wanted}
	s.sendTo(s.trade.buyerID, engine.AnswerDirectTradeOfferEvent{
		SellerID: seller.ID,
		Offered:  act.Offered,
		Wanted:   act.Wanted,
	})
	s.permitAlso(s.trade.buyerID, engine.ActionAcceptDirectTrade)
}

// handleTradeAccept executes the accepted answer's terms and closes the
// negotiation.
func (s *Session) handleTradeAccept(p *engine.Player, act engine.AcceptDirectTradeAction) {
	if s.trade == nil || s.trade.buyerID != p.ID {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeInvalidTradeAnswer,
			"no trade negotiation in progress"))
		return
	}
	ans, answered := s.trade.answers[act.SellerID]
	if !answered {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeInvalidTradeAnswer,
			"that player has not answered your offer"))
		return
	}
	seller, alive := s.byID[act.SellerID]
	if !alive {
		delete(s.trade.answers, act.SellerID)
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeInvalidTradeAnswer,
			"that player has left the game"))
		return
	}
	// Both sides must still hold their ends; hands may have changed since the
	// answer was made.
	if !p.Resources.Covers(ans.wanted) || !seller.Resources.Covers(ans.offered) {
		s.sendTo(p.ID, engine.NewGameError(p.ID, engine.CodeNotEnoughResources,
			"one side no longer holds the traded resources"))
		return
	}

	p.Pay(ans.wanted)
	p.Receive(ans.offered)
	seller.Pay(ans.offered)
	seller.Receive(ans.wanted)

	s.sendToAll(engine.AcceptDirectTradeEvent{
		BuyerID:    p.ID,
		SellerID:   seller.ID,
		BuyerGave:  ans.wanted,
		SellerGave: ans.offered,
	})

	s.closeNegotiation(p.ID)
}

// closeNegotiation clears the sub-state and revokes the temporary grants.
func (s *Session) closeNegotiation(buyerID uuid.UUID) {
	s.trade = nil
	for _, other := range s.players {
		if other.ID != buyerID {
			s.revoke(other.ID, engine.ActionAnswerDirectTradeOffer)
		}
	}
	s.revoke(buyerID, engine.ActionAcceptDirectTrade)
}
