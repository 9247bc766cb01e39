package engine

// DevelopmentCardType identifies one development card variant. Victory point
// cards are held, never played.
type DevelopmentCardType string

const (
	KnightCard       DevelopmentCardType = "knight"
	MonopolyCard     DevelopmentCardType = "monopoly"
	YearOfPlentyCard DevelopmentCardType = "year_of_plenty"
	RoadBuildingCard DevelopmentCardType = "road_building"
	VictoryPointCard DevelopmentCardType = "victory_point"
)

// Standard deck composition.
var deckComposition = map[DevelopmentCardType]int{
	KnightCard:       14,
	MonopolyCard:     2,
	YearOfPlentyCard: 2,
	RoadBuildingCard: 2,
	VictoryPointCard: 5,
}

// DevelopmentCardPile is a shuffled deck exposing take-next semantics.
type DevelopmentCardPile struct {
	cards []DevelopmentCardType
}

// NewDevelopmentCardPile builds the standard 25-card deck and shuffles it with
// the injected generator so tests can script the order.
func NewDevelopmentCardPile(rng NumberGenerator) *DevelopmentCardPile {
	cards := make([]DevelopmentCardType, 0, 25)
	// Walk a fixed type order so the pre-shuffle layout is deterministic.
	for _, t := range []DevelopmentCardType{KnightCard, MonopolyCard, YearOfPlentyCard, RoadBuildingCard, VictoryPointCard} {
		for i := 0; i < deckComposition[t]; i++ {
			cards = append(cards, t)
		}
	}
	// Fisher-Yates via the injected generator.
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
	return &DevelopmentCardPile{cards: cards}
}

func (p *DevelopmentCardPile) HasCards() bool { return len(p.cards) > 0 }

func (p *DevelopmentCardPile) Remaining() int { return len(p.cards) }

// TakeCard removes and returns the top card. ok is false when the pile is empty.
func (p *DevelopmentCardPile) TakeCard() (DevelopmentCardType, bool) {
	if len(p.cards) == 0 {
		return "", false
	}
	card := p.cards[0]
	p.cards = p.cards[1:]
	return card, true
}
