package convert

import (
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/protocol"
)

// CardToInfo 将 card.Card 转换为 protocol.CardInfo
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		Color: c.Color.String(),
		Rank:  c.Rank.String(),
	}
}

// CardsToInfos 将 []card.Card 转换为 []protocol.CardInfo
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfoToCard 将 protocol.CardInfo 转换为 card.Card
func InfoToCard(info protocol.CardInfo) (card.Card, error) {
	rank, err := card.ParseRank(info.Rank)
	if err != nil {
		return card.Card{}, err
	}
	color := card.Wildcard
	if info.Color != "" {
		if color, err = card.ParseColor(info.Color); err != nil {
			return card.Card{}, err
		}
	}
	return card.Card{Color: color, Rank: rank}, nil
}

// InfosToCards 将 []protocol.CardInfo 转换为 []card.Card
func InfosToCards(infos []protocol.CardInfo) ([]card.Card, error) {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		c, err := InfoToCard(info)
		if err != nil {
			return nil, err
		}
		cards[i] = c
	}
	return cards, nil
}
