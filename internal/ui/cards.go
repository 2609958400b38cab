package ui

import (
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/protocol/convert"
)

// cardLabel 牌面缩写
func cardLabel(c protocol.CardInfo) string {
	switch c.Rank {
	case "Skip":
		return "⊘"
	case "Reverse":
		return "⇄"
	case "Wild":
		return "W"
	}
	return c.Rank
}

// cardName 用于提示信息的牌名
func cardName(c protocol.CardInfo) string {
	if c.Color == "Wildcard" || c.Color == "" {
		return c.Rank
	}
	return c.Color + " " + c.Rank
}

func isWild(c protocol.CardInfo) bool {
	return c.Rank == "Wild" || c.Rank == "+4"
}

// renderCard 单张牌，万能牌已选色时用选中的颜色描边
func renderCard(c protocol.CardInfo, highlight bool) string {
	color, ok := cardColors[c.Color]
	if !ok {
		color = cardColors["Wildcard"]
	}
	style := cardStyle.BorderForeground(color).Foreground(color)
	if highlight {
		style = style.BorderStyle(lipgloss.ThickBorder())
	}
	return style.Render(cardLabel(c))
}

// renderHand 手牌：可出的牌序号后标 *，选中的牌加粗描边
func renderHand(hand, playable []protocol.CardInfo, selected int) string {
	if len(hand) == 0 {
		return dimStyle.Render("(无手牌)")
	}
	cols := make([]string, len(hand))
	for i, c := range hand {
		label := strconv.Itoa(i + 1)
		if slices.Contains(playable, c) {
			label += "*"
		}
		if i == selected {
			label = selectedStyle.Render(label)
		} else {
			label = dimStyle.Render(label)
		}
		cols[i] = lipgloss.JoinVertical(lipgloss.Center, renderCard(c, i == selected), label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// parseColor 解析颜色缩写，返回协议中的颜色名
func parseColor(s string) (string, error) {
	c, err := card.ParseColorShort(s)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

// findCard 按输入的牌面简写在手牌中找牌
func findCard(hand []protocol.CardInfo, input string) (protocol.CardInfo, error) {
	cards, err := convert.InfosToCards(hand)
	if err != nil {
		return protocol.CardInfo{}, err
	}
	c, err := card.FindCardInHand(cards, input)
	if err != nil {
		return protocol.CardInfo{}, err
	}
	return convert.CardToInfo(c), nil
}
