package ui

import (
	"github.com/palemoky/uno/internal/protocol"
)

// GameModel 房间与牌局的客户端状态
type GameModel struct {
	roomCode string
	gameID   string
	players  []protocol.PlayerInfo
	state    *protocol.GameStateDTO

	selected    int                // 当前选中的手牌下标
	pendingWild *protocol.CardInfo // 等待选择颜色的万能牌
	gameOver    *protocol.GameOverPayload
	showingHelp bool

	self string // 自己的玩家 ID
}

// NewGameModel 创建牌局状态
func NewGameModel() *GameModel {
	return &GameModel{}
}

// reset 离开房间后清空，保留自己的 ID
func (g *GameModel) reset() {
	*g = GameModel{self: g.self}
}

// hand 自己的手牌
func (g *GameModel) hand() []protocol.CardInfo {
	if g.state == nil {
		return nil
	}
	return g.state.Hand
}

// isMyTurn 是否轮到自己
func (g *GameModel) isMyTurn(playerID string) bool {
	return g.state != nil && g.state.Status == "IN_PROGRESS" && g.state.CurrentTurn == playerID
}

// applyState 更新快照并修正选中下标
func (g *GameModel) applyState(st protocol.GameStateDTO) {
	g.state = &st
	g.gameID = st.GameID
	g.players = st.Players
	if st.Status != "OVER" {
		g.gameOver = nil
	}
	if n := len(st.Hand); g.selected >= n {
		g.selected = max(n-1, 0)
	}
	if g.pendingWild != nil && !g.isMyTurn(g.self) {
		g.pendingWild = nil
	}
}

// moveSelection 左右移动选中的手牌
func (g *GameModel) moveSelection(delta int) {
	n := len(g.hand())
	if n == 0 {
		g.selected = 0
		return
	}
	g.selected = (g.selected + delta + n) % n
}

// playerName 按 ID 查昵称
func (g *GameModel) playerName(id string) string {
	for _, p := range g.players {
		if p.ID == id {
			return p.Name
		}
	}
	return id
}
