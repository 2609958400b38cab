package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/protocol"
)

// 排行榜每页条数
const leaderboardPageSize = 10

// handleKeyPress 处理按键，返回是否已处理
func (m *OnlineModel) handleKeyPress(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.client.Close()
		return true, tea.Quit
	case tea.KeyEsc:
		return m.handleEscKey()
	case tea.KeyUp:
		m.lobby.handleUpKey(m.phase)
		return true, nil
	case tea.KeyDown:
		m.lobby.handleDownKey(m.phase)
		return true, nil
	case tea.KeyLeft, tea.KeyRight:
		delta := 1
		if msg.Type == tea.KeyLeft {
			delta = -1
		}
		return m.handleHorizontal(delta)
	case tea.KeyEnter:
		return true, m.handleEnter()
	case tea.KeyRunes:
		// 输入框为空时 ? 切换帮助
		if m.phase == PhasePlaying && m.input.Value() == "" && msg.String() == "?" {
			m.game.showingHelp = !m.game.showingHelp
			return true, nil
		}
	}
	return false, nil
}

func (m *OnlineModel) handleHorizontal(delta int) (bool, tea.Cmd) {
	switch m.phase {
	case PhasePlaying:
		if m.input.Value() != "" {
			return false, nil
		}
		m.game.moveSelection(delta)
		return true, nil
	case PhaseLeaderboard:
		boardType := m.lobby.cycleLeaderboard(delta)
		m.lobby.leaderboard = nil
		_ = m.client.GetLeaderboard(boardType, 0, leaderboardPageSize)
		return true, nil
	}
	return false, nil
}

// handleEscKey 返回上一级；在房间内不直接退出
func (m *OnlineModel) handleEscKey() (bool, tea.Cmd) {
	if m.game.showingHelp {
		m.game.showingHelp = false
		return true, nil
	}
	if m.game.pendingWild != nil {
		m.game.pendingWild = nil
		m.notice = ""
		return true, nil
	}

	switch m.phase {
	case PhaseRoomList, PhaseLeaderboard, PhaseStats, PhaseRules:
		m.toLobby()
		return true, nil
	case PhaseWaiting, PhasePlaying, PhaseGameOver:
		m.error = "在房间中，输入 q 回车离开房间"
		return true, clearErrorAfter()
	}

	m.client.Close()
	return true, tea.Quit
}

func (m *OnlineModel) toLobby() {
	m.phase = PhaseLobby
	m.error = ""
	m.input.Reset()
	m.input.Placeholder = "输入选项 (1-5) 或房间号"
	m.input.Focus()
	_ = m.client.GetOnlineCount()
}

// handleEnter 处理回车
func (m *OnlineModel) handleEnter() tea.Cmd {
	input := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	m.error = ""

	switch m.phase {
	case PhaseLobby:
		m.handleLobbyInput(input)
	case PhaseRoomList:
		m.handleRoomListInput(input)
	case PhaseWaiting:
		m.handleRoomCommand(input)
	case PhasePlaying:
		m.handlePlayInput(input)
	case PhaseGameOver:
		if !m.handleRoomCommand(input) && input == "" {
			m.phase = PhaseWaiting
		}
	case PhaseLeaderboard, PhaseStats, PhaseRules:
		m.toLobby()
	}

	if m.error != "" {
		return clearErrorAfter()
	}
	return nil
}

func (m *OnlineModel) handleLobbyInput(input string) {
	if input == "" {
		input = strconv.Itoa(m.lobby.selectedIndex + 1)
	}

	switch input {
	case "1":
		_ = m.client.CreateRoom()
	case "2":
		m.phase = PhaseRoomList
		m.lobby.selectedRoomIdx = 0
		m.input.Placeholder = "回车加入选中房间，或输入房间号"
		_ = m.client.GetRoomList()
	case "3":
		m.phase = PhaseLeaderboard
		m.lobby.leaderboard = nil
		_ = m.client.GetLeaderboard(m.lobby.currentLeaderboardType(), 0, leaderboardPageSize)
	case "4":
		m.phase = PhaseStats
		m.lobby.stats = nil
		_ = m.client.GetStats()
	case "5":
		m.phase = PhaseRules
	default:
		_ = m.client.JoinRoom(input)
	}
}

func (m *OnlineModel) handleRoomListInput(input string) {
	switch strings.ToLower(input) {
	case "":
		if idx := m.lobby.selectedRoomIdx; idx < len(m.lobby.availableRooms) {
			_ = m.client.JoinRoom(m.lobby.availableRooms[idx].RoomCode)
		}
	case "r":
		_ = m.client.GetRoomList()
	default:
		_ = m.client.JoinRoom(input)
	}
}

// parseDifficulty e/m 对应 Easy/Medium，缺省 Easy
func parseDifficulty(fields []string) string {
	if len(fields) > 1 && strings.HasPrefix(fields[1], "m") {
		return "Medium"
	}
	return "Easy"
}

// handleRoomCommand 房间内通用命令，返回是否识别
func (m *OnlineModel) handleRoomCommand(input string) bool {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return false
	}

	gameID := m.game.gameID
	switch fields[0] {
	case "s", "start":
		_ = m.client.StartGame(gameID)
	case "b", "bot":
		_ = m.client.AddBot(gameID, parseDifficulty(fields))
	case "ai":
		_ = m.client.JoinAI(gameID, parseDifficulty(fields))
	case "q", "leave":
		_ = m.client.LeaveRoom()
		m.game.reset()
		m.game.self = m.playerID
		m.toLobby()
	default:
		return false
	}
	return true
}

// handlePlayInput 出牌阶段的输入
//
//	回车         出选中的牌
//	3            出第 3 张
//	r7 / w b     按牌面出牌
//	d            摸一张
//	c r          把手中万能牌改为红色
func (m *OnlineModel) handlePlayInput(input string) {
	if m.game.pendingWild != nil {
		m.chooseWildColor(input)
		return
	}
	if m.handleRoomCommand(input) {
		return
	}

	if !m.game.isMyTurn(m.playerID) {
		m.error = "还没轮到你"
		return
	}

	gameID := m.game.gameID
	lower := strings.ToLower(input)
	switch {
	case lower == "d" || lower == "draw":
		_ = m.client.DrawCard(gameID)
		return
	case strings.HasPrefix(lower, "c "):
		color, err := parseColor(strings.TrimPrefix(lower, "c "))
		if err != nil {
			m.error = err.Error()
			return
		}
		_ = m.client.ChangeColor(gameID, color)
		return
	}

	info, err := m.resolveCard(input)
	if err != nil {
		m.error = err.Error()
		return
	}
	m.playCard(info)
}

// resolveCard 把输入解析为手中的一张牌，保留输入中指定的万能牌颜色
func (m *OnlineModel) resolveCard(input string) (protocol.CardInfo, error) {
	hand := m.game.hand()
	if input == "" {
		if len(hand) == 0 {
			return protocol.CardInfo{}, card.ErrEmptyInput
		}
		return hand[m.game.selected], nil
	}
	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > len(hand) {
			return protocol.CardInfo{}, card.ErrNotInHand
		}
		m.game.selected = n - 1
		return hand[n-1], nil
	}

	return findCard(hand, input)
}

// playCard 出牌；未选色的万能牌先进入选色
func (m *OnlineModel) playCard(info protocol.CardInfo) {
	if isWild(info) && info.Color == "Wildcard" {
		m.game.pendingWild = &info
		m.notice = "选择颜色: r 红 / g 绿 / b 蓝 / y 黄 (ESC 取消)"
		return
	}
	m.notice = ""
	_ = m.client.PlayCard(m.game.gameID, info)
}

func (m *OnlineModel) chooseWildColor(input string) {
	color, err := parseColor(input)
	if err != nil {
		m.error = err.Error()
		return
	}
	info := *m.game.pendingWild
	info.Color = color
	m.game.pendingWild = nil
	m.playCard(info)
}
