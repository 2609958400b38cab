package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/uno/internal/logger"
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/protocol/codec"
	"github.com/palemoky/uno/internal/sound"
)

// handleServerMessage 按消息类型更新界面状态
func (m *OnlineModel) handleServerMessage(msg *protocol.Message) tea.Cmd {
	switch msg.Type {
	case protocol.MsgConnected:
		return m.handleMsgConnected(msg)
	case protocol.MsgPong:
		m.latency = m.client.Latency()
	case protocol.MsgOnlineCount:
		if p, err := codec.ParsePayload[protocol.OnlineCountPayload](msg); err == nil {
			m.lobby.onlineCount = p.Count
		}

	case protocol.MsgRoomCreated:
		return m.handleMsgRoomCreated(msg)
	case protocol.MsgRoomJoined:
		return m.handleMsgRoomJoined(msg)
	case protocol.MsgPlayerJoined:
		if p, err := codec.ParsePayload[protocol.PlayerJoinedPayload](msg); err == nil {
			m.notice = fmt.Sprintf("%s 加入了牌局", p.Player.Name)
		}
	case protocol.MsgPlayerLeft:
		if p, err := codec.ParsePayload[protocol.PlayerLeftPayload](msg); err == nil {
			m.notice = fmt.Sprintf("%s 离开了房间", p.PlayerName)
		}

	case protocol.MsgGameState:
		return m.handleMsgGameState(msg)
	case protocol.MsgGameOver:
		return m.handleMsgGameOver(msg)

	case protocol.MsgStatsResult:
		if p, err := codec.ParsePayload[protocol.StatsResultPayload](msg); err == nil {
			m.lobby.stats = p
		}
	case protocol.MsgLeaderboardResult:
		if p, err := codec.ParsePayload[protocol.LeaderboardResultPayload](msg); err == nil {
			// 丢弃切换前请求的结果
			if p.Type == m.lobby.currentLeaderboardType() {
				m.lobby.leaderboard = p.Entries
			}
		}
	case protocol.MsgRoomListResult:
		if p, err := codec.ParsePayload[protocol.RoomListResultPayload](msg); err == nil {
			m.lobby.availableRooms = p.Rooms
			if m.lobby.selectedRoomIdx >= len(p.Rooms) {
				m.lobby.selectedRoomIdx = 0
			}
		}

	case protocol.MsgMaintenancePush:
		m.notice = "🔧 服务器进入维护模式，暂停创建和加入房间"
	case protocol.MsgError:
		return m.handleMsgError(msg)

	default:
		logger.LogInfo("忽略未知消息类型: %s", msg.Type)
	}
	return nil
}

func (m *OnlineModel) handleMsgConnected(msg *protocol.Message) tea.Cmd {
	p, err := codec.ParsePayload[protocol.ConnectedPayload](msg)
	if err != nil {
		return nil
	}
	m.playerID = p.PlayerID
	m.playerName = p.PlayerName
	m.game.self = p.PlayerID
	m.error = ""
	m.toLobby()
	return nil
}

func (m *OnlineModel) handleMsgRoomCreated(msg *protocol.Message) tea.Cmd {
	p, err := codec.ParsePayload[protocol.RoomCreatedPayload](msg)
	if err != nil {
		return nil
	}
	m.enterRoom(p.RoomCode, p.GameID, []protocol.PlayerInfo{p.Player})
	return nil
}

func (m *OnlineModel) handleMsgRoomJoined(msg *protocol.Message) tea.Cmd {
	p, err := codec.ParsePayload[protocol.RoomJoinedPayload](msg)
	if err != nil {
		return nil
	}
	m.enterRoom(p.RoomCode, p.GameID, p.Players)
	if p.State != nil {
		m.game.applyState(*p.State)
	}
	return nil
}

func (m *OnlineModel) enterRoom(code, gameID string, players []protocol.PlayerInfo) {
	m.game.reset()
	m.game.self = m.playerID
	m.game.roomCode = code
	m.game.gameID = gameID
	m.game.players = players
	m.phase = PhaseWaiting
	m.notice = ""
	m.input.Placeholder = "s 开局 / b 加 AI / q 离开"
}

func (m *OnlineModel) handleMsgGameState(msg *protocol.Message) tea.Cmd {
	p, err := codec.ParsePayload[protocol.GameStateDTO](msg)
	if err != nil {
		logger.LogError("解析牌局快照失败: %v", err)
		return nil
	}
	m.playCues(m.game.state, p)
	m.game.applyState(*p)

	switch p.Status {
	case "IN_PROGRESS":
		if m.phase != PhasePlaying {
			m.notice = ""
		}
		m.phase = PhasePlaying
		m.input.Placeholder = "回车出选中的牌 / d 摸牌 / ? 帮助"
	case "WAITING_TO_START":
		m.phase = PhaseWaiting
	}
	// OVER 等待随后的 game_over 消息
	return nil
}

// playCues 根据前后两个快照播放提示音
func (m *OnlineModel) playCues(prev *protocol.GameStateDTO, next *protocol.GameStateDTO) {
	if m.sounds == nil || next.Status != "IN_PROGRESS" {
		return
	}
	if next.CurrentTurn == m.playerID && (prev == nil || prev.CurrentTurn != m.playerID) {
		m.sounds.Play(sound.CueTurn)
	}
	if next.LastMove != nil && next.LastMove.Kind == "play" {
		m.sounds.Play(sound.CuePlay)
	}
	for _, p := range next.Players {
		if p.CardsCount == 1 && cardsCount(prev, p.ID) > 1 {
			m.sounds.Play(sound.CueUno)
			return
		}
	}
}

func cardsCount(st *protocol.GameStateDTO, playerID string) int {
	if st == nil {
		return 0
	}
	for _, p := range st.Players {
		if p.ID == playerID {
			return p.CardsCount
		}
	}
	return 0
}

func (m *OnlineModel) handleMsgGameOver(msg *protocol.Message) tea.Cmd {
	p, err := codec.ParsePayload[protocol.GameOverPayload](msg)
	if err != nil {
		return nil
	}
	m.game.gameOver = p
	m.game.pendingWild = nil
	m.phase = PhaseGameOver
	m.notice = ""
	m.input.Placeholder = "回车返回房间 / s 再来一局 / q 离开"

	if m.sounds != nil {
		if p.WinnerID == m.playerID {
			m.sounds.Play(sound.CueWin)
		} else {
			m.sounds.Play(sound.CueLose)
		}
	}
	return nil
}

func (m *OnlineModel) handleMsgError(msg *protocol.Message) tea.Cmd {
	p, err := codec.ParsePayload[protocol.ErrorPayload](msg)
	if err != nil {
		return nil
	}
	m.error = p.Message
	if p.Code == protocol.ErrCodeGameIDMismatch {
		// 本地的牌局 ID 过期，等待下一次快照同步
		logger.LogInfo("game id mismatch, local=%s", m.game.gameID)
	}
	return clearErrorAfter()
}
