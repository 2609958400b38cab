package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/sound"
	"github.com/palemoky/uno/internal/transport"
)

// GamePhase 界面阶段
type GamePhase int

const (
	PhaseConnecting GamePhase = iota
	PhaseLobby
	PhaseRoomList
	PhaseWaiting
	PhasePlaying
	PhaseGameOver
	PhaseLeaderboard
	PhaseStats
	PhaseRules
)

// ServerMessage 服务器消息
type ServerMessage struct {
	Msg *protocol.Message
}

// ConnectedMsg 连接成功
type ConnectedMsg struct{}

// ConnectionErrorMsg 连接失败或断开
type ConnectionErrorMsg struct {
	Err error
}

// ClearErrorMsg 清除错误提示
type ClearErrorMsg struct{}

// errorDisplayTime 错误提示的显示时长
const errorDisplayTime = 3 * time.Second

// GameClient 界面依赖的服务器连接
type GameClient interface {
	Connect() error
	Receive() (*protocol.Message, error)
	Close()
	IsConnected() bool
	StartHeartbeat()
	Latency() int64

	CreateRoom() error
	JoinRoom(roomCode string) error
	LeaveRoom() error
	StartGame(gameID string) error
	JoinAI(gameID, difficulty string) error
	AddBot(gameID, difficulty string) error
	PlayCard(gameID string, card protocol.CardInfo) error
	DrawCard(gameID string) error
	ChangeColor(gameID, color string) error
	GetStats() error
	GetLeaderboard(boardType string, offset, limit int) error
	GetRoomList() error
	GetOnlineCount() error
}

// CuePlayer 播放提示音
type CuePlayer interface {
	Play(cue sound.Cue)
}

// OnlineModel 终端客户端的 bubbletea model
type OnlineModel struct {
	client GameClient
	sounds CuePlayer

	phase  GamePhase
	error  string
	notice string

	playerID   string
	playerName string
	latency    int64

	lobby *LobbyModel
	game  *GameModel

	input   textinput.Model
	spinner spinner.Model
	width   int
	height  int
}

// NewOnlineModel 创建连接到 serverURL 的客户端界面
func NewOnlineModel(serverURL string, sounds CuePlayer) *OnlineModel {
	return newOnlineModel(transport.NewClient(serverURL), sounds)
}

func newOnlineModel(client GameClient, sounds CuePlayer) *OnlineModel {
	ti := textinput.New()
	ti.Placeholder = "输入选项 (1-5) 或房间号"
	ti.CharLimit = 16
	ti.Width = 24
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &OnlineModel{
		client:  client,
		sounds:  sounds,
		phase:   PhaseConnecting,
		lobby:   NewLobbyModel(),
		game:    NewGameModel(),
		input:   ti,
		spinner: sp,
	}
}

func (m *OnlineModel) Init() tea.Cmd {
	return tea.Batch(m.connectToServer(), textinput.Blink, m.spinner.Tick)
}

func (m *OnlineModel) connectToServer() tea.Cmd {
	return func() tea.Msg {
		if err := m.client.Connect(); err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ConnectedMsg{}
	}
}

func (m *OnlineModel) listenForMessages() tea.Cmd {
	return func() tea.Msg {
		msg, err := m.client.Receive()
		if err != nil {
			return ConnectionErrorMsg{Err: err}
		}
		return ServerMessage{Msg: msg}
	}
}

func clearErrorAfter() tea.Cmd {
	return tea.Tick(errorDisplayTime, func(time.Time) tea.Msg { return ClearErrorMsg{} })
}

func (m *OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if handled, cmd := m.handleKeyPress(msg); handled {
			return m, cmd
		}

	case ConnectedMsg:
		m.client.StartHeartbeat()
		cmds = append(cmds, m.listenForMessages())

	case ConnectionErrorMsg:
		m.phase = PhaseConnecting
		m.error = fmt.Sprintf("与服务器的连接已断开: %v\n\n按 ESC 退出", msg.Err)

	case ClearErrorMsg:
		m.error = ""

	case ServerMessage:
		if cmd := m.handleServerMessage(msg.Msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if m.client.IsConnected() {
			cmds = append(cmds, m.listenForMessages())
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.phase == PhaseConnecting {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *OnlineModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	switch m.phase {
	case PhaseConnecting:
		content = m.connectingView()
	case PhaseLobby:
		content = m.lobbyView()
	case PhaseRoomList:
		content = m.roomListView()
	case PhaseWaiting:
		content = m.waitingView()
	case PhasePlaying:
		content = m.gameView()
	case PhaseGameOver:
		content = m.gameOverView()
	case PhaseLeaderboard:
		content = m.leaderboardView()
	case PhaseStats:
		content = m.statsView()
	case PhaseRules:
		content = rulesView()
	}
	return docStyle.Render(content)
}
