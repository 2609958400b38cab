package ui

import "github.com/palemoky/uno/internal/protocol"

// 大厅菜单
var lobbyMenu = []string{
	"创建房间",
	"加入房间",
	"排行榜",
	"我的战绩",
	"游戏规则",
}

// 排行榜类型，左右键切换
var leaderboardTypes = []string{"total", "daily", "weekly"}

var leaderboardTitles = map[string]string{
	"total":  "总榜",
	"daily":  "日榜",
	"weekly": "周榜",
}

// LobbyModel 大厅状态
type LobbyModel struct {
	selectedIndex   int
	availableRooms  []protocol.RoomListItem
	selectedRoomIdx int
	onlineCount     int

	leaderboardType int
	leaderboard     []protocol.LeaderboardEntry
	stats           *protocol.StatsResultPayload
}

// NewLobbyModel 创建大厅状态
func NewLobbyModel() *LobbyModel {
	return &LobbyModel{}
}

func (l *LobbyModel) handleUpKey(phase GamePhase) {
	switch phase {
	case PhaseLobby:
		l.selectedIndex = (l.selectedIndex - 1 + len(lobbyMenu)) % len(lobbyMenu)
	case PhaseRoomList:
		if l.selectedRoomIdx > 0 {
			l.selectedRoomIdx--
		}
	}
}

func (l *LobbyModel) handleDownKey(phase GamePhase) {
	switch phase {
	case PhaseLobby:
		l.selectedIndex = (l.selectedIndex + 1) % len(lobbyMenu)
	case PhaseRoomList:
		if l.selectedRoomIdx < len(l.availableRooms)-1 {
			l.selectedRoomIdx++
		}
	}
}

// currentLeaderboardType 当前排行榜类型
func (l *LobbyModel) currentLeaderboardType() string {
	return leaderboardTypes[l.leaderboardType]
}

// cycleLeaderboard 切换排行榜类型
func (l *LobbyModel) cycleLeaderboard(delta int) string {
	n := len(leaderboardTypes)
	l.leaderboardType = (l.leaderboardType + delta + n) % n
	return l.currentLeaderboardType()
}
