package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/palemoky/uno/internal/protocol"
)

func (m *OnlineModel) statusLine() string {
	parts := []string{fmt.Sprintf("👤 %s", m.playerName)}
	if m.latency > 0 {
		parts = append(parts, fmt.Sprintf("📶 %dms", m.latency))
	}
	return dimStyle.Render(strings.Join(parts, "  "))
}

func (m *OnlineModel) footer() string {
	var sb strings.Builder
	if m.notice != "" {
		sb.WriteString("\n" + noticeStyle.Render(m.notice))
	}
	if m.error != "" {
		sb.WriteString("\n" + errorStyle.Render(m.error))
	}
	sb.WriteString("\n" + promptStyle.Render(m.input.View()))
	return sb.String()
}

func (m *OnlineModel) connectingView() string {
	if m.error != "" {
		return titleStyle("UNO") + "\n\n" + errorStyle.Render(m.error)
	}
	return titleStyle("UNO") + "\n\n" + m.spinner.View() + " 正在连接服务器..."
}

func (m *OnlineModel) lobbyView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle("UNO 大厅") + "\n")
	sb.WriteString(m.statusLine())
	if m.lobby.onlineCount > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("  🌐 在线 %d", m.lobby.onlineCount)))
	}
	sb.WriteString("\n\n")

	for i, item := range lobbyMenu {
		line := fmt.Sprintf("%d. %s", i+1, item)
		if i == m.lobby.selectedIndex {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	return boxStyle.Render(sb.String()) + m.footer()
}

func (m *OnlineModel) roomListView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle("房间列表") + dimStyle.Render("  (r 刷新, ESC 返回)") + "\n\n")

	if len(m.lobby.availableRooms) == 0 {
		sb.WriteString(dimStyle.Render("暂无可加入的房间") + "\n")
	}
	for i, r := range m.lobby.availableRooms {
		line := fmt.Sprintf("%s  %d/%d  %s", r.RoomCode, r.PlayerCount, r.MaxPlayers, statusText(r.Status))
		if i == m.lobby.selectedRoomIdx {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	return boxStyle.Render(sb.String()) + m.footer()
}

func statusText(status string) string {
	switch status {
	case "WAITING_TO_START":
		return "等待中"
	case "IN_PROGRESS":
		return "对局中"
	case "OVER":
		return "已结束"
	}
	return status
}

// playerLine 座位行：当前回合标记、昵称、AI 标记、手牌数
func (m *OnlineModel) playerLine(p protocol.PlayerInfo, currentTurn string) string {
	marker := "  "
	if p.ID == currentTurn {
		marker = turnStyle.Render(turnIcon + " ")
	}
	name := p.Name
	if p.ID == m.playerID {
		name += " (我)"
	}
	if p.IsAI {
		name = botIcon + " " + name
	}
	line := fmt.Sprintf("%s%-16s %2d 张", marker, name, p.CardsCount)
	if p.CardsCount == 1 {
		line += "  " + errorStyle.Render(unoIcon)
	}
	return line
}

func (m *OnlineModel) waitingView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle(fmt.Sprintf("房间 %s", m.game.roomCode)) + "\n")
	sb.WriteString(m.statusLine() + "\n\n")

	for _, p := range m.game.players {
		sb.WriteString(m.playerLine(p, "") + "\n")
	}
	sb.WriteString(fmt.Sprintf("\n%s\n", dimStyle.Render(fmt.Sprintf("%d/4 人，至少 2 人开局，满 4 人自动开始", len(m.game.players)))))
	sb.WriteString(dimStyle.Render("s 开局 | b [e/m] 加 AI | ai [e/m] 交给 AI 托管 | q 离开"))
	return boxStyle.Render(sb.String()) + m.footer()
}

func directionText(d string) string {
	if d == "counterclockwise" {
		return "↺ 逆时针"
	}
	return "↻ 顺时针"
}

func (m *OnlineModel) lastMoveText(mv *protocol.MoveInfo) string {
	if mv == nil {
		return ""
	}
	name := m.game.playerName(mv.PlayerID)
	switch mv.Kind {
	case "play":
		if mv.Card != nil {
			return fmt.Sprintf("%s 打出 %s", name, cardName(*mv.Card))
		}
	case "draw":
		return fmt.Sprintf("%s 摸了 %d 张", name, mv.Count)
	case "forced_draw":
		return fmt.Sprintf("%s 被罚摸 %d 张", name, mv.Count)
	case "pass":
		return fmt.Sprintf("%s 跳过", name)
	}
	return ""
}

func (m *OnlineModel) gameView() string {
	st := m.game.state
	if st == nil {
		return m.waitingView()
	}
	if m.game.showingHelp {
		return rulesView()
	}

	var sb strings.Builder
	sb.WriteString(titleStyle(fmt.Sprintf("房间 %s", m.game.roomCode)) + "  " + m.statusLine() + "\n\n")

	for _, p := range st.Players {
		sb.WriteString(m.playerLine(p, st.CurrentTurn) + "\n")
	}

	table := []string{}
	if st.TopCard != nil {
		table = append(table, renderCard(*st.TopCard, false))
	}
	info := []string{
		directionText(st.Direction),
		fmt.Sprintf("牌堆 %d 张", st.DeckCount),
	}
	if st.DrawStack > 0 {
		info = append(info, errorStyle.Render(fmt.Sprintf("累计罚牌 +%d", st.DrawStack)))
	}
	if mv := m.lastMoveText(st.LastMove); mv != "" {
		info = append(info, dimStyle.Render(mv))
	}
	table = append(table, "  "+strings.Join(info, "\n  "))
	sb.WriteString("\n" + lipgloss.JoinHorizontal(lipgloss.Center, table...) + "\n\n")

	if m.game.isMyTurn(m.playerID) {
		sb.WriteString(turnStyle.Render("轮到你了！") + "\n")
	} else {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("等待 %s 出牌...", m.game.playerName(st.CurrentTurn))) + "\n")
	}
	sb.WriteString(renderHand(st.Hand, st.Playable, m.game.selected))

	return sb.String() + m.footer()
}

func (m *OnlineModel) gameOverView() string {
	over := m.game.gameOver
	if over == nil {
		return m.waitingView()
	}

	var sb strings.Builder
	if over.WinnerID == m.playerID {
		sb.WriteString(titleStyle("🎉 你赢了！") + "\n\n")
	} else {
		sb.WriteString(titleStyle(fmt.Sprintf("🏁 %s 获胜", over.WinnerName)) + "\n\n")
	}

	for _, h := range over.PlayerHands {
		cards := make([]string, len(h.Cards))
		for i, c := range h.Cards {
			cards[i] = renderCard(c, false)
		}
		sb.WriteString(fmt.Sprintf("%s (%d 张, %d 分)\n", h.PlayerName, len(h.Cards), h.Points))
		if len(cards) > 0 {
			sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n")
		}
	}
	return boxStyle.Render(sb.String()) + m.footer()
}

func (m *OnlineModel) leaderboardView() string {
	var sb strings.Builder
	tabs := make([]string, len(leaderboardTypes))
	for i, t := range leaderboardTypes {
		if i == m.lobby.leaderboardType {
			tabs[i] = selectedStyle.Render("[" + leaderboardTitles[t] + "]")
		} else {
			tabs[i] = dimStyle.Render(" " + leaderboardTitles[t] + " ")
		}
	}
	sb.WriteString(titleStyle("排行榜") + "  " + strings.Join(tabs, " ") + dimStyle.Render("  (←/→ 切换)") + "\n\n")

	if len(m.lobby.leaderboard) == 0 {
		sb.WriteString(dimStyle.Render("暂无数据") + "\n")
	}
	for _, e := range m.lobby.leaderboard {
		line := fmt.Sprintf("%2d. %-16s %5d 分  %3d 胜  胜率 %.1f%%", e.Rank, e.PlayerName, e.Score, e.Wins, e.WinRate)
		if e.PlayerID == m.playerID {
			line = selectedStyle.Render(line)
		}
		sb.WriteString(line + "\n")
	}
	return boxStyle.Render(sb.String()) + m.footer()
}

func (m *OnlineModel) statsView() string {
	var sb strings.Builder
	sb.WriteString(titleStyle("我的战绩") + "\n\n")

	s := m.lobby.stats
	if s == nil || s.TotalGames == 0 {
		sb.WriteString(dimStyle.Render("还没有完成的对局") + "\n")
		return boxStyle.Render(sb.String()) + m.footer()
	}

	rank := "未上榜"
	if s.Rank > 0 {
		rank = fmt.Sprintf("第 %d 名", s.Rank)
	}
	streak := fmt.Sprintf("%d 连胜", s.CurrentStreak)
	if s.CurrentStreak < 0 {
		streak = fmt.Sprintf("%d 连败", -s.CurrentStreak)
	}
	fmt.Fprintf(&sb, "总局数   %d\n", s.TotalGames)
	fmt.Fprintf(&sb, "胜 / 负  %d / %d\n", s.Wins, s.Losses)
	fmt.Fprintf(&sb, "胜率     %.1f%%\n", s.WinRate)
	fmt.Fprintf(&sb, "积分     %d (%s)\n", s.Score, rank)
	fmt.Fprintf(&sb, "当前     %s，最高 %d 连胜\n", streak, s.MaxWinStreak)
	fmt.Fprintf(&sb, "手牌分   累计 %d，单局最高 %d\n", s.PointsWon, s.BestGame)
	return boxStyle.Render(sb.String()) + m.footer()
}

func rulesView() string {
	rules := []string{
		"每人 7 张牌，轮流出与顶牌同色或同点数的牌，先出完者获胜。",
		"⊘ 跳过下家，⇄ 反转方向，+2 / +4 让下家罚摸。",
		"+2 / +4 可以叠加：被罚的玩家打出同点数的罚牌即可把累计罚牌传给下家。",
		"W / +4 为万能牌，打出时选择颜色。",
		"结算：胜者获得其他玩家剩余手牌分（数字按点数，功能牌 20，万能牌 50）。",
		"",
		"操作：←/→ 选牌，回车出牌；也可输入序号或牌面 (r7 g+2 bs yr w +4)。",
		"d 摸牌 | c <颜色> 万能牌变色 | s 开局 | b [e/m] 加 AI | q 离开",
	}
	return titleStyle("游戏规则") + "\n\n" + boxStyle.Render(strings.Join(rules, "\n")) +
		"\n" + dimStyle.Render("回车或 ESC 返回")
}
