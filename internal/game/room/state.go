package room

import (
	"github.com/google/uuid"

	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/protocol/convert"
)

// resetGame 换一局新的牌局实例
func (r *Room) resetGame() {
	opts := append([]game.Option{game.WithMaxAIDraws(r.cfg.MaxAIDraws)}, r.cfg.GameOptions...)
	r.game = game.New(opts...)
	r.GameID = uuid.NewString()
	r.recorded = false
	r.stopAI()
}

// nameOf 座位显示名
func (r *Room) nameOf(id string) string {
	if name, ok := r.names[id]; ok {
		return name
	}
	return id
}

// Snapshot 当前牌局快照
func (r *Room) Snapshot() game.State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.game.Snapshot()
}

// CurrentGameID 当前牌局实例 ID
func (r *Room) CurrentGameID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.GameID
}

// Status 当前牌局阶段
func (r *Room) Status() game.Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.game.Snapshot().Status
}

// HumanCount 房间内真人数量
func (r *Room) HumanCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.Players)
}

// GetPlayerInfo 获取座位信息，未入座时只有 ID 和名字
func (r *Room) GetPlayerInfo(playerID string) protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.playerInfo(playerID)
}

func (r *Room) playerInfo(playerID string) protocol.PlayerInfo {
	s := r.game.Snapshot()
	for _, info := range convert.PlayerInfos(&s, r.nameOf) {
		if info.ID == playerID {
			return info
		}
	}
	return protocol.PlayerInfo{ID: playerID, Name: r.nameOf(playerID), Seat: -1, Online: true}
}

// GetAllPlayersInfo 获取所有座位信息
func (r *Room) GetAllPlayersInfo() []protocol.PlayerInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := r.game.Snapshot()
	return convert.PlayerInfos(&s, r.nameOf)
}

// StateFor 某个玩家视角的快照
func (r *Room) StateFor(viewerID string) protocol.GameStateDTO {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := r.game.Snapshot()
	return convert.StateForViewer(r.GameID, &s, viewerID, r.nameOf)
}
