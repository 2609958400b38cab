//go:build !production

package room

import "github.com/palemoky/uno/internal/game"

// AddRoomForTest 添加房间用于测试
func (rm *RoomManager) AddRoomForTest(room *Room) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	rm.rooms[room.Code] = room
}

// NewRoomForTest 创建一个未登记到管理器的空房间
func (rm *RoomManager) NewRoomForTest(code string) *Room {
	return rm.newRoom(code)
}

// SetGameStateForTest 替换当前牌局状态
func (r *Room) SetGameStateForTest(s game.State) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.game.SetStateForTest(s)
}
