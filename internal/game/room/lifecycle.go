package room

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/protocol/codec"
)

// generateRoomCode 生成房间号，调用方持有写锁
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

// cleanupLoop 定期清理超时房间
func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rm.cleanup(time.Now())
		case <-rm.done:
			return
		}
	}
}

// cleanup 清理超时房间：只清理未在进行中、且长时间没有命令的房间
func (rm *RoomManager) cleanup(now time.Time) {
	rm.mu.RLock()
	var expired []*Room
	for _, room := range rm.rooms {
		room.mu.RLock()
		idle := now.Sub(room.UpdatedAt) > rm.cfg.RoomTimeout
		active := room.game.Snapshot().Status == game.InProgress
		room.mu.RUnlock()
		if idle && !active {
			expired = append(expired, room)
		}
	}
	rm.mu.RUnlock()

	for _, room := range expired {
		room.mu.Lock()
		room.broadcast(codec.NewErrorMessageWithText(protocol.ErrCodeUnknown, "房间超时已关闭"))
		for _, p := range room.Players {
			if p.Client != nil {
				p.Client.SetRoom("")
			}
		}
		room.mu.Unlock()

		rm.removeRoom(room.Code)
		log.Printf("🏠 房间 %s 超时已清理", room.Code)
	}
}

// Close 停止清理协程和所有房间的 AI 续跑
func (rm *RoomManager) Close() {
	rm.once.Do(func() { close(rm.done) })

	rm.mu.RLock()
	defer rm.mu.RUnlock()
	for _, room := range rm.rooms {
		room.Close()
	}
}
