package room

import (
	"context"
	"log"

	"github.com/palemoky/uno/internal/apperrors"
	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/types"
)

// CreateRoom 创建房间，创建者直接入座
func (rm *RoomManager) CreateRoom(client types.ClientInterface) (*Room, error) {
	rm.mu.Lock()
	code := rm.generateRoomCode()
	room := rm.newRoom(code)
	rm.rooms[code] = room
	rm.mu.Unlock()

	if err := room.JoinGame(client); err != nil {
		rm.removeRoom(code)
		return nil, err
	}

	log.Printf("🏠 房间 %s 已创建，玩家 %s", code, client.GetName())
	return room, nil
}

// JoinRoom 加入房间并入座当前牌局
func (rm *RoomManager) JoinRoom(client types.ClientInterface, code string) (*Room, error) {
	room := rm.GetRoom(code)
	if room == nil {
		return nil, apperrors.ErrRoomNotFound
	}

	if err := room.JoinGame(client); err != nil {
		return nil, err
	}

	log.Printf("👤 玩家 %s 加入房间 %s", client.GetName(), code)
	return room, nil
}

// LeaveRoom 离开房间，最后一个真人离开时解散房间
func (rm *RoomManager) LeaveRoom(client types.ClientInterface) {
	code := client.GetRoom()
	if code == "" {
		return
	}

	room := rm.GetRoom(code)
	if room == nil {
		client.SetRoom("")
		return
	}

	if room.LeaveGame(client) {
		rm.removeRoom(code)
		log.Printf("🏠 房间 %s 已解散", code)
		return
	}
	log.Printf("👋 玩家 %s 离开房间 %s，剩余 %d 名真人", client.GetName(), code, room.HumanCount())
}

// removeRoom 删除房间并清理 Redis 快照
func (rm *RoomManager) removeRoom(code string) {
	rm.mu.Lock()
	room, ok := rm.rooms[code]
	delete(rm.rooms, code)
	rm.mu.Unlock()

	if !ok {
		return
	}
	room.Close()
	if rm.store != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
			defer cancel()
			if err := rm.store.DeleteRoom(ctx, code); err != nil {
				log.Printf("⚠️  删除房间 %s 快照失败: %v", code, err)
			}
		}()
	}
}

// GetRoom 获取房间
func (rm *RoomManager) GetRoom(code string) *Room {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return rm.rooms[code]
}

// GetRoomList 获取可加入的房间列表（未开局且未满，或已结束可开新局）
func (rm *RoomManager) GetRoomList() []protocol.RoomListItem {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	rooms := make([]protocol.RoomListItem, 0, len(rm.rooms))
	for code, room := range rm.rooms {
		st := room.Snapshot()
		if st.Status == game.InProgress || (len(st.Players) >= game.MaxPlayers && st.Status != game.Over) {
			continue
		}
		rooms = append(rooms, protocol.RoomListItem{
			RoomCode:    code,
			PlayerCount: len(st.Players),
			MaxPlayers:  game.MaxPlayers,
			Status:      st.Status.String(),
		})
	}
	return rooms
}

// GetActiveGamesCount 获取进行中的牌局数量
func (rm *RoomManager) GetActiveGamesCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	count := 0
	for _, room := range rm.rooms {
		if room.Status() == game.InProgress {
			count++
		}
	}
	return count
}

// GetRoomCount 房间总数
func (rm *RoomManager) GetRoomCount() int {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	return len(rm.rooms)
}
