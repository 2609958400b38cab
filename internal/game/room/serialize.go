package room

import (
	"strings"

	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/server/storage"
)

const botIDPrefix = "bot-"

func isBotID(id string) bool {
	return strings.HasPrefix(id, botIDPrefix)
}

// toRoomData 将房间与快照转换为可序列化的 RoomData
func (r *Room) toRoomData(st game.State) *storage.RoomData {
	data := &storage.RoomData{
		Code:      r.Code,
		GameID:    r.GameID,
		Status:    st.Status.String(),
		Players:   make([]storage.PlayerData, 0, len(st.Players)),
		Direction: st.Direction.String(),
		DrawStack: st.DrawStack,
		DeckCount: len(st.Deck),
		Winner:    st.Winner,
		MoveCount: len(st.Moves),
		CreatedAt: r.CreatedAt.Unix(),
		UpdatedAt: r.UpdatedAt.Unix(),
	}
	if st.TopCard != nil {
		data.TopCard = st.TopCard.String()
	}

	for i, p := range st.Players {
		pd := storage.PlayerData{
			ID:         p.ID,
			Name:       r.nameOf(p.ID),
			Seat:       i,
			IsAI:       p.IsAI,
			CardsCount: len(p.Hand),
		}
		if p.IsAI {
			pd.Level = p.Level.String()
		}
		data.Players = append(data.Players, pd)
	}

	return data
}
