package room

import (
	"context"
	"log"
	"time"

	"github.com/palemoky/uno/internal/game"
	"github.com/palemoky/uno/internal/game/card"
	"github.com/palemoky/uno/internal/protocol"
	"github.com/palemoky/uno/internal/protocol/codec"
	"github.com/palemoky/uno/internal/protocol/convert"
	"github.com/palemoky/uno/internal/server/storage"
)

const storeTimeout = 3 * time.Second

// Broadcast 向房间内所有真人发送消息
func (r *Room) Broadcast(msg *protocol.Message) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.broadcast(msg)
}

func (r *Room) broadcast(msg *protocol.Message) {
	for _, p := range r.Players {
		if p.Client != nil {
			p.Client.SendMessage(msg)
		}
	}
}

func (r *Room) broadcastExcept(excludeID string, msg *protocol.Message) {
	for id, p := range r.Players {
		if id != excludeID && p.Client != nil {
			p.Client.SendMessage(msg)
		}
	}
}

// afterCommand 命令成功后：按视角推送快照，结算，保存快照，安排 AI 续跑。调用方持有写锁
func (r *Room) afterCommand(st game.State) {
	r.UpdatedAt = time.Now()

	for id, p := range r.Players {
		if p.Client == nil {
			continue
		}
		p.Client.SendMessage(codec.MustNewMessage(protocol.MsgGameState,
			convert.StateForViewer(r.GameID, &st, id, r.nameOf)))
	}

	if st.Status == game.Over && st.Winner != "" && !r.recorded {
		r.recorded = true
		log.Printf("🏆 房间 %s 牌局 %s 结束，%s 获胜", r.Code, r.GameID, r.nameOf(st.Winner))
		r.broadcast(codec.MustNewMessage(protocol.MsgGameOver, protocol.GameOverPayload{
			GameID:      r.GameID,
			WinnerID:    st.Winner,
			WinnerName:  r.nameOf(st.Winner),
			PlayerHands: convert.PlayerHands(&st, r.nameOf),
		}))
		r.recordResults(st)
	}

	r.persist(st)
	r.scheduleAI()
}

// recordResults 记录胜负，系统添加的 AI 座位不计入
//
// 胜者得分为其余座位（含 AI）剩余手牌的分值之和。
func (r *Room) recordResults(st game.State) {
	if r.recorder == nil {
		return
	}
	points := 0
	for _, p := range st.Players {
		if p.ID != st.Winner {
			points += card.HandPoints(p.Hand)
		}
	}

	var results []storage.GameResult
	for _, p := range st.Players {
		if isBotID(p.ID) {
			continue
		}
		res := storage.GameResult{PlayerID: p.ID, PlayerName: r.nameOf(p.ID), Won: p.ID == st.Winner}
		if res.Won {
			res.Points = points
		}
		results = append(results, res)
	}

	recorder, code := r.recorder, r.Code
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		for _, res := range results {
			if err := recorder.RecordGameResult(ctx, res); err != nil {
				log.Printf("⚠️  房间 %s 记录战绩失败 (%s): %v", code, res.PlayerID, err)
			}
		}
	}()
}

// persist 异步保存房间快照
func (r *Room) persist(st game.State) {
	if r.store == nil {
		return
	}
	data := r.toRoomData(st)
	store := r.store
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		if err := store.SaveRoom(ctx, data); err != nil {
			log.Printf("⚠️  保存房间 %s 失败: %v", data.Code, err)
		}
	}()
}

// scheduleAI 当前座位是 AI 时延迟续跑
func (r *Room) scheduleAI() {
	r.stopAI()
	if r.closed || !r.game.NeedsAI() {
		return
	}
	gameID := r.GameID
	r.aiTimer = time.AfterFunc(r.cfg.AIDelay, func() { r.resumeAI(gameID) })
}

func (r *Room) stopAI() {
	if r.aiTimer != nil {
		r.aiTimer.Stop()
		r.aiTimer = nil
	}
}

// resumeAI 定时器回调，牌局已更换或房间已关闭时放弃
func (r *Room) resumeAI(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.GameID != gameID || !r.game.NeedsAI() {
		return
	}
	st, err := r.game.ResumeAI()
	if err != nil {
		log.Printf("⚠️  房间 %s AI 续跑失败: %v", r.Code, err)
		return
	}
	r.afterCommand(st)
}

// Close 停止 AI 续跑，之后房间不再推进
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.stopAI()
}
