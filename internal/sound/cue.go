package sound

// Cue 音效名，对应音效目录下的文件名
type Cue string

const (
	CueTurn Cue = "turn" // 轮到自己
	CuePlay Cue = "play" // 有人出牌
	CueUno  Cue = "uno"  // 有人只剩一张
	CueWin  Cue = "win"  // 自己获胜
	CueLose Cue = "lose" // 别人获胜
)
