package ai

// EasyBot 按手牌顺序出第一张合法的牌
type EasyBot struct {
	seat string
}

func (b *EasyBot) Level() Level   { return Easy }
func (b *EasyBot) SeatID() string { return b.seat }

func (b *EasyBot) Choose(v View) (Decision, error) {
	cands, err := legal(v)
	if err != nil {
		return Decision{}, err
	}
	if len(cands) == 0 {
		return Decision{Draw: true}, nil
	}
	return play(v.Hand, cands[0], v.Top), nil
}
