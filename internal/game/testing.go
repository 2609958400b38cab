//go:build !production

package game

// SetStateForTest 直接替换当前状态，用于构造固定局面
func (g *Game) SetStateForTest(s State) {
	g.state = s.Clone()
}
