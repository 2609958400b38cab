package server

import "math/rand/v2"

// 昵称词库
var (
	adjectives = []string{
		"红色的", "黄色的", "蓝色的", "绿色的", "百变的",
		"反转的", "跳过的", "加二的", "加四的", "幸运的",
		"淡定的", "机智的", "迅捷的", "神秘的", "倔强的",
	}

	nouns = []string{
		"熊猫", "狐狸", "海豚", "企鹅", "考拉",
		"柯基", "柴犬", "龙猫", "仓鼠", "刺猬",
		"松鼠", "浣熊", "水獭", "羊驼", "鹦鹉",
	}
)

// GenerateNickname 生成随机昵称
func GenerateNickname() string {
	return adjectives[rand.IntN(len(adjectives))] + nouns[rand.IntN(len(nouns))]
}
