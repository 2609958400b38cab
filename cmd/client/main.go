package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/palemoky/uno/internal/logger"
	"github.com/palemoky/uno/internal/sound"
	"github.com/palemoky/uno/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:1790", "服务器地址")
	soundDir := flag.String("sounds", "assets/sounds", "音效目录")
	flag.Parse()

	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
	}
	defer logger.Close()

	sm := sound.NewSoundManager(*soundDir)
	go func() {
		if err := sm.Init(); err != nil {
			logger.LogError("初始化音效失败: %v", err)
		}
	}()
	defer sm.Close()

	model := ui.NewOnlineModel(fmt.Sprintf("ws://%s/ws", *serverAddr), sm)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.LogError("客户端异常退出: %v", err)
		log.Fatalf("启动客户端时出错: %v", err)
	}
}
