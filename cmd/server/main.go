package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/palemoky/uno/internal/config"
	"github.com/palemoky/uno/internal/server"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("加载配置文件失败，使用默认配置: %v", err)
		cfg = config.Default()
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("创建服务器失败: %v", err)
	}

	// SIGINT/SIGTERM 立即关闭，SIGUSR1 等待牌局结束后关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGUSR1)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sig := <-quit
		if sig == syscall.SIGUSR1 {
			log.Println("收到 SIGUSR1，开始优雅关闭...")
			srv.GracefulShutdown(cfg.Game.ShutdownTimeoutDuration())
			return
		}
		log.Println("正在关闭服务器...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}()

	log.Println("🎮 UNO 服务器启动中...")
	if err := srv.Start(); err != nil {
		log.Fatalf("服务器启动失败: %v", err)
	}
	<-stopped
}
