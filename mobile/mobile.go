package mobile

import (
	"context"
	"os"

	"grape/internal/config"
	"grape/internal/server"
)

var stopServer context.CancelFunc

// StartServer starts the local HTTP server in the background.
// webDir: physical path to the extracted web assets
// port: port to listen on, e.g. "2888"
func StartServer(webDir string, port string) {
	cfg := config.DefaultConfig()
	cfg.Addr = "127.0.0.1:" + port
	cfg.WebDir = webDir
	cfg.MobileWebDir = webDir
	cfg.OpenBrowser = false
	// 手机上搜索慢，默认浅一些
	cfg.SearchDepth = 2

	logger := server.NewLogger(cfg, os.Stderr)
	app := server.NewApp(cfg, logger)
	ln, err := app.Listen()
	if err != nil {
		logger.Error().Err(err).Str("addr", cfg.Addr).Msg("listen failed")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	if stopServer != nil {
		stopServer()
	}
	stopServer = cancel

	// 不能阻塞 Android UI 线程
	go func() {
		if err := app.Serve(ctx, ln); err != nil {
			logger.Error().Err(err).Msg("server error")
		}
	}()
}

// StopServer 关闭 StartServer 起的服务
func StopServer() {
	if stopServer != nil {
		stopServer()
		stopServer = nil
	}
}
