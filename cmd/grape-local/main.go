package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"grape/internal/config"
	"grape/internal/server"
)

func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default: // linux / bsd
		cmd = exec.Command("xdg-open", url)
	}

	_ = cmd.Start() // 没有图形界面时打不开也无所谓
}

func main() {
	cfgPath := flag.String("config", "grape.json", "path to JSON config (optional)")
	addr := flag.String("addr", "", "listen address, overrides config")
	webDir := flag.String("web", "", "directory with index.html / js / svg, overrides config")
	depth := flag.Int("depth", 0, "default search depth, overrides config")
	noBrowser := flag.Bool("no-browser", false, "do not open a browser")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v (using defaults)\n", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *webDir != "" {
		cfg.WebDir = *webDir
	}
	if *depth > 0 {
		cfg.SearchDepth = *depth
	}
	if *noBrowser {
		cfg.OpenBrowser = false
	}
	cfg = cfg.Normalize()

	logger := server.NewLogger(cfg, nil)
	app := server.NewApp(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := app.Listen()
	if err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.Addr).Msg("listen failed")
	}
	// 端口已经占上再开浏览器
	if cfg.OpenBrowser {
		host := cfg.Addr
		if strings.HasPrefix(host, ":") {
			host = "127.0.0.1" + host
		}
		go openBrowser("http://" + host)
	}

	if err := app.Serve(ctx, ln); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
