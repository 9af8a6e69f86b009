package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"

	"grape/internal/config"
	"grape/internal/server/game"
	httpserver "grape/internal/server/http"
	"grape/internal/server/ws"
)

// NewLogger 控制台格式的 zerolog；w 为空时写 stderr
func NewLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	if w == nil {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(w).Level(cfg.Level()).With().Timestamp().Logger()
}

// App 本地对弈服务：对局表 + 推送 + HTTP
type App struct {
	Config *config.Store
	Games  *game.Manager
	Hub    *ws.Hub
	log    zerolog.Logger
	srv    *http.Server
}

func NewApp(cfg config.Config, logger zerolog.Logger) *App {
	store := config.NewStore(cfg)
	cfg = store.Get()
	a := &App{
		Config: store,
		Games:  game.NewManager(),
		Hub:    ws.NewHub(cfg.PingInterval(), logger),
		log:    logger,
	}
	s := httpserver.NewServer(store, a.Games, a.Hub, logger)
	a.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(cfg.WebDir, cfg.MobileWebDir),
		ReadHeaderTimeout: 5 * time.Second,
	}
	// Shutdown 不等已升级的 websocket 连接，由 hub 自己断开
	a.srv.RegisterOnShutdown(a.Hub.Close)
	return a
}

// Listen 先占端口，方便调用方在服务起来之后再开浏览器
func (a *App) Listen() (net.Listener, error) {
	return net.Listen("tcp", a.srv.Addr)
}

// Serve 阻塞直到 ctx 结束或监听出错；ctx 结束时优雅关闭
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	done := make(chan struct{})
	defer close(done)
	defer a.Hub.Close()
	go a.Hub.Run(done)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", ln.Addr().String()).Str("web", a.Config.Get().WebDir).Msg("listening")
		errCh <- a.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (a *App) Run(ctx context.Context) error {
	ln, err := a.Listen()
	if err != nil {
		return err
	}
	return a.Serve(ctx, ln)
}
