package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bcolucci/rcb/server"
)

// 入口：启动 HTTP + WebSocket 服务，每个连接 init 后拥有独立的模拟会话
func main() {
	cfg := server.DefaultConfig()
	if err := server.LoadEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := cfg.ApplyEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := server.InitLogger(cfg.LogFile, cfg.LogLevel, cfg.LogStderr); err != nil {
		panic(err)
	}
	defer server.SyncLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.NewServer(ctx, cfg)
	httpSrv := &http.Server{Addr: cfg.Addr, Handler: srv.Routes()}

	go func() {
		server.Log.Infof("rcb listening on %s (tick %s); open http://localhost%v/", cfg.Addr, cfg.TickInterval, cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			server.Log.Fatalf("listen: %v", err)
		}
	}()

	// 优雅退出（Ctrl+C）：先停会话，再关 HTTP
	<-ctx.Done()
	server.Log.Info("Shutting down...")
	srv.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		server.Log.Warnf("shutdown: %v", err)
	}
}
