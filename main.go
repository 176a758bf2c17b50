package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"restoadmin/config"
	"restoadmin/router"
	"restoadmin/service"
)

// @title 餐厅管理后台 API
// @version 1.0
// @description 菜单/分类与菜品关联编辑、经营仪表盘与订单看板
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 8080 或 :8080")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("餐厅管理后台 v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	config.PrintConfig()

	logger := newLogger(cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := service.NewBackendClient(cfg.Backend, logger)
	sessions := service.NewSessionStore(cfg.Editor.SessionTTL)
	defer sessions.Stop()

	tracker := service.NewOrderTracker(backend, service.NewCredential(cfg.Backend.ServiceToken), cfg.Tracker.Interval, logger)
	if cfg.Notify.Telegram.Enabled {
		notifier, err := service.NewTelegramNotifier(cfg.Notify.Telegram, logger)
		if err != nil {
			logger.Warn("telegram notifier disabled", "error", err)
		} else {
			tracker.SetNotifier(notifier)
		}
	}
	if cfg.Tracker.Enabled {
		go tracker.Start(ctx)
	}

	r := router.SetupRouter(cfg, router.Services{
		Backend:   backend,
		Editor:    service.NewEditorService(backend, sessions, logger),
		Dashboard: service.NewDashboard(logger),
		Tracker:   tracker,
		Logger:    logger,
	})

	srv := &http.Server{
		Addr:    cfg.Server.Port,
		Handler: r,
	}

	log.Printf("==========================================")
	log.Printf("  🍽  餐厅管理后台已启动")
	log.Printf("==========================================")
	log.Printf("  后端服务: %s", cfg.Backend.BaseURL)
	log.Printf("  Swagger:  %s/swagger/index.html", cfg.Server.BaseURL)
	log.Printf("  管理接口: %s/admin/", cfg.Server.BaseURL)
	log.Printf("==========================================")

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务器启动失败: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
}

// newLogger 根据配置创建 slog 日志
func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}
