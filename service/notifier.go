package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"restoadmin/config"
	"restoadmin/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// CallNotifier 新呼叫请求通知
type CallNotifier interface {
	NotifyCall(ctx context.Context, call models.CallRequest) error
}

// TelegramNotifier 通过 Telegram 机器人把呼叫请求推送到服务员群
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger
}

// NewTelegramNotifier 创建通知器；创建时会调用 getMe 校验 token
func NewTelegramNotifier(cfg config.TelegramConfig, logger *slog.Logger) (*TelegramNotifier, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Token == "" || cfg.ChatID == 0 {
		return nil, fmt.Errorf("telegram token and chat_id are required")
	}
	endpoint := cfg.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	api, err := tgbotapi.NewBotAPIWithClient(cfg.Token, endpoint, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("init telegram bot: %w", err)
	}
	return &TelegramNotifier{
		api:    api,
		chatID: cfg.ChatID,
		logger: logger.With("component", "telegram_notifier", "bot", api.Self.UserName),
	}, nil
}

// NotifyCall 发送一条呼叫提醒
func (n *TelegramNotifier) NotifyCall(ctx context.Context, call models.CallRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(n.chatID, CallMessage(call))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	n.logger.Debug("call request notified", "call", call.ID, "table", call.Table)
	return nil
}

// CallMessage 呼叫提醒文本
func CallMessage(call models.CallRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔔 %s 号桌呼叫服务员", call.Table)
	if call.Reason != "" {
		fmt.Fprintf(&b, "\n原因: %s", call.Reason)
	}
	if !call.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "\n时间: %s", call.CreatedAt.Local().Format("15:04:05"))
	}
	return b.String()
}
