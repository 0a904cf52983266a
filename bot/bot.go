package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"storebot/config"
	"storebot/services"
)

// Bot routes every free-text Telegram message through the intent router.
// Conversation state is keyed "tg:<chat id>" in the conversation store.
type Bot struct {
	api           *tgbotapi.BotAPI
	router        *services.Router
	conversations services.ConversationStore
	log           *logrus.Logger
}

func New(cfg *config.Config, cat services.Catalog, conversations services.ConversationStore, log *logrus.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:           api,
		router:        services.NewRouter(cat, log),
		conversations: conversations,
		log:           log,
	}, nil
}

func conversationID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "Mulai percakapan"},
			{Command: "help", Description: "Daftar perintah"},
		},
	}
	_, err := b.api.Request(cfg)
	return err
}

func (b *Bot) Start() {
	_ = b.setBotCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}
		msg := update.Message
		text := strings.TrimSpace(msg.Text)

		switch text {
		case "/start":
			b.handleChat(msg.Chat.ID, "halo")
		case "/help":
			b.handleChat(msg.Chat.ID, "bantuan")
		default:
			b.handleChat(msg.Chat.ID, text)
		}
	}
}

func (b *Bot) handleChat(chatID int64, text string) {
	ctx := context.Background()
	convID := conversationID(chatID)

	state, err := b.conversations.Get(ctx, convID)
	if err != nil {
		b.log.WithError(err).Error("load conversation")
		b.send(chatID, "Terjadi kesalahan pada server saat memproses pesan. Coba lagi.")
		return
	}

	reply := b.router.Reply(ctx, text, state)

	if err := b.conversations.Save(ctx, convID, state); err != nil {
		b.log.WithError(err).Error("save conversation")
	}
	b.send(chatID, reply)
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.WithError(err).Error("telegram send")
	}
}
