package bot

import (
	"context"

	"alfacard_miniapp/internal/metrics"
	"alfacard_miniapp/internal/model"
	"alfacard_miniapp/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// API is the slice of tgbotapi.BotAPI the webhook service uses, so
// tests can substitute a fake transport.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// UserDirectory resolves real user state for replies that surface
// balance and referral figures.
type UserDirectory interface {
	GetOrCreateUser(ctx context.Context, telegramID int64, username, firstName string) (*model.User, error)
}

type Config struct {
	WebAppURL       string `yaml:"webAppURL"`
	CardOrderURL    string `yaml:"cardOrderURL"`
	ReferralLinkFmt string `yaml:"referralLinkFmt"`
}

type Service struct {
	api     API
	users   UserDirectory
	metrics *metrics.Metrics
	cfg     Config
}

// NewService creates the webhook dispatcher. api may be nil (no bot
// credential configured), in which case every send is skipped; users
// may be nil, in which case balance/referral replies fall back to the
// canned figures.
func NewService(api API, users UserDirectory, m *metrics.Metrics, cfg Config) *Service {
	return &Service{
		api:     api,
		users:   users,
		metrics: m,
		cfg:     cfg,
	}
}

// DecodeUpdate parses a raw webhook body into a Telegram update.
func DecodeUpdate(body []byte) (*tgbotapi.Update, error) {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// HandleUpdate dispatches one inbound update. It never fails: every
// outbound send is best-effort and the webhook response does not depend
// on the outcome.
func (s *Service) HandleUpdate(ctx context.Context, update *tgbotapi.Update) {
	switch {
	case update.Message != nil:
		s.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		s.handleCallback(ctx, update.CallbackQuery)
	}
}

func (s *Service) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	trigger := parseMessageTrigger(msg.Text)
	if trigger != TriggerStart || msg.Chat == nil {
		return
	}
	s.countUpdate(trigger)

	// Register the sender on first contact.
	s.lookupUser(ctx, msg.From)

	out := tgbotapi.NewMessage(msg.Chat.ID, startText)
	out.ReplyMarkup = s.startKeyboard()
	s.send(out)
}

func (s *Service) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := callbackChatID(cb)
	if chatID == 0 {
		return
	}

	trigger := parseCallbackTrigger(cb.Data)
	s.countUpdate(trigger)

	var user *model.User
	if trigger.wantsUserState() {
		user = s.lookupUser(ctx, cb.From)
	}

	r := s.buildReply(trigger, user)

	out := tgbotapi.NewMessage(chatID, r.text)
	if r.markdown {
		out.ParseMode = tgbotapi.ModeMarkdown
	}
	if r.keyboard != nil {
		out.ReplyMarkup = *r.keyboard
	}
	s.send(out)

	// Acknowledge regardless of the reply outcome so the client UI
	// clears its loading state.
	s.ack(cb.ID)
}

// lookupUser get-or-creates the sender's row. Failures degrade to nil:
// the bot must keep answering even when the store is down.
func (s *Service) lookupUser(ctx context.Context, from *tgbotapi.User) *model.User {
	if s.users == nil || from == nil {
		return nil
	}

	firstName := from.FirstName
	if firstName == "" {
		firstName = defaultFirstName
	}

	user, err := s.users.GetOrCreateUser(ctx, from.ID, from.UserName, firstName)
	if err != nil {
		logger.Logger().Warn("failed to resolve user for bot reply",
			zap.Int64("telegram_id", from.ID),
			zap.Error(err))
		return nil
	}
	return user
}

func (s *Service) send(c tgbotapi.Chattable) {
	if s.api == nil {
		return
	}

	if _, err := s.api.Send(c); err != nil {
		s.countSend("error")
		logger.Logger().Warn("failed to send telegram message", zap.Error(err))
		return
	}
	s.countSend("ok")
}

func (s *Service) ack(callbackID string) {
	if s.api == nil {
		return
	}

	if _, err := s.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		s.countSend("error")
		logger.Logger().Warn("failed to answer callback query", zap.Error(err))
		return
	}
	s.countSend("ok")
}

func (s *Service) countUpdate(trigger Trigger) {
	if s.metrics != nil {
		s.metrics.BotUpdates.WithLabelValues(string(trigger)).Inc()
	}
}

func (s *Service) countSend(result string) {
	if s.metrics != nil {
		s.metrics.TelegramSends.WithLabelValues(result).Inc()
	}
}

// NotifyCardActivated sends the activation congratulation. Implements
// service.Notifier; failures are logged and swallowed.
func (s *Service) NotifyCardActivated(_ context.Context, telegramID int64, balance decimal.Decimal) {
	out := tgbotapi.NewMessage(telegramID, activatedText(balance))
	out.ParseMode = tgbotapi.ModeMarkdown
	out.ReplyMarkup = s.openAppKeyboard()
	s.send(out)
}
