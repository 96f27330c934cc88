package bot

import (
	"strings"

	"alfacard_miniapp/internal/model"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Trigger enumerates the recognised inbound events. Callback trigger
// values equal the callback tokens emitted by the inline keyboards.
type Trigger string

const (
	TriggerStart        Trigger = "start"
	TriggerOrderCard    Trigger = "order_card"
	TriggerBalance      Trigger = "balance"
	TriggerReferral     Trigger = "referral"
	TriggerWithdraw     Trigger = "withdraw"
	TriggerHelp         Trigger = "help"
	TriggerInstallGuide Trigger = "install_guide"
	TriggerUnknown      Trigger = "unknown"
)

// wantsUserState reports whether the reply surfaces real balance or
// referral figures and therefore needs a store lookup.
func (t Trigger) wantsUserState() bool {
	switch t {
	case TriggerBalance, TriggerReferral, TriggerWithdraw:
		return true
	}
	return false
}

func parseMessageTrigger(text string) Trigger {
	if text == "/start" || strings.HasPrefix(text, "/start ") {
		return TriggerStart
	}
	return TriggerUnknown
}

func parseCallbackTrigger(data string) Trigger {
	switch Trigger(data) {
	case TriggerOrderCard, TriggerBalance, TriggerReferral,
		TriggerWithdraw, TriggerHelp, TriggerInstallGuide:
		return Trigger(data)
	}
	return TriggerUnknown
}

func callbackChatID(cb *tgbotapi.CallbackQuery) int64 {
	if cb.Message != nil && cb.Message.Chat != nil {
		return cb.Message.Chat.ID
	}
	if cb.From != nil {
		return cb.From.ID
	}
	return 0
}

type reply struct {
	text     string
	markdown bool
	keyboard *inlineKeyboard
}

// buildReply maps a callback trigger to its response payload. user is
// nil when no real state is available; builders then fall back to the
// canned figures.
func (s *Service) buildReply(trigger Trigger, user *model.User) reply {
	switch trigger {
	case TriggerOrderCard:
		kb := s.orderCardKeyboard()
		return reply{text: s.orderCardText(), markdown: true, keyboard: &kb}
	case TriggerBalance:
		return reply{text: s.balanceText(user), markdown: true}
	case TriggerReferral:
		return reply{text: s.referralText(user), markdown: true}
	case TriggerWithdraw:
		return reply{text: s.withdrawText(user), markdown: true}
	case TriggerHelp:
		return reply{text: helpText, markdown: true}
	case TriggerInstallGuide:
		return reply{text: installGuideText, markdown: true}
	default:
		return reply{text: unknownCommandText}
	}
}
