package bot

import (
	"fmt"

	"alfacard_miniapp/internal/model"

	"github.com/shopspring/decimal"
)

const defaultFirstName = "Гость"

const startText = "👋 Добро пожаловать в реферальную программу Альфа-Банка!\n\n" +
	"🎁 Получите 1000₽ бонусом за оформление карты\n" +
	"💰 Зарабатывайте 200₽ за каждого друга\n\n" +
	"📱 Установите приложение на телефон:\n" +
	"1. Откройте приложение (кнопка ниже)\n" +
	"2. iPhone: Safari → Поделиться → На экран «Домой»\n" +
	"3. Android: Chrome → Меню (⋮) → Установить приложение\n\n" +
	"Нажмите кнопку, чтобы начать! 👇"

const helpText = "❓ *Помощь и поддержка*\n\n" +
	"📱 Telegram: @Alfa_Bank778\n" +
	"📧 Email: support@alfacard.promo\n\n" +
	"🕐 Время работы:\n" +
	"Ежедневно с 9:00 до 21:00 (МСК)\n\n" +
	"Мы всегда готовы помочь вам!"

const installGuideText = "📱 *Как установить приложение на телефон*\n\n" +
	"🍎 *Для iPhone (iOS):*\n" +
	"1. Откройте приложение через Safari\n" +
	"2. Нажмите кнопку «Поделиться» (↑)\n" +
	"3. Прокрутите вниз и выберите «На экран «Домой»»\n" +
	"4. Нажмите «Добавить»\n\n" +
	"🤖 *Для Android:*\n" +
	"1. Откройте приложение через Chrome\n" +
	"2. Нажмите меню (⋮) в правом верхнем углу\n" +
	"3. Выберите «Установить приложение» или «Добавить на главный экран»\n" +
	"4. Нажмите «Установить»\n\n" +
	"✨ После установки приложение будет работать как обычное приложение " +
	"с иконкой на главном экране!"

const unknownCommandText = "Неизвестная команда"

func (s *Service) orderCardText() string {
	return "💳 *Оформление карты Альфа-Банка*\n\n" +
		"🎁 Получите 1000₽ бонусом:\n" +
		"• 500₽ от нас\n" +
		"• 500₽ от Альфа-Банка\n\n" +
		"📝 Инструкция:\n" +
		"1. Перейдите по ссылке: " + s.cfg.CardOrderURL + "\n" +
		"2. Оформите карту\n" +
		"3. Активируйте в приложении\n" +
		"4. Совершите покупку от 200₽\n" +
		"5. Пришлите чек в @Alfa_Bank778\n\n" +
		"✨ Бесплатное обслуживание и кэшбэк!"
}

func (s *Service) balanceText(user *model.User) string {
	amount := decimal.Zero
	if user != nil {
		amount = user.Balance
	}

	return fmt.Sprintf("💰 *Ваш баланс*\n\n"+
		"Текущий баланс: *%s ₽*\n\n"+
		"Чтобы пополнить баланс:\n"+
		"• Оформите карту Альфа-Банка (+500₽)\n"+
		"• Пригласите друзей (+200₽ за каждого)", formatAmount(amount))
}

func (s *Service) referralText(user *model.User) string {
	link := fmt.Sprintf(s.cfg.ReferralLinkFmt, "ABC123")
	if user != nil {
		link = fmt.Sprintf(s.cfg.ReferralLinkFmt, user.ReferralCode)
	}

	return fmt.Sprintf("👥 *Реферальная программа*\n\n"+
		"💸 Зарабатывайте 200₽ за каждого друга!\n\n"+
		"Ваша реферальная ссылка:\n"+
		"`%s`\n\n"+
		"Как это работает:\n"+
		"1. Отправьте ссылку другу\n"+
		"2. Друг регистрируется и оформляет карту\n"+
		"3. Вы оба получаете бонусы!", link)
}

func (s *Service) withdrawText(user *model.User) string {
	amount := decimal.Zero
	if user != nil {
		amount = user.Balance
	}

	return fmt.Sprintf("💸 *Вывод средств*\n\n"+
		"Доступно к выводу: *%s ₽*\n\n"+
		"Вывод осуществляется через СБП (Систему Быстрых Платежей) "+
		"на любой банк без комиссии.\n\n"+
		"Откройте приложение для оформления заявки на вывод.", formatAmount(amount))
}

func activatedText(balance decimal.Decimal) string {
	return fmt.Sprintf("🎉 *Поздравляем!*\n\n"+
		"Ваша карта успешно активирована!\n"+
		"💰 Бонус *500₽* зачислен на ваш баланс!\n\n"+
		"Ваш новый баланс: *%s₽*\n\n"+
		"Теперь вы можете:\n"+
		"• Вывести средства через СБП\n"+
		"• Пригласить друзей и получить ещё больше!\n\n"+
		"Откройте приложение, чтобы продолжить 👇", formatAmount(balance))
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Reply markup schema declared locally: the pinned library release
// predates web_app buttons, and MessageConfig.ReplyMarkup marshals any
// value straight into the reply_markup parameter.
type webAppInfo struct {
	URL string `json:"url"`
}

type inlineButton struct {
	Text         string      `json:"text"`
	URL          string      `json:"url,omitempty"`
	CallbackData string      `json:"callback_data,omitempty"`
	WebApp       *webAppInfo `json:"web_app,omitempty"`
}

type inlineKeyboard struct {
	InlineKeyboard [][]inlineButton `json:"inline_keyboard"`
}

func webAppButton(text, url string) inlineButton {
	return inlineButton{Text: text, WebApp: &webAppInfo{URL: url}}
}

func urlButton(text, url string) inlineButton {
	return inlineButton{Text: text, URL: url}
}

func callbackButton(text, data string) inlineButton {
	return inlineButton{Text: text, CallbackData: data}
}

func (s *Service) startKeyboard() inlineKeyboard {
	app := s.cfg.WebAppURL
	return inlineKeyboard{InlineKeyboard: [][]inlineButton{
		{webAppButton("🚀 Открыть приложение", app)},
		{
			webAppButton("💳 Оформить карту", app+"?page=card-order"),
			webAppButton("💰 Баланс", app),
		},
		{
			webAppButton("👥 Пригласить друга", app+"?page=referral"),
			webAppButton("💸 Вывести деньги", app+"?page=withdraw"),
		},
		{webAppButton("❓ Помощь", app+"?page=support")},
		{callbackButton("📱 Как установить на телефон?", string(TriggerInstallGuide))},
	}}
}

func (s *Service) orderCardKeyboard() inlineKeyboard {
	return inlineKeyboard{InlineKeyboard: [][]inlineButton{
		{urlButton("🔗 Оформить карту", s.cfg.CardOrderURL)},
	}}
}

func (s *Service) openAppKeyboard() inlineKeyboard {
	return inlineKeyboard{InlineKeyboard: [][]inlineButton{
		{webAppButton("🚀 Открыть приложение", s.cfg.WebAppURL)},
	}}
}
