package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Wolfjoee/Espresstrackk/internal/config"
	"github.com/Wolfjoee/Espresstrackk/internal/domain"
	"github.com/Wolfjoee/Espresstrackk/internal/ledger"
	"github.com/Wolfjoee/Espresstrackk/internal/repo"
	"github.com/Wolfjoee/Espresstrackk/internal/report"
)

const (
	welcomeText = "👋 *Welcome to Espresstrackk!*\n\n" +
		"Track income, expenses, savings and loans right here.\n\n" +
		"*Quick Commands:*\n" +
		"• `salary credited 50000`\n" +
		"• `spend 500 food lunch`\n" +
		"• `credit savings 5000`\n\n" +
		"*Choose an option:*"

	helpText = "📖 *Help - How to Use*\n\n" +
		"*📝 Text Commands:*\n" +
		"• `salary credited <amount>` or `income <amount> [category] [note]`\n" +
		"• `spend <amount> [category] [note]`\n" +
		"• `credit savings <amount>` or `save <amount>`\n" +
		"• `today report`, `month report`, `mini statement`\n\n" +
		"*🤝 Loans:*\n" +
		"Use the Loans menu, then send `<amount> <name> [purpose]`,\n" +
		"e.g. `500 John bike repair`.\n\n" +
		"*📊 Reports:*\n" +
		"Today, month, daily expenses, spending analysis, person-wise loans.\n\n" +
		"Categories: food, transport, bills, shopping, health, entertainment, education, other.\n\n" +
		"Type commands or use the buttons! 😊"

	genericSaveErr = "❌ Could not save that right now. Please try again."
	genericLoadErr = "❌ Could not load that right now. Please try again."
)

type Handler struct {
	api *tgbotapi.BotAPI
	cfg config.Config
	log *zap.SugaredLogger
	loc *time.Location

	pool     *pgxpool.Pool
	tx       *repo.Transactions
	debts    *repo.Debts
	settings *repo.Settings
	sessions Sessions
}

func NewHandler(api *tgbotapi.BotAPI, cfg config.Config, log *zap.SugaredLogger, pool *pgxpool.Pool,
	tx *repo.Transactions, debts *repo.Debts, settings *repo.Settings, sessions Sessions) *Handler {
	return &Handler{
		api:      api,
		cfg:      cfg,
		log:      log,
		loc:      cfg.Location(),
		pool:     pool,
		tx:       tx,
		debts:    debts,
		settings: settings,
		sessions: sessions,
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		h.HandleCallback(ctx, upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}

	msg := upd.Message
	// private chats only
	if !msg.Chat.IsPrivate() {
		return
	}

	ownerID := msg.From.ID
	if err := h.settings.Ensure(ctx, ownerID); err != nil {
		h.log.Errorw("ensure settings", "owner", ownerID, "err", err)
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if strings.HasPrefix(text, "/start") {
		h.sessions.Clear(ownerID)
		h.reply(msg.Chat.ID, welcomeText, mainMenuKeyboard())
		return
	}
	if strings.HasPrefix(text, "/help") {
		h.reply(msg.Chat.ID, helpText, backKeyboard())
		return
	}

	if sess := h.sessions.Get(ownerID); sess.Active() {
		h.handleConversation(ctx, msg.Chat.ID, ownerID, sess, text)
		return
	}

	h.handleCommand(ctx, msg.Chat.ID, ownerID, text)
}

// entryCommands is the amount-first grammar, longest prefix first so
// "salary credited" wins over "salary".
var entryCommands = []struct {
	prefix     string
	kind       domain.Kind
	amountOnly bool
}{
	{"salary credited ", domain.KindIncome, true},
	{"salary ", domain.KindIncome, true},
	{"income ", domain.KindIncome, false},
	{"credit savings ", domain.KindSavings, true},
	{"save ", domain.KindSavings, true},
	{"spend ", domain.KindExpense, false},
}

// matchEntryCommand matches text against the entry grammar. Prefixes match
// case-insensitively, but the remainder is sliced from the original text so
// notes keep the sender's casing.
func matchEntryCommand(text string) (kind domain.Kind, rest string, amountOnly, ok bool) {
	low := strings.ToLower(text)
	for _, c := range entryCommands {
		if strings.HasPrefix(low, c.prefix) {
			return c.kind, strings.TrimSpace(text[len(c.prefix):]), c.amountOnly, true
		}
	}
	return "", "", false, false
}

// handleCommand matches the free-text grammar: amount-first entry commands
// by prefix, report requests by substring anywhere in the message.
func (h *Handler) handleCommand(ctx context.Context, chatID, ownerID int64, text string) {
	if kind, rest, amountOnly, ok := matchEntryCommand(text); ok {
		if amountOnly {
			h.recordAmountOnly(ctx, chatID, ownerID, kind, rest)
		} else {
			h.recordEntry(ctx, chatID, ownerID, kind, rest)
		}
		return
	}

	low := strings.ToLower(text)
	switch {
	case strings.Contains(low, "today report"):
		h.sendReport(chatID, func() (string, error) { return h.buildTodayReport(ctx, ownerID) })
	case strings.Contains(low, "month report"):
		h.sendReport(chatID, func() (string, error) { return h.buildMonthReport(ctx, ownerID) })
	case strings.Contains(low, "statement"):
		h.sendReport(chatID, func() (string, error) { return h.buildMiniStatement(ctx, ownerID) })
	default:
		h.reply(chatID,
			"❌ Unknown command.\n\nUse the buttons below or type:\n"+
				"• `salary credited 50000`\n"+
				"• `spend 500 food lunch`\n"+
				"• `credit savings 2000`",
			mainMenuKeyboard())
	}
}

func (h *Handler) recordAmountOnly(ctx context.Context, chatID, ownerID int64, kind domain.Kind, rest string) {
	amount, err := ledger.ParseAmount(rest)
	if err != nil {
		h.replyBadAmount(chatID)
		return
	}
	h.record(ctx, chatID, ownerID, kind, ledger.Entry{AmountPaise: amount, Category: domain.CategoryOther})
}

func (h *Handler) recordEntry(ctx context.Context, chatID, ownerID int64, kind domain.Kind, rest string) {
	entry, err := ledger.ParseEntry(rest)
	if err != nil {
		h.replyBadAmount(chatID)
		return
	}
	h.record(ctx, chatID, ownerID, kind, entry)
}

func (h *Handler) record(ctx context.Context, chatID, ownerID int64, kind domain.Kind, e ledger.Entry) {
	if _, err := h.tx.Record(ctx, ownerID, kind, e.AmountPaise, e.Category, e.Note); err != nil {
		h.log.Errorw("record transaction", "owner", ownerID, "kind", kind, "err", err)
		h.reply(chatID, genericSaveErr, mainMenuKeyboard())
		return
	}

	var b strings.Builder
	switch kind {
	case domain.KindIncome:
		b.WriteString("✅ *Income Recorded*\n\n💰 Amount: ")
	case domain.KindExpense:
		b.WriteString("✅ *Expense Recorded*\n\n💸 Amount: ")
	case domain.KindSavings:
		b.WriteString("✅ *Savings Credited*\n\n🏦 Amount: ")
	}
	b.WriteString(report.Money(e.AmountPaise))
	if kind == domain.KindExpense {
		fmt.Fprintf(&b, "\n🏷 Category: %s", e.Category)
	}
	if e.Note != "" {
		fmt.Fprintf(&b, "\n📝 Note: %s", report.EscapeMarkdown(e.Note))
	}
	fmt.Fprintf(&b, "\n📅 Date: %s", time.Now().In(h.loc).Format("02 Jan 2006, 03:04 PM"))

	h.reply(chatID, b.String(), mainMenuKeyboard())
}

// handleConversation interprets the owner's next message according to the
// active awaiting state. A failed parse reprompts and keeps the state; a
// successful one writes, confirms, and returns to idle.
func (h *Handler) handleConversation(ctx context.Context, chatID, ownerID int64, sess Session, text string) {
	switch sess.State {
	case StateAwaitIncomeAmount, StateAwaitSavingsAmount:
		kind := domain.KindIncome
		if sess.State == StateAwaitSavingsAmount {
			kind = domain.KindSavings
		}
		amount, err := ledger.ParseAmount(text)
		if err != nil {
			h.reply(chatID, "❌ That is not a valid amount.\nSend a positive number, e.g. `5000`.", cancelKeyboard())
			return
		}
		h.sessions.Clear(ownerID)
		h.record(ctx, chatID, ownerID, kind, ledger.Entry{AmountPaise: amount, Category: domain.CategoryOther})

	case StateAwaitExpenseDetail:
		entry, err := ledger.ParseEntry(text)
		if err != nil {
			h.reply(chatID, "❌ That did not parse.\nSend `amount [category] [note]`, e.g. `500 food lunch`.", cancelKeyboard())
			return
		}
		h.sessions.Clear(ownerID)
		h.record(ctx, chatID, ownerID, domain.KindExpense, entry)

	case StateAwaitBorrowDetail, StateAwaitLendDetail:
		debtType := domain.DebtBorrowed
		if sess.State == StateAwaitLendDetail {
			debtType = domain.DebtLent
		}
		entry, err := ledger.ParseDebtEntry(text)
		if err != nil {
			h.reply(chatID, "❌ That did not parse.\nSend `amount name [purpose]`, e.g. `500 John bike repair`.", cancelKeyboard())
			return
		}
		h.sessions.Clear(ownerID)
		h.recordDebt(ctx, chatID, ownerID, debtType, entry)

	case StateAwaitSettlementDetail:
		idStr := strings.TrimPrefix(strings.TrimSpace(text), "#")
		debtID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil || debtID <= 0 {
			h.reply(chatID, "❌ Send the debt id from the list, e.g. `12`.", cancelKeyboard())
			return
		}
		h.sessions.Clear(ownerID)
		h.settleDebt(ctx, chatID, ownerID, debtID, sess.Debt)

	default:
		h.sessions.Clear(ownerID)
		h.handleCommand(ctx, chatID, ownerID, text)
	}
}

func (h *Handler) recordDebt(ctx context.Context, chatID, ownerID int64, debtType domain.DebtType, e ledger.DebtEntry) {
	id, err := h.debts.Create(ctx, ownerID, debtType, e.AmountPaise, e.Contact, e.Purpose)
	if err != nil {
		h.log.Errorw("record debt", "owner", ownerID, "type", debtType, "err", err)
		h.reply(chatID, genericSaveErr, mainMenuKeyboard())
		return
	}

	title, dir := "✅ *Borrow Recorded*", "From"
	if debtType == domain.DebtLent {
		title, dir = "✅ *Lend Recorded*", "To"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d\n\n💵 Amount: %s\n👤 %s: %s", title, id, report.Money(e.AmountPaise), dir, report.EscapeMarkdown(e.Contact))
	if e.Purpose != "" {
		fmt.Fprintf(&b, "\n📝 Purpose: %s", report.EscapeMarkdown(e.Purpose))
	}
	b.WriteString("\n⏳ Status: pending")
	h.reply(chatID, b.String(), mainMenuKeyboard())
}

func (h *Handler) settleDebt(ctx context.Context, chatID, ownerID, debtID int64, debtType domain.DebtType) {
	ok, err := h.debts.Settle(ctx, ownerID, debtID, debtType)
	if err != nil {
		h.log.Errorw("settle debt", "owner", ownerID, "debt", debtID, "err", err)
		h.reply(chatID, genericSaveErr, mainMenuKeyboard())
		return
	}
	if !ok {
		h.reply(chatID, fmt.Sprintf("❌ Debt #%d was not found, is not yours, or is already settled.", debtID), mainMenuKeyboard())
		return
	}

	verb := "returned"
	if debtType == domain.DebtLent {
		verb = "received back"
	}
	h.reply(chatID, fmt.Sprintf("✅ Debt #%d marked %s. Settled on %s.",
		debtID, verb, time.Now().In(h.loc).Format("02 Jan 2006")), mainMenuKeyboard())
}

func (h *Handler) replyBadAmount(chatID int64) {
	h.reply(chatID,
		"❌ *Invalid Amount*\n\nPlease enter a valid positive number.\n\n"+
			"*Examples:*\n• `spend 500`\n• `salary credited 50000`",
		mainMenuKeyboard())
}

// reply sends Markdown text, paginating when it exceeds the transport
// limit. The keyboard rides on the final chunk so it stays reachable.
func (h *Handler) reply(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	chunks := report.Paginate(text, report.ChunkLimit)
	for i, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = "Markdown"
		if i == len(chunks)-1 {
			msg.ReplyMarkup = kb
		}
		if _, err := h.api.Send(msg); err != nil {
			h.log.Errorw("send message", "chat", chatID, "err", err)
		}
	}
}

func (h *Handler) sendReport(chatID int64, build func() (string, error)) {
	text, err := build()
	if err != nil {
		h.reply(chatID, genericLoadErr, mainMenuKeyboard())
		return
	}
	h.reply(chatID, text, mainMenuKeyboard())
}

// Report builders shared by text commands and button taps.

func (h *Handler) buildTodayReport(ctx context.Context, ownerID int64) (string, error) {
	from, to := h.dayRange(time.Now().In(h.loc))
	s, err := h.tx.SummarizeRange(ctx, ownerID, from, to)
	if err != nil {
		h.log.Errorw("today report", "owner", ownerID, "err", err)
		return "", err
	}
	return report.Today(s, from), nil
}

func (h *Handler) buildMonthReport(ctx context.Context, ownerID int64) (string, error) {
	now := time.Now().In(h.loc)
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc)
	to := from.AddDate(0, 1, 0)
	s, err := h.tx.SummarizeRange(ctx, ownerID, from, to)
	if err != nil {
		h.log.Errorw("month report", "owner", ownerID, "err", err)
		return "", err
	}
	return report.Month(s, from), nil
}

func (h *Handler) buildDailyExpenses(ctx context.Context, ownerID int64) (string, error) {
	_, to := h.dayRange(time.Now().In(h.loc))
	from := to.AddDate(0, 0, -7)
	rows, err := h.tx.DailyExpenses(ctx, ownerID, from, to, h.cfg.Timezone)
	if err != nil {
		h.log.Errorw("daily expenses", "owner", ownerID, "err", err)
		return "", err
	}
	return report.DailyExpenses(rows), nil
}

func (h *Handler) buildSpendingAnalysis(ctx context.Context, ownerID int64) (string, error) {
	_, to := h.dayRange(time.Now().In(h.loc))
	from := to.AddDate(0, 0, -30)
	rows, err := h.tx.ExpensesByCategory(ctx, ownerID, from, to)
	if err != nil {
		h.log.Errorw("spending analysis", "owner", ownerID, "err", err)
		return "", err
	}
	return report.SpendingAnalysis(rows), nil
}

func (h *Handler) buildMiniStatement(ctx context.Context, ownerID int64) (string, error) {
	txs, err := h.tx.Recent(ctx, ownerID, 10)
	if err != nil {
		h.log.Errorw("mini statement", "owner", ownerID, "err", err)
		return "", err
	}
	return report.MiniStatement(txs), nil
}

// dayRange returns [local midnight, next midnight) for the given instant.
// A transaction stamped exactly at midnight belongs to that day.
func (h *Handler) dayRange(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, h.loc)
	return from, from.AddDate(0, 0, 1)
}
