package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
	"github.com/Wolfjoee/Espresstrackk/internal/repo"
	"github.com/Wolfjoee/Espresstrackk/internal/report"
)

// HandleCallback routes button taps. Tokens are either bare ("back_menu")
// or "prefix:id" for actions on a specific record.
func (h *Handler) HandleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	// Telegram requires an answer for every callback.
	defer h.api.Request(tgbotapi.NewCallback(q.ID, ""))

	if q.Message == nil {
		return
	}
	ownerID := q.From.ID
	data := q.Data

	if err := h.settings.Ensure(ctx, ownerID); err != nil {
		h.log.Errorw("ensure settings", "owner", ownerID, "err", err)
	}

	switch data {
	case "back_menu":
		h.sessions.Clear(ownerID)
		h.edit(q, welcomeText, mainMenuKeyboard())
	case "help":
		h.edit(q, helpText, backKeyboard())

	case "menu_income":
		h.sessions.Set(ownerID, Session{State: StateAwaitIncomeAmount})
		h.edit(q, "💰 *Add Income*\n\nSend the amount, e.g. `50000`.", cancelKeyboard())
	case "menu_expense":
		h.sessions.Set(ownerID, Session{State: StateAwaitExpenseDetail})
		h.edit(q, "💸 *Add Expense*\n\nSend `amount [category] [note]`.\n\n*Examples:*\n• `500 food lunch`\n• `200 transport`\n• `1500 electricity bill`", cancelKeyboard())
	case "menu_savings":
		h.sessions.Set(ownerID, Session{State: StateAwaitSavingsAmount})
		h.edit(q, "🏦 *Add Savings*\n\nSend the amount, e.g. `5000`.", cancelKeyboard())

	case "menu_reports":
		h.edit(q, "📊 *Select Report Type*", reportsKeyboard())
	case "menu_loans":
		h.edit(q, "🤝 *Loans*\n\nRecord what you borrow or lend, then settle it when the money comes back.", loansKeyboard())
	case "menu_settings":
		h.showSettings(ctx, q, ownerID)
	case "toggle_daily":
		h.toggleDailyReport(ctx, q, ownerID)

	case "report_today":
		h.editReport(q, func() (string, error) { return h.buildTodayReport(ctx, ownerID) })
	case "report_month":
		h.editReport(q, func() (string, error) { return h.buildMonthReport(ctx, ownerID) })
	case "daily_expenses":
		h.editReport(q, func() (string, error) { return h.buildDailyExpenses(ctx, ownerID) })
	case "spending_analysis":
		h.editReport(q, func() (string, error) { return h.buildSpendingAnalysis(ctx, ownerID) })
	case "mini_statement":
		h.editReport(q, func() (string, error) { return h.buildMiniStatement(ctx, ownerID) })

	case "loan_borrow":
		h.sessions.Set(ownerID, Session{State: StateAwaitBorrowDetail})
		h.edit(q, "📥 *I Borrowed*\n\nSend `amount name [purpose]`, e.g. `500 John bike repair`.", cancelKeyboard())
	case "loan_lend":
		h.sessions.Set(ownerID, Session{State: StateAwaitLendDetail})
		h.edit(q, "📤 *I Lent*\n\nSend `amount name [purpose]`, e.g. `1000 Priya rent share`.", cancelKeyboard())

	case "loan_pending_b":
		h.editPending(ctx, q, ownerID, domain.DebtBorrowed)
	case "loan_pending_l":
		h.editPending(ctx, q, ownerID, domain.DebtLent)
	case "loan_settle_b":
		h.startSettlement(ctx, q, ownerID, domain.DebtBorrowed)
	case "loan_settle_l":
		h.startSettlement(ctx, q, ownerID, domain.DebtLent)
	case "loan_personwise":
		h.editReport(q, func() (string, error) {
			rows, err := h.debts.PersonWise(ctx, ownerID)
			if err != nil {
				h.log.Errorw("person-wise", "owner", ownerID, "err", err)
				return "", err
			}
			return report.PersonWise(rows), nil
		})
	case "loan_summary":
		h.editReport(q, func() (string, error) {
			totals, err := h.debts.Totals(ctx, ownerID)
			if err != nil {
				h.log.Errorw("loan summary", "owner", ownerID, "err", err)
				return "", err
			}
			return report.DebtSummary(totals), nil
		})

	case "reset_confirm":
		h.edit(q,
			"⚠️ *Reset All Data*\n\nThis will delete ALL your records:\n"+
				"• every transaction\n• every loan record\n• your settings\n\n"+
				"❗ This action cannot be undone!\n\nAre you sure?",
			resetConfirmKeyboard())
	case "reset_confirmed":
		h.resetOwner(ctx, q, ownerID)

	case "cancel_entry":
		h.sessions.Clear(ownerID)
		h.edit(q, "❌ Cancelled. Nothing was saved.", mainMenuKeyboard())

	default:
		h.handleSettleToken(ctx, q, ownerID, data)
	}
}

func (h *Handler) handleSettleToken(ctx context.Context, q *tgbotapi.CallbackQuery, ownerID int64, data string) {
	prefix, idStr, found := strings.Cut(data, ":")
	if !found {
		return
	}
	debtID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || debtID <= 0 {
		return
	}

	var debtType domain.DebtType
	switch prefix {
	case "settle_b":
		debtType = domain.DebtBorrowed
	case "settle_l":
		debtType = domain.DebtLent
	default:
		return
	}

	h.sessions.Clear(ownerID)

	ok, err := h.debts.Settle(ctx, ownerID, debtID, debtType)
	if err != nil {
		h.log.Errorw("settle debt", "owner", ownerID, "debt", debtID, "err", err)
		h.edit(q, genericSaveErr, mainMenuKeyboard())
		return
	}
	if !ok {
		h.edit(q, fmt.Sprintf("❌ Debt #%d was not found, is not yours, or is already settled.", debtID), mainMenuKeyboard())
		return
	}

	verb := "returned"
	if debtType == domain.DebtLent {
		verb = "received back"
	}
	h.edit(q, fmt.Sprintf("✅ Debt #%d marked %s. Settled on %s.",
		debtID, verb, time.Now().In(h.loc).Format("02 Jan 2006")), mainMenuKeyboard())
}

func (h *Handler) editPending(ctx context.Context, q *tgbotapi.CallbackQuery, ownerID int64, debtType domain.DebtType) {
	rows, err := h.debts.Pending(ctx, ownerID, debtType)
	if err != nil {
		h.log.Errorw("pending debts", "owner", ownerID, "err", err)
		h.edit(q, genericLoadErr, mainMenuKeyboard())
		return
	}
	h.edit(q, report.PendingDebts(debtType, rows), backKeyboard())
}

// startSettlement lists the pending records as tappable buttons and also
// arms the settlement conversation state so a typed id works too.
func (h *Handler) startSettlement(ctx context.Context, q *tgbotapi.CallbackQuery, ownerID int64, debtType domain.DebtType) {
	rows, err := h.debts.Pending(ctx, ownerID, debtType)
	if err != nil {
		h.log.Errorw("pending debts", "owner", ownerID, "err", err)
		h.edit(q, genericLoadErr, mainMenuKeyboard())
		return
	}
	if len(rows) == 0 {
		h.edit(q, "✅ Nothing pending to settle here.", backKeyboard())
		return
	}

	h.sessions.Set(ownerID, Session{State: StateAwaitSettlementDetail, Debt: debtType})

	title := "✅ *Mark Returned*\n\nTap a debt, or send its id:"
	if debtType == domain.DebtLent {
		title = "✅ *Mark Received*\n\nTap a debt, or send its id:"
	}
	h.edit(q, title, settleKeyboard(debtType, rows))
}

func (h *Handler) showSettings(ctx context.Context, q *tgbotapi.CallbackQuery, ownerID int64) {
	s, err := h.settings.Get(ctx, ownerID)
	if err != nil {
		h.log.Errorw("load settings", "owner", ownerID, "err", err)
		h.edit(q, genericLoadErr, mainMenuKeyboard())
		return
	}

	status := "on"
	if !s.DailyReport {
		status = "off"
	}
	text := fmt.Sprintf(
		"⚙️ *Settings*\n\n🔔 Daily report: %s\n🕕 Delivery time: %s\n🌍 Timezone: %s",
		status, s.ReportTime, h.zoneLabel(s.Timezone))
	h.edit(q, text, settingsKeyboard(s))
}

func (h *Handler) toggleDailyReport(ctx context.Context, q *tgbotapi.CallbackQuery, ownerID int64) {
	s, err := h.settings.Get(ctx, ownerID)
	if err != nil {
		h.log.Errorw("load settings", "owner", ownerID, "err", err)
		h.edit(q, genericLoadErr, mainMenuKeyboard())
		return
	}
	if err := h.settings.SetDailyReport(ctx, ownerID, !s.DailyReport); err != nil {
		h.log.Errorw("toggle daily report", "owner", ownerID, "err", err)
		h.edit(q, genericSaveErr, mainMenuKeyboard())
		return
	}
	h.showSettings(ctx, q, ownerID)
}

func (h *Handler) resetOwner(ctx context.Context, q *tgbotapi.CallbackQuery, ownerID int64) {
	h.sessions.Clear(ownerID)
	if err := repo.PurgeOwner(ctx, h.pool, ownerID); err != nil {
		h.log.Errorw("purge owner", "owner", ownerID, "err", err)
		h.edit(q, "❌ Reset failed. No data was deleted.", mainMenuKeyboard())
		return
	}
	h.edit(q,
		"✅ *All Data Reset Successfully!*\n\nYour account is now clean.\nStart fresh by adding new transactions.",
		mainMenuKeyboard())
}

func (h *Handler) editReport(q *tgbotapi.CallbackQuery, build func() (string, error)) {
	text, err := build()
	if err != nil {
		h.edit(q, genericLoadErr, mainMenuKeyboard())
		return
	}
	h.edit(q, text, backKeyboard())
}

// edit replaces the tapped message in place. When the text exceeds the
// transport limit, the first chunk edits the message and the rest follow
// as fresh sends, keyboard on the last.
func (h *Handler) edit(q *tgbotapi.CallbackQuery, text string, kb tgbotapi.InlineKeyboardMarkup) {
	chatID := q.Message.Chat.ID
	chunks := report.Paginate(text, report.ChunkLimit)

	first := tgbotapi.NewEditMessageText(chatID, q.Message.MessageID, chunks[0])
	first.ParseMode = "Markdown"
	if len(chunks) == 1 {
		first.ReplyMarkup = &kb
	}
	if _, err := h.api.Send(first); err != nil {
		h.log.Errorw("edit message", "chat", chatID, "err", err)
	}

	for i, chunk := range chunks[1:] {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = "Markdown"
		if i == len(chunks)-2 {
			msg.ReplyMarkup = kb
		}
		if _, err := h.api.Send(msg); err != nil {
			h.log.Errorw("send message", "chat", chatID, "err", err)
		}
	}
}

func (h *Handler) zoneLabel(tz string) string {
	if tz == "" {
		return h.cfg.Timezone + " (default)"
	}
	return tz
}
