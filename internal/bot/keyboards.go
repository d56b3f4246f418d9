package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Wolfjoee/Espresstrackk/internal/domain"
	"github.com/Wolfjoee/Espresstrackk/internal/report"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("💰 Add Income", "menu_income"),
			tgbotapi.NewInlineKeyboardButtonData("💸 Add Expense", "menu_expense"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🏦 Add Savings", "menu_savings"),
			tgbotapi.NewInlineKeyboardButtonData("📊 Reports", "menu_reports"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🤝 Loans", "menu_loans"),
			tgbotapi.NewInlineKeyboardButtonData("📝 Mini Statement", "mini_statement"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", "menu_settings"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Reset All", "reset_confirm"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("❓ Help", "help"),
		},
	)
}

func reportsKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("📅 Today Report", "report_today"),
			tgbotapi.NewInlineKeyboardButtonData("📆 Month Report", "report_month"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("💸 Daily Expenses", "daily_expenses"),
			tgbotapi.NewInlineKeyboardButtonData("📈 Spending Analysis", "spending_analysis"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Menu", "back_menu"),
		},
	)
}

func loansKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("📥 I Borrowed", "loan_borrow"),
			tgbotapi.NewInlineKeyboardButtonData("📤 I Lent", "loan_lend"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("📥 Pending Borrowed", "loan_pending_b"),
			tgbotapi.NewInlineKeyboardButtonData("📤 Pending Lent", "loan_pending_l"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("✅ Mark Returned", "loan_settle_b"),
			tgbotapi.NewInlineKeyboardButtonData("✅ Mark Received", "loan_settle_l"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("👥 Person-wise", "loan_personwise"),
			tgbotapi.NewInlineKeyboardButtonData("🤝 Loan Summary", "loan_summary"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Menu", "back_menu"),
		},
	)
}

func resetConfirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("✅ Yes, Reset All", "reset_confirmed"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "back_menu"),
		},
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Menu", "back_menu"),
		},
	)
}

// cancelKeyboard is shown while a guided entry awaits input.
func cancelKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("❌ Cancel", "cancel_entry"),
		},
	)
}

func settingsKeyboard(s domain.UserSettings) tgbotapi.InlineKeyboardMarkup {
	label := "🔔 Daily Report: ON"
	if !s.DailyReport {
		label = "🔕 Daily Report: OFF"
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, "toggle_daily"),
		},
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Menu", "back_menu"),
		},
	)
}

// settleKeyboard lists each pending debt as its own button, the id embedded
// in the callback token.
func settleKeyboard(debtType domain.DebtType, rows []domain.DebtRecord) tgbotapi.InlineKeyboardMarkup {
	prefix := "settle_b"
	if debtType == domain.DebtLent {
		prefix = "settle_l"
	}

	var kb [][]tgbotapi.InlineKeyboardButton
	for _, d := range rows {
		label := fmt.Sprintf("#%d %s — %s", d.ID, report.Money(d.AmountPaise), d.ContactName)
		kb = append(kb, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s:%d", prefix, d.ID)),
		})
	}
	kb = append(kb, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Menu", "back_menu"),
	})
	return tgbotapi.NewInlineKeyboardMarkup(kb...)
}
