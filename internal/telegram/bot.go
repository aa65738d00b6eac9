package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"mealweek/internal/clipper"
	"mealweek/internal/config"
	"mealweek/internal/metrics"
	"mealweek/internal/plan"
	"mealweek/internal/shopping"
)

const sessionTTL = 48 * time.Hour

var weekIDPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// Bot wraps the Telegram API around the shopping service: it renders the
// weekly plan and shopping list, toggles items via inline keyboards, and
// clips recipes from pasted URLs.
type Bot struct {
	api          *tgbotapi.BotAPI
	svc          *shopping.Service
	clipper      *clipper.Clipper
	metricsStore *metrics.Store
	sessions     *SessionRepository
	cfg          *config.Config
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(
	cfg *config.Config,
	svc *shopping.Service,
	clip *clipper.Clipper,
	metricsStore *metrics.Store,
	sessions *SessionRepository,
) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	webhookURL := cfg.TelegramWebhookURL
	wh, _ := tgbotapi.NewWebhook(webhookURL)
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", webhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:          bot,
		svc:          svc,
		clipper:      clip,
		metricsStore: metricsStore,
		sessions:     sessions,
		cfg:          cfg,
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		if !b.isAllowed(update.CallbackQuery.From.ID) {
			return
		}
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		log.Printf("⚠️ Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) isAllowed(id int64) bool {
	for _, allowed := range b.cfg.TelegramAllowedUserIDs {
		if id == allowed {
			return true
		}
	}
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	ctx := context.Background()
	userID := fmt.Sprintf("%d", msg.From.ID)

	switch {
	case msg.Text == "/metrics":
		b.handleMetricsRequest(msg)
	case msg.Text == "/list":
		b.handleListRequest(ctx, userID, msg.Chat.ID)
	case msg.Text == "/plan":
		b.handlePlanRequest(ctx, userID, msg.Chat.ID)
	case strings.HasPrefix(msg.Text, "/week"):
		b.handleWeekRequest(ctx, userID, msg)
	case strings.HasPrefix(msg.Text, "http://") || strings.HasPrefix(msg.Text, "https://"):
		b.handleClipperRequest(ctx, userID, msg)
	default:
		help := "🛒 *Meal Week*\n\n" +
			"• /plan — show this week's meal plan\n" +
			"• /list — show the shopping list\n" +
			"• /week 2026-W09 — switch the active week\n" +
			"• paste a recipe URL to clip it into your catalog"
		reply := tgbotapi.NewMessage(msg.Chat.ID, help)
		reply.ParseMode = "Markdown"
		b.api.Send(reply)
	}
}

// activeWeek resolves the chat's working week: the session value if one is
// alive, otherwise the current ISO week.
func (b *Bot) activeWeek(ctx context.Context, userID string) string {
	if b.sessions != nil {
		if week, err := b.sessions.GetWeek(ctx, userID); err != nil {
			log.Printf("Warning: failed to load session for user %s: %v", userID, err)
		} else if week != "" {
			return week
		}
	}
	return CurrentWeekID(time.Now())
}

// CurrentWeekID formats a time as an ISO-8601 week id, e.g. "2026-W09".
func CurrentWeekID(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func (b *Bot) handleWeekRequest(ctx context.Context, userID string, msg *tgbotapi.Message) {
	arg := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/week"))
	if arg == "" {
		b.send(msg.Chat.ID, fmt.Sprintf("🗓 Active week: *%s*", b.activeWeek(ctx, userID)))
		return
	}
	if !weekIDPattern.MatchString(arg) {
		b.send(msg.Chat.ID, "❌ Week must look like `2026-W09`.")
		return
	}
	if err := b.sessions.SetWeek(ctx, userID, arg, sessionTTL); err != nil {
		log.Printf("Error saving session: %v", err)
		b.send(msg.Chat.ID, "❌ Could not switch week.")
		return
	}
	b.send(msg.Chat.ID, fmt.Sprintf("🗓 Switched to week *%s*.", arg))
}

func (b *Bot) handlePlanRequest(ctx context.Context, userID string, chatID int64) {
	weekID := b.activeWeek(ctx, userID)
	p, err := b.svc.Plan(ctx, userID, weekID)
	if err != nil {
		log.Printf("Error loading plan: %v", err)
		b.send(chatID, "❌ Error loading the plan.")
		return
	}
	if p == nil {
		b.send(chatID, fmt.Sprintf("🗓 No plan yet for *%s*.", weekID))
		return
	}
	b.send(chatID, formatPlanMarkdown(weekID, p))
}

func (b *Bot) handleListRequest(ctx context.Context, userID string, chatID int64) {
	weekID := b.activeWeek(ctx, userID)
	items, err := b.svc.List(ctx, userID, weekID)
	if err != nil {
		log.Printf("Error loading shopping list: %v", err)
		b.send(chatID, "❌ Error loading the shopping list.")
		return
	}
	if len(items) == 0 {
		b.send(chatID, fmt.Sprintf("🛒 The shopping list for *%s* is empty.", weekID))
		return
	}

	msg := tgbotapi.NewMessage(chatID, formatListMarkdown(weekID, items))
	msg.ParseMode = "Markdown"
	keyboard := listKeyboard(items)
	msg.ReplyMarkup = &keyboard
	b.api.Send(msg)
}

func (b *Bot) handleClipperRequest(ctx context.Context, userID string, msg *tgbotapi.Message) {
	statusText := "✂️ *Clipping recipe...*"
	replyMsg := tgbotapi.NewMessage(msg.Chat.ID, statusText)
	replyMsg.ParseMode = "Markdown"
	sentMsg, err := b.api.Send(replyMsg)
	if err != nil {
		log.Printf("Failed to send initial reply: %v", err)
		return
	}

	rec, err := b.clipper.ClipURL(ctx, msg.Text, userID)
	var finalText string
	if err != nil {
		log.Printf("Error clipping recipe: %v", err)
		safeErr := strings.ReplaceAll(err.Error(), "`", "'")
		finalText = fmt.Sprintf("❌ *Error clipping recipe:*\n```\n%v\n```", safeErr)
	} else {
		finalText = fmt.Sprintf("✅ *Recipe Saved!*\n\n*Title:* %s\n*Ingredients:* %d", rec.Title, len(rec.Ingredients))
	}
	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sentMsg.MessageID, finalText)
	edit.ParseMode = "Markdown"
	b.api.Send(edit)
}

// handleCallbackQuery toggles a shopping item: if any of its sources are
// unchecked, check them all; otherwise uncheck them all. The list message is
// then re-rendered in place.
func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	ctx := context.Background()
	userID := fmt.Sprintf("%d", query.From.ID)

	action, itemID, ok := strings.Cut(query.Data, "|")
	if !ok || action != "toggle" {
		return
	}

	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	weekID := b.activeWeek(ctx, userID)
	items, err := b.svc.List(ctx, userID, weekID)
	if err != nil {
		log.Printf("Error loading shopping list: %v", err)
		return
	}

	var target *shopping.Item
	for i := range items {
		if items[i].ID == itemID {
			target = &items[i]
			break
		}
	}
	if target == nil {
		return
	}

	check := false
	for _, src := range target.Sources {
		if !src.IsChecked {
			check = true
			break
		}
	}
	for i, src := range target.Sources {
		if src.IsChecked == check {
			continue
		}
		if _, err := b.svc.SetChecked(ctx, userID, itemID, i, check, shopping.CheckedByUser); err != nil {
			log.Printf("Error toggling item %s source %d: %v", itemID, i, err)
			return
		}
	}

	items, err = b.svc.List(ctx, userID, weekID)
	if err != nil {
		log.Printf("Error reloading shopping list: %v", err)
		return
	}
	edit := tgbotapi.NewEditMessageText(query.Message.Chat.ID, query.Message.MessageID, formatListMarkdown(weekID, items))
	edit.ParseMode = "Markdown"
	keyboard := listKeyboard(items)
	edit.ReplyMarkup = &keyboard
	b.api.Send(edit)
}

// formatListMarkdown renders the shopping list with per-unit totals, e.g.
// "◻ rolled oats — 1 1/2 cup".
func formatListMarkdown(weekID string, items []shopping.Item) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛒 *Shopping List* (%s)\n\n", weekID))
	for _, item := range items {
		sb.WriteString(itemLine(item))
		sb.WriteString("\n")
	}
	return sb.String()
}

func itemLine(item shopping.Item) string {
	mark := "◻"
	if allChecked(item) {
		mark = "✅"
	}
	totals := totalsText(item)
	if totals == "" {
		return fmt.Sprintf("%s %s", mark, item.IngredientName)
	}
	return fmt.Sprintf("%s %s — %s", mark, item.IngredientName, totals)
}

func allChecked(item shopping.Item) bool {
	if len(item.Sources) == 0 {
		return false
	}
	for _, src := range item.Sources {
		if !src.IsChecked {
			return false
		}
	}
	return true
}

// totalsText sums the item's amounts per unit, in first-seen unit order.
// Zero totals (recipes that never stated an amount) render as nothing.
func totalsText(item shopping.Item) string {
	var units []string
	seen := map[string]bool{}
	for _, src := range item.Sources {
		if !seen[src.Unit] {
			seen[src.Unit] = true
			units = append(units, src.Unit)
		}
	}
	var parts []string
	for _, unit := range units {
		total := item.TotalFor(unit)
		if total.IsZero() {
			continue
		}
		if unit == "" {
			parts = append(parts, total.MixedString())
		} else {
			parts = append(parts, fmt.Sprintf("%s %s", total.MixedString(), unit))
		}
	}
	return strings.Join(parts, " + ")
}

func listKeyboard(items []shopping.Item) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range items {
		label := "◻ " + item.IngredientName
		if allChecked(item) {
			label = "✅ " + item.IngredientName
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "toggle|"+item.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func formatPlanMarkdown(weekID string, p *plan.WeeklyPlan) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Meal Plan* (%s)\n\n", weekID))
	for _, day := range p.Days {
		var lines []string
		for _, mt := range plan.MealTypes {
			for _, slot := range day.Meals[mt] {
				lines = append(lines, slotLine(mt, slot))
			}
		}
		if len(lines) == 0 && len(day.Notes) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s*\n", day.Day))
		for _, line := range lines {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
		for _, note := range day.Notes {
			sb.WriteString(fmt.Sprintf("_%s_\n", note))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func slotLine(mt plan.MealType, slot plan.SlotItem) string {
	switch slot.Kind {
	case plan.SlotLeftover:
		return fmt.Sprintf("• %s: %s (leftover)", mt, slot.Title)
	case plan.SlotRecipe:
		title := slot.RecipeID
		if slot.Recipe != nil {
			title = slot.Recipe.Title
		}
		if slot.Quantity > 1 {
			return fmt.Sprintf("• %s: %s ×%g", mt, title, slot.Quantity)
		}
		return fmt.Sprintf("• %s: %s", mt, title)
	default:
		return fmt.Sprintf("• %s: ?", mt)
	}
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.send(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}
	b.handleMetricsCommand(msg.Chat.ID)
}

func (b *Bot) handleMetricsCommand(chatID int64) {
	usage, err := b.metricsStore.GetDailyUsage(7)
	if err != nil {
		b.send(chatID, "❌ Error fetching metrics.")
		return
	}

	health := metrics.GetSysHealth(b.cfg.DatabasePath)

	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🗓 *Recent Sync Activity*\n")
	if len(usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range usage {
		sb.WriteString(fmt.Sprintf("• *%s*: %d syncs, %d items, %.0fms avg\n", d.Date, d.Runs, d.TotalItems, d.AvgLatency))
	}

	sb.WriteString("\n🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• DB Size: %s\n", health.DBSize))

	b.send(chatID, sb.String())
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	b.api.Send(msg)
}
