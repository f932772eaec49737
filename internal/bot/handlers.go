package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/omarshaarawi/valuebot/internal/service"
)

const helpText = "Available commands:\n" +
	"/players [position] [query] - List player valuations\n" +
	"/player <name> [position] - Show one player's valuation and stats\n" +
	"/overview - Valuation counts and average salaries per position\n" +
	"/impact <position> - Feature weights used by the salary model\n" +
	"/undervalued - Players paid well below their predicted salary\n" +
	"/select <name> [position] - Add or remove a player from your selection\n" +
	"/selected - List your selection\n" +
	"/clear - Empty your selection\n" +
	"/radar [all|selected] <name> [position] - Compare a player to the position average\n" +
	"/reload - Reload the dataset"

type Handler struct {
	valuationService *service.ValuationService
}

func NewHandler(valuationService *service.ValuationService) *Handler {
	return &Handler{valuationService: valuationService}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	chatID := update.Message.Chat.ID
	msg := tgbotapi.NewMessage(chatID, "")
	msg.ParseMode = "Markdown"
	msg.Text = h.Respond(ctx, strconv.FormatInt(chatID, 10), update.Message.Command(), update.Message.CommandArguments())
	return msg
}

// Respond renders the reply for one command. session keys the selection.
func (h *Handler) Respond(ctx context.Context, session, command, args string) string {
	args = strings.TrimSpace(args)

	switch strings.ToLower(command) {
	case "start":
		return "Welcome to ValueBot! Use /help to see available commands."
	case "help":
		return helpText
	case "players":
		return h.handlePlayers(args)
	case "player":
		return h.handlePlayer(args)
	case "overview":
		return h.valuationService.OverviewReport()
	case "impact":
		return h.handleImpact(args)
	case "undervalued":
		return h.valuationService.UndervaluedReport()
	case "select":
		return h.handleSelect(session, args)
	case "selected":
		return h.valuationService.SelectionReport(session)
	case "clear":
		h.valuationService.ClearSelection(session)
		return "🧹 Selection cleared."
	case "radar":
		return h.handleRadar(session, args)
	case "reload":
		return h.handleReload(ctx)
	default:
		return "Unknown command. Use /help to see available commands."
	}
}

// handlePlayers treats a leading word as a position filter when it names a
// loaded position or "all"; the rest is the name query.
func (h *Handler) handlePlayers(args string) string {
	view := service.View{}
	if args != "" {
		first, rest, _ := strings.Cut(args, " ")
		if h.isPosition(first) {
			view.Position = strings.ToUpper(first)
			if strings.EqualFold(first, "all") {
				view.Position = ""
			}
			args = strings.TrimSpace(rest)
		}
		view.Query = args
	}
	return h.valuationService.PlayersReport(view)
}

func (h *Handler) isPosition(word string) bool {
	if strings.EqualFold(word, "all") {
		return true
	}
	for _, p := range h.valuationService.Positions() {
		if strings.EqualFold(p, word) {
			return true
		}
	}
	return false
}

func (h *Handler) handlePlayer(args string) string {
	if args == "" {
		return "Please provide a player name. Usage: /player <name>"
	}
	report, err := h.valuationService.PlayerReport(args)
	if err != nil {
		return playerError(err)
	}
	return report
}

func playerError(err error) string {
	if errors.Is(err, service.ErrAmbiguousPlayer) {
		return fmt.Sprintf("Error finding player: %v\nAdd a position, e.g. \"Josh Allen QB\" or \"Josh Allen|QB\".", err)
	}
	return fmt.Sprintf("Error finding player: %v", err)
}

func (h *Handler) handleImpact(args string) string {
	if args == "" {
		return "Please provide a position. Usage: /impact <position>"
	}
	report, err := h.valuationService.ImpactReport(strings.ToUpper(args))
	if err != nil {
		return fmt.Sprintf("Error getting feature impact: %v", err)
	}
	return report
}

func (h *Handler) handleSelect(session, args string) string {
	if args == "" {
		return "Please provide a player name. Usage: /select <name>"
	}
	p, err := h.valuationService.FindPlayer(args)
	if err != nil {
		return playerError(err)
	}
	added, err := h.valuationService.ToggleSelection(session, p.Key())
	if err != nil {
		return fmt.Sprintf("Error updating selection: %v", err)
	}
	if added {
		return fmt.Sprintf("✅ Selected %s (%s)", p.Name, p.Position)
	}
	return fmt.Sprintf("❎ Removed %s (%s)", p.Name, p.Position)
}

func (h *Handler) handleRadar(session, args string) string {
	scope := service.ScopeAll
	first, rest, found := strings.Cut(args, " ")
	if found {
		if s, err := service.ParseScope(first); err == nil && s != service.ScopeFiltered {
			scope = s
			args = strings.TrimSpace(rest)
		}
	}
	if args == "" {
		return "Please provide a player name. Usage: /radar [all|selected] <name> [position]"
	}

	report, err := h.valuationService.RadarReport(args, scope, service.View{Session: session})
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) || errors.Is(err, service.ErrAmbiguousPlayer) {
			return playerError(err)
		}
		return fmt.Sprintf("Error building radar: %v", err)
	}
	return report
}

func (h *Handler) handleReload(ctx context.Context) string {
	ds := h.valuationService.Reload(ctx)
	text := fmt.Sprintf("🔄 Loaded %d players from %s", len(ds.Rows), ds.Origin)
	if len(ds.Warnings) > 0 {
		text += fmt.Sprintf(" (%d warnings)", len(ds.Warnings))
	}
	return text
}
