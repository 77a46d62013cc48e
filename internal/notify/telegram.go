// Package notify posts booking summaries to the operators' Telegram
// channel.  Notification is strictly best-effort: every failure mode is
// folded into a tagged Result so that a broken bot token or a Telegram
// outage can never abort a booking confirmation.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/beanoshub/booking-backend/internal/config"
	"github.com/beanoshub/booking-backend/internal/model"
)

// Result is the settlement outcome of one notification attempt.
type Result struct {
	OK     bool   // true when Telegram accepted the message
	Reason string // diagnostic detail when OK is false
}

// Notifier sends booking summaries to a fixed chat via the bot API.
type Notifier struct {
	token  string
	chatID string
	base   string // overridable in tests
	http   *http.Client
}

// New builds a Notifier from the configured bot credentials.  Missing
// credentials are tolerated here and reported per-send.
func New(cfg config.Config) *Notifier {
	return &Notifier{
		token:  cfg.TelegramBotToken,
		chatID: cfg.TelegramChatID,
		base:   "https://api.telegram.org",
		http:   &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// BookingConfirmed formats and sends the summary for a confirmed booking.
// It never panics and never returns an error: the caller reads the Result.
func (n *Notifier) BookingConfirmed(ctx context.Context, rec *model.BookingRecord) Result {
	if n.token == "" || n.chatID == "" {
		return Result{Reason: "telegram credentials not configured"}
	}
	if rec == nil {
		return Result{Reason: "no booking record to notify about"}
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": n.chatID,
		"text":    FormatBooking(rec),
	})
	if err != nil {
		return Result{Reason: fmt.Sprintf("encode message: %v", err)}
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.base, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(string(payload)))
	if err != nil {
		return Result{Reason: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return Result{Reason: fmt.Sprintf("send message: %v", err)}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Reason: fmt.Sprintf("read response: %v", err)}
	}
	var out struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return Result{Reason: fmt.Sprintf("telegram status %d: unreadable response", resp.StatusCode)}
	}
	if !out.OK {
		reason := out.Description
		if reason == "" {
			reason = fmt.Sprintf("telegram status %d", resp.StatusCode)
		}
		return Result{Reason: reason}
	}
	return Result{OK: true}
}

// FormatBooking renders the human-readable summary sent to operators.
// Absent fields show a placeholder; price-like fields are coerced through
// Amount.Float so upstream formatting quirks cannot break the arithmetic.
func FormatBooking(rec *model.BookingRecord) string {
	var b strings.Builder
	b.WriteString("New booking confirmed\n")
	fmt.Fprintf(&b, "Booking: %s\n", orNA(rec.ID))
	fmt.Fprintf(&b, "Customer: %s (%s)\n", orNA(rec.Name), orNA(rec.Phone))
	if rec.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", rec.Email)
	}
	fmt.Fprintf(&b, "Theatre: %s, %s\n", orNA(rec.Theatre), orNA(rec.Address))
	fmt.Fprintf(&b, "Date: %s at %s\n", orNA(rec.Date), orNA(rec.Slot))
	fmt.Fprintf(&b, "Theatre price: Rs %.2f\n", rec.TheatrePrice.Float())
	writeItems(&b, "Add-ons", rec.AddOns)
	writeItems(&b, "Cakes", rec.Cakes)
	if !rec.Subtotal.IsZero() {
		fmt.Fprintf(&b, "Subtotal: Rs %.2f\n", rec.Subtotal.Float())
	}
	fmt.Fprintf(&b, "Total: Rs %.2f\n", rec.Total.Float())
	fmt.Fprintf(&b, "Status: %s\n", orNA(rec.Status))
	fmt.Fprintf(&b, "Payment: %s", orNA(rec.PaymentID))
	return b.String()
}

func writeItems(b *strings.Builder, label string, items []model.BookingItem) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", label)
	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1 // upstream omits quantity for single items
		}
		fmt.Fprintf(b, "  - %s x%d = Rs %.2f\n", orNA(it.Name), qty, it.Price.Float()*float64(qty))
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
