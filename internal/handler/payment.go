package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/beanoshub/booking-backend/internal/config"
	"github.com/beanoshub/booking-backend/internal/model"
	"github.com/beanoshub/booking-backend/internal/notify"
	"github.com/beanoshub/booking-backend/internal/payment"
	"github.com/beanoshub/booking-backend/internal/queue"
)

// BookingStore persists confirmed bookings.  Satisfied by
// client.WorkerClient.
type BookingStore interface {
	SaveBooking(ctx context.Context, rec *model.BookingRecord) error
}

// BookingNotifier alerts operators about confirmed bookings.  Satisfied by
// notify.Notifier.
type BookingNotifier interface {
	BookingConfirmed(ctx context.Context, rec *model.BookingRecord) notify.Result
}

// PaymentHandler runs the booking-confirmation flow: signature check,
// record mutation, then the save/notify fan-out.
type PaymentHandler struct {
	Cfg      config.Config
	Store    BookingStore
	Notifier BookingNotifier
	// Publish emits the post-settle audit event.  Best-effort: a nil field
	// or a returned error only costs the audit line, never the response.
	Publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

func NewPaymentHandler(cfg config.Config, s BookingStore, n BookingNotifier,
	publish func(ctx context.Context, ev queue.BookingConfirmedEvent) error) *PaymentHandler {
	return &PaymentHandler{Cfg: cfg, Store: s, Notifier: n, Publish: publish}
}

// ----- DTOs -----

type verifyPaymentReq struct {
	OrderID     string               `json:"orderId"`
	PaymentID   string               `json:"paymentId"`
	Signature   string               `json:"signature"`
	BookingData *model.BookingRecord `json:"bookingData"`
}

type verifyPaymentResp struct {
	Success  bool   `json:"success"`
	Saved    bool   `json:"saved"`
	Notified bool   `json:"notified"`
	Message  string `json:"message"`
}

// VerifyPayment handles POST /verify-payment.
//
// The gateway's signature is the authority on whether money moved.  Until
// it checks out, nothing happens: no save, no notification.  Once it does,
// the response is success regardless of what the downstream systems do;
// their outcomes are reported in the saved/notified flags so the client can
// fall back (e.g. retry the save) without ever re-charging.
func (h *PaymentHandler) VerifyPayment(c echo.Context) error {
	var req verifyPaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}

	if !payment.Verify(req.OrderID, req.PaymentID, req.Signature, h.Cfg.PaymentSecret) {
		// Expected vs supplied goes to the operational log for fraud review.
		// The secret itself must never appear here.
		log.Printf("verify-payment: signature mismatch order=%s expected=%s supplied=%s",
			req.OrderID, payment.Signature(h.Cfg.PaymentSecret, req.OrderID, req.PaymentID), req.Signature)
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid signature"})
	}

	rec := req.BookingData
	if rec == nil {
		// Verification is authoritative; a missing record only means there
		// is nothing to persist or announce.
		log.Printf("verify-payment: order=%s payment=%s verified but no booking data supplied", req.OrderID, req.PaymentID)
		return c.JSON(http.StatusOK, verifyPaymentResp{
			Success: true,
			Message: "Payment verified; no booking data to save",
		})
	}

	rec.Status = model.StatusConfirmed
	rec.PaymentID = req.PaymentID

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.Cfg.HTTPTimeout+5*time.Second)
	defer cancel()

	// Launch save and notify together and wait for both to settle.  The
	// closures capture their own outcomes and always return nil, so neither
	// side can cancel or outlast the other through the group.
	var (
		saveErr error
		nres    notify.Result
	)
	var g errgroup.Group
	g.Go(func() error {
		saveErr = h.Store.SaveBooking(ctx, rec)
		return nil
	})
	g.Go(func() error {
		nres = h.Notifier.BookingConfirmed(ctx, rec)
		return nil
	})
	_ = g.Wait()

	saved := saveErr == nil
	if !saved {
		log.Printf("verify-payment: booking=%s save failed: %v", rec.ID, saveErr)
	}
	if !nres.OK {
		log.Printf("verify-payment: booking=%s notify failed: %s", rec.ID, nres.Reason)
	}

	h.publishConfirmed(ctx, rec, saved, nres.OK)

	return c.JSON(http.StatusOK, verifyPaymentResp{
		Success:  true,
		Saved:    saved,
		Notified: nres.OK,
		Message:  "Payment verified",
	})
}

// publishConfirmed emits the audit event for a settled confirmation.
func (h *PaymentHandler) publishConfirmed(ctx context.Context, rec *model.BookingRecord, saved, notified bool) {
	if h.Publish == nil {
		return
	}
	ev := queue.BookingConfirmedEvent{
		BookingID:   rec.ID,
		Customer:    rec.Name,
		Theatre:     rec.Theatre,
		Date:        rec.Date,
		Slot:        rec.Slot,
		PaymentID:   rec.PaymentID,
		Total:       rec.Total.Float(),
		Saved:       saved,
		Notified:    notified,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := h.Publish(ctx, ev); err != nil {
		log.Printf("verify-payment: booking=%s audit publish failed: %v", rec.ID, err)
	}
}
