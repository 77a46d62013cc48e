package handler

import (
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/beanoshub/booking-backend/internal/config"
)

// UPIHandler serves the payee details and the payment deep-link redirect
// used by the booking frontend to open the customer's UPI app.
type UPIHandler struct {
	Cfg config.Config
}

func NewUPIHandler(cfg config.Config) *UPIHandler {
	return &UPIHandler{Cfg: cfg}
}

// Details handles GET /api/upi-details.
func (h *UPIHandler) Details(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"vpa":  h.Cfg.UPIPayeeVPA,
		"name": h.Cfg.UPIPayeeName,
	})
}

// Pay handles GET /api/pay-upi?bookingId=&amount= with a 302 redirect to a
// composed upi://pay link.  A fresh transaction reference is minted per
// redirect so the UPI app never collapses two payments into one.
func (h *UPIHandler) Pay(c echo.Context) error {
	bookingID := c.QueryParam("bookingId")
	if bookingID == "" {
		bookingID = "NO_BOOKING_ID"
	}
	amount := "0.00"
	if f, err := strconv.ParseFloat(c.QueryParam("amount"), 64); err == nil && f > 0 {
		amount = strconv.FormatFloat(f, 'f', 2, 64)
	}
	txnRef := fmt.Sprintf("BOOKING-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))

	link := "upi://pay?" +
		"pa=" + strictEncode(h.Cfg.UPIPayeeVPA) +
		"&pn=" + strictEncode(h.Cfg.UPIPayeeName) +
		"&am=" + amount +
		"&cu=INR" +
		"&tn=" + strictEncode("Payment for "+bookingID) +
		"&tr=" + strictEncode(txnRef)

	return c.Redirect(http.StatusFound, link)
}

// strictEncode percent-encodes per RFC 3986: spaces become %20, and the
// sub-delims some UPI apps choke on are escaped too.
func strictEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
