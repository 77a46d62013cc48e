package model

import (
	"bytes"
	"strconv"
	"strings"
)

// BookingRecord is the booking payload received from the upstream booking
// flow and persisted by the external worker.  No field is required by the
// confirmation logic itself except the identifier, which correlates log
// lines; everything else is carried through and rendered best-effort in
// notifications.  The orchestrator mutates Status and PaymentID in place
// once payment verification succeeds.
//
// Fields:
//
//	ID           – booking identifier used for correlation.
//	Name/Phone/
//	Email        – customer contact details.
//	Date, Slot   – event date and time slot.
//	Theatre      – venue name.
//	Address      – venue address.
//	TheatrePrice – base venue price.
//	AddOns,Cakes – ordered extras, each {name, price, quantity}.
//	Subtotal,
//	Total        – computed totals from the booking flow.
//	Status       – booking state (set to CONFIRMED on verification).
//	PaymentID    – gateway payment identifier attached on verification.
type BookingRecord struct {
	ID           string        `json:"bookingId"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Email        string        `json:"email"`
	Date         string        `json:"date"`
	Slot         string        `json:"slot"`
	Theatre      string        `json:"theatre"`
	Address      string        `json:"address"`
	TheatrePrice Amount        `json:"theatrePrice"`
	AddOns       []BookingItem `json:"addons"`
	Cakes        []BookingItem `json:"cakes"`
	Subtotal     Amount        `json:"subtotal"`
	Total        Amount        `json:"total"`
	Status       string        `json:"status"`
	PaymentID    string        `json:"paymentId"`
}

// StatusConfirmed is set on a record once its payment is verified.
const StatusConfirmed = "CONFIRMED"

// BookingItem is a single selected extra (add-on or cake).
type BookingItem struct {
	Name     string `json:"name"`
	Price    Amount `json:"price"`
	Quantity int    `json:"quantity"`
}

// Amount is a price-like value as sent by the upstream booking flow.  The
// flow is not consistent about formatting: the same field arrives as a JSON
// number, a numeric string, or a display string with a currency prefix and
// grouping commas ("₹1,499").  Amount preserves the raw text and defers
// interpretation to Float, which strips everything non-numeric before
// parsing.
type Amount string

// UnmarshalJSON accepts both string and number forms.
func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*a = ""
		return nil
	}
	if b[0] == '"' {
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	*a = Amount(b)
	return nil
}

// MarshalJSON writes the amount back out exactly as it arrived.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(string(a))), nil
}

// Float extracts the numeric value, ignoring currency symbols, grouping
// separators and any other non-numeric noise.  Unparseable values come back
// as zero rather than an error: a malformed price must not break a
// notification.
func (a Amount) Float() float64 {
	var sb strings.Builder
	for _, r := range string(a) {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0
	}
	return f
}

// IsZero reports whether no value was supplied.
func (a Amount) IsZero() bool { return strings.TrimSpace(string(a)) == "" }
