package subscription

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Request is the wire payload of POST /api/subscribe. The roast, size, and
// frequency fields are human-readable display strings chosen from closed
// catalogs client side; the endpoint treats them as opaque.
type Request struct {
	Email     string `json:"email"`
	Roast     string `json:"roast,omitempty"`
	Size      string `json:"size,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Price     Price  `json:"price,omitempty"`
}

// Price accepts either a JSON number or a numeric string, since form clients
// serialize the quoted price both ways. The zero value means absent.
type Price struct {
	raw string
}

func NewPrice(v float64) Price {
	return Price{raw: strconv.FormatFloat(v, 'f', -1, 64)}
}

// PriceFromString wraps an already-serialized price value, e.g. one carried
// in a query parameter.
func PriceFromString(s string) Price {
	return Price{raw: strings.TrimSpace(s)}
}

// String returns the raw serialized value, empty when absent.
func (p Price) String() string { return p.raw }

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		p.raw = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		p.raw = strings.TrimSpace(str)
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	p.raw = strconv.FormatFloat(num, 'f', -1, 64)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if p.raw == "" {
		return []byte(`""`), nil
	}
	if f, ok := p.value(); ok {
		return json.Marshal(f)
	}
	return json.Marshal(p.raw)
}

func (p Price) value() (float64, bool) {
	f, err := strconv.ParseFloat(p.raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Display formats the price as a 2-decimal currency string with the currency
// symbol, or "-" when absent or unparseable.
func (p Price) Display() string {
	f, ok := p.value()
	if !ok || f <= 0 {
		return "-"
	}
	return fmt.Sprintf("$%.2f", f)
}

// EmailPreview mirrors one rendered message in the demo-mode response.
type EmailPreview struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html"`
}

// MessageIDs carries the two provider (or fabricated) message identifiers.
type MessageIDs struct {
	CustomerMessageID string `json:"customerMessageId"`
	CompanyMessageID  string `json:"companyMessageId"`
}

// Previews carries both rendered messages, populated in demo mode only.
type Previews struct {
	Customer EmailPreview `json:"customer"`
	Company  EmailPreview `json:"company"`
}

// Result is the wire response of POST /api/subscribe. Every exit path of the
// endpoint returns one of these; no path leaves the connection without a JSON
// body.
type Result struct {
	OK           bool        `json:"ok"`
	Error        string      `json:"error,omitempty"`
	Mode         string      `json:"mode,omitempty"`
	EmailStatus  string      `json:"emailStatus,omitempty"`
	Timestamp    string      `json:"timestamp,omitempty"`
	IDs          *MessageIDs `json:"ids,omitempty"`
	CompanyInbox string      `json:"companyInbox,omitempty"`
	Previews     *Previews   `json:"previews,omitempty"`
}

// DisplayOr resolves an optional display field to its value or the fallback.
func DisplayOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
