package subscription

import (
	"fmt"
	"strings"

	"coffee-subscribe/internal/mail"
)

// RenderBatch builds the customer confirmation and the company notification
// for a validated request. Optional display fields fall back to "-"; the
// price is formatted as a currency string or "-" when absent.
func RenderBatch(req *Request, companyInbox string) mail.Batch {
	return mail.Batch{
		Customer: renderCustomerMessage(req),
		Company:  renderCompanyMessage(req, companyInbox),
	}
}

func renderCustomerMessage(req *Request) mail.Message {
	roast := DisplayOr(req.Roast, "-")
	size := DisplayOr(req.Size, "-")
	frequency := DisplayOr(req.Frequency, "-")
	price := req.Price.Display()

	var text strings.Builder
	text.WriteString("Subscription Confirmed\n")
	text.WriteString(fmt.Sprintf("Roast: %s\n", roast))
	text.WriteString(fmt.Sprintf("Size: %s\n", size))
	text.WriteString(fmt.Sprintf("Frequency: %s\n", frequency))
	text.WriteString(fmt.Sprintf("Estimated price: %s\n", price))
	text.WriteString("\n")
	text.WriteString(fmt.Sprintf("Sent to: %s", req.Email))

	var html strings.Builder
	html.WriteString(`<div style="font-family: Arial, sans-serif; line-height:1.45; color:#111;">`)
	html.WriteString(`<h2 style="margin:0 0 8px;">Subscription Confirmed</h2>`)
	html.WriteString(`<p style="margin:0 0 12px;">Thanks for subscribing to Standard Issue Coffee.</p>`)
	html.WriteString(`<div style="border:1px solid #eee; border-radius:12px; padding:12px; background:#fafafa;">`)
	html.WriteString(fmt.Sprintf(`<p style="margin:0 0 6px;"><b>Roast:</b> %s</p>`, htmlEscape(roast)))
	html.WriteString(fmt.Sprintf(`<p style="margin:0 0 6px;"><b>Size:</b> %s</p>`, htmlEscape(size)))
	html.WriteString(fmt.Sprintf(`<p style="margin:0 0 6px;"><b>Frequency:</b> %s</p>`, htmlEscape(frequency)))
	html.WriteString(fmt.Sprintf(`<p style="margin:0;"><b>Estimated price:</b> %s</p>`, htmlEscape(price)))
	html.WriteString(`</div>`)
	html.WriteString(fmt.Sprintf(`<p style="margin:12px 0 0; font-size:12px; color:#666;">Sent to: %s</p>`, htmlEscape(req.Email)))
	html.WriteString(`</div>`)

	return mail.Message{
		To:      req.Email,
		Subject: "Your Standard Issue Coffee subscription is confirmed",
		Text:    text.String(),
		HTML:    html.String(),
	}
}

func renderCompanyMessage(req *Request, companyInbox string) mail.Message {
	roast := DisplayOr(req.Roast, "-")
	size := DisplayOr(req.Size, "-")
	frequency := DisplayOr(req.Frequency, "-")
	price := req.Price.Display()

	var text strings.Builder
	text.WriteString("New Subscription Lead\n")
	text.WriteString(fmt.Sprintf("Customer email: %s\n", req.Email))
	text.WriteString(fmt.Sprintf("Roast: %s\n", roast))
	text.WriteString(fmt.Sprintf("Size: %s\n", size))
	text.WriteString(fmt.Sprintf("Frequency: %s\n", frequency))
	text.WriteString(fmt.Sprintf("Estimated price: %s\n", price))
	text.WriteString("\n")
	text.WriteString(fmt.Sprintf("Inbox: %s", companyInbox))

	var html strings.Builder
	html.WriteString(`<div style="font-family: Arial, sans-serif; line-height:1.45; color:#111;">`)
	html.WriteString(`<h2 style="margin:0 0 8px;">New Subscription Lead</h2>`)
	html.WriteString(`<div style="border:1px solid #eee; border-radius:12px; padding:12px; background:#fafafa;">`)
	html.WriteString(fmt.Sprintf(`<p style="margin:0 0 6px;"><b>Customer email:</b> %s</p>`, htmlEscape(req.Email)))
	html.WriteString(fmt.Sprintf(`<p style="margin:0 0 6px;"><b>Roast:</b> %s</p>`, htmlEscape(roast)))
	html.WriteString(fmt.Sprintf(`<p style="margin:0 0 6px;"><b>Size:</b> %s</p>`, htmlEscape(size)))
	html.WriteString(fmt.Sprintf(`<p style="margin:0 0 6px;"><b>Frequency:</b> %s</p>`, htmlEscape(frequency)))
	html.WriteString(fmt.Sprintf(`<p style="margin:0;"><b>Estimated price:</b> %s</p>`, htmlEscape(price)))
	html.WriteString(`</div>`)
	html.WriteString(fmt.Sprintf(`<p style="margin:12px 0 0; font-size:12px; color:#666;">Inbox: %s</p>`, htmlEscape(companyInbox)))
	html.WriteString(`</div>`)

	return mail.Message{
		To:      companyInbox,
		Subject: fmt.Sprintf("New subscription lead — %s", req.Email),
		Text:    text.String(),
		HTML:    html.String(),
	}
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
