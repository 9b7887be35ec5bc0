package ses

import (
	"fmt"
	"html"
	"strings"

	"khata/internal/port"
)

type message struct {
	subject string
	html    string
	text    string
}

// documentTitles are the display names used in notice subjects.
var documentTitles = map[string]string{
	"purchase_order": "Purchase order",
	"sales_return":   "Sales return",
	"payment":        "Payment",
	"invoice":        "Invoice",
}

func documentTitle(docType string) string {
	if t, ok := documentTitles[docType]; ok {
		return t
	}
	return strings.ReplaceAll(docType, "_", " ")
}

func buildSubmissionMessage(sender string, n port.SubmissionNotice) message {
	title := documentTitle(n.DocumentType)
	party := n.PartyName
	if party == "" {
		party = "-"
	}

	subject := fmt.Sprintf("%s %s submitted: Rs %s", title, n.DocumentNo, n.RoundedTotal)

	text := fmt.Sprintf("%s %s has been submitted.\n\n"+
		"Party: %s\nDate: %s\nLines: %d\nTotal tax: %s\nRound off: %s\nTotal: %s\n\n%s",
		title, n.DocumentNo, party, n.DocumentDate, n.ItemCount, n.TotalTax, n.RoundOff, n.RoundedTotal, sender)

	body := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">%s %s submitted</h2>
  <table style="border-collapse: collapse; width: 100%%;">
    <tr><td style="padding: 4px 0; color: #666;">Party</td><td>%s</td></tr>
    <tr><td style="padding: 4px 0; color: #666;">Date</td><td>%s</td></tr>
    <tr><td style="padding: 4px 0; color: #666;">Lines</td><td>%d</td></tr>
    <tr><td style="padding: 4px 0; color: #666;">Total tax</td><td>%s</td></tr>
    <tr><td style="padding: 4px 0; color: #666;">Round off</td><td>%s</td></tr>
    <tr><td style="padding: 4px 0; color: #333;"><strong>Total</strong></td><td><strong>%s</strong></td></tr>
  </table>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">%s</p>
</body>
</html>`,
		html.EscapeString(title), html.EscapeString(n.DocumentNo),
		html.EscapeString(party), html.EscapeString(n.DocumentDate), n.ItemCount,
		html.EscapeString(n.TotalTax), html.EscapeString(n.RoundOff), html.EscapeString(n.RoundedTotal),
		html.EscapeString(sender))

	return message{subject: subject, html: body, text: text}
}
