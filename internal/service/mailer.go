package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/arjan001/sonya-stores-sub001/internal/entity"
)

// Mailer sends order confirmation emails over SMTP. With no host configured
// it is disabled and every send is skipped.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func NewMailer(host, port, user, pass, from string) *Mailer {
	return &Mailer{host: host, port: port, user: user, pass: pass, from: from}
}

func (m *Mailer) Enabled() bool {
	return m != nil && m.host != ""
}

func (m *Mailer) SendOrderConfirmation(order *entity.Order) error {
	subject := fmt.Sprintf("Order %s confirmed", order.OrderNumber)
	return m.send(order.CustomerEmail, subject, orderConfirmationHTML(order))
}

func (m *Mailer) send(to, subject, htmlBody string) error {
	if !m.Enabled() {
		return nil
	}
	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := m.host + ":" + m.port
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}
	return smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String()))
}

func orderConfirmationHTML(order *entity.Order) string {
	var b strings.Builder
	b.WriteString("<h2>Thank you for your order!</h2>")
	fmt.Fprintf(&b, "<p>Hi %s, your order <strong>%s</strong> has been received.</p>", order.CustomerName, order.OrderNumber)
	b.WriteString("<table border=\"0\" cellpadding=\"6\"><tr><th align=\"left\">Item</th><th>Qty</th><th align=\"right\">Price</th></tr>")
	for _, item := range order.Items {
		label := item.Name
		if item.Variation != "" {
			label += " (" + item.Variation + ")"
		}
		fmt.Fprintf(&b, "<tr><td>%s</td><td align=\"center\">%d</td><td align=\"right\">%.2f</td></tr>", label, item.Quantity, item.UnitPrice)
	}
	b.WriteString("</table>")
	fmt.Fprintf(&b, "<p>Subtotal: %.2f<br>Delivery: %.2f<br><strong>Total: %.2f</strong></p>", order.Subtotal, order.DeliveryFee, order.Total)
	fmt.Fprintf(&b, "<p>Delivery to: %s</p>", order.DeliveryAddress)
	b.WriteString("<p>We will contact you shortly to confirm delivery.</p>")
	return b.String()
}
