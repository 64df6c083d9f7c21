package mailer

import (
	"context"
	"html/template"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/order"
)

// Compile-time check ensuring OrderNotifier satisfies the checkout notifier
// interface.
var _ order.Notifier = (*OrderNotifier)(nil)

// summaryTmpl renders the order summary table sent after checkout.
var summaryTmpl = template.Must(template.New("order-summary").Parse(`
<div style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
  <h1 style="color: #2c3e50; text-align: center; font-size: 24px;">Order Summary</h1>
  <p style="font-size: 16px; text-align: center;">Thank you for your purchase{{if .Name}}, {{.Name}}{{end}}! Below are the details of your order.</p>

  <h2 style="color: #2c3e50; font-size: 20px;">Order Details</h2>
  <table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">
    <thead>
      <tr style="background-color: #f8f9fa;">
        <th style="padding: 10px; border: 1px solid #ddd; text-align: left;">Product</th>
        <th style="padding: 10px; border: 1px solid #ddd; text-align: left;">Quantity</th>
        <th style="padding: 10px; border: 1px solid #ddd; text-align: left;">Price</th>
      </tr>
    </thead>
    <tbody>
      {{range .Items}}
      <tr>
        <td style="padding: 10px; border: 1px solid #ddd;">{{.Name}}</td>
        <td style="padding: 10px; border: 1px solid #ddd; text-align: center;">{{.Quantity}}</td>
        <td style="padding: 10px; border: 1px solid #ddd; text-align: right;">Rs. {{.Price}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div style="background-color: #f8f9fa; padding: 15px; border-radius: 8px;">
    <p style="margin: 0; font-size: 16px;"><strong>Shipping:</strong> Rs. {{.ShippingCost}}</p>
    <p style="margin: 0; font-size: 16px;"><strong>Total Price:</strong> Rs. {{.TotalPrice}}</p>
    <p style="margin: 0; font-size: 16px;"><strong>Shipping Country:</strong> {{.Country}}</p>
  </div>

  <p style="font-size: 14px; color: #777; text-align: center; margin-top: 20px;">
    If you have any questions, please contact our support team at <a href="mailto:{{.SupportEmail}}" style="color: #3498db; text-decoration: none;">{{.SupportEmail}}</a>.
  </p>
</div>
`))

// summaryItem is one rendered row of the summary table.
type summaryItem struct {
	Name     string
	Quantity int
	Price    string
}

// summaryData is the template input for the order summary.
type summaryData struct {
	Name         string
	Items        []summaryItem
	ShippingCost string
	TotalPrice   string
	Country      string
	SupportEmail string
}

// RenderOrderSummary produces the HTML body of the order summary email.
func RenderOrderSummary(o *order.Order, name, supportEmail string) (string, error) {
	data := summaryData{
		Name:         name,
		Items:        make([]summaryItem, len(o.Items)),
		ShippingCost: formatAmount(o.ShippingCost),
		TotalPrice:   formatAmount(o.TotalPrice),
		Country:      o.Country,
		SupportEmail: supportEmail,
	}
	for i, it := range o.Items {
		data.Items[i] = summaryItem{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    formatAmount(it.UnitPrice),
		}
	}

	var b strings.Builder
	if err := summaryTmpl.Execute(&b, data); err != nil {
		return "", errors.Wrap(err, "render order summary")
	}
	return b.String(), nil
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// OrderNotifier renders and dispatches order summaries through a Mailer.
type OrderNotifier struct {
	mailer       Mailer
	supportEmail string
}

// NewOrderNotifier creates a notifier. supportEmail appears in the email
// footer as the contact address.
func NewOrderNotifier(m Mailer, supportEmail string) *OrderNotifier {
	return &OrderNotifier{mailer: m, supportEmail: supportEmail}
}

// SendOrderSummary renders the summary for o and delivers it to the
// customer's address.
func (n *OrderNotifier) SendOrderSummary(ctx context.Context, to, name string, o *order.Order) error {
	body, err := RenderOrderSummary(o, name, n.supportEmail)
	if err != nil {
		return err
	}
	return n.mailer.Send(ctx, to, "Order Summary", body)
}
