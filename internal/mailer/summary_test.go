package mailer

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitishpjpt/Radhe-laptop-client-project/internal/domain/order"
)

type recordingMailer struct {
	to      string
	subject string
	body    string
}

func (m *recordingMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.to = to
	m.subject = subject
	m.body = htmlBody
	return nil
}

func testOrder() *order.Order {
	return &order.Order{
		ID: "ord-1",
		Items: []order.Item{
			{Name: "ThinkPad T14", Quantity: 2, UnitPrice: decimal.NewFromInt(500)},
			{Name: "USB-C Dock", Quantity: 1, UnitPrice: decimal.RequireFromString("120.50")},
		},
		TotalPrice:   decimal.RequireFromString("1135.50"),
		ShippingCost: decimal.NewFromInt(15),
		Country:      "USA",
	}
}

func TestRenderOrderSummary(t *testing.T) {
	body, err := RenderOrderSummary(testOrder(), "Jane Doe", "support@example.com")
	require.NoError(t, err)

	assert.Contains(t, body, "Thank you for your purchase, Jane Doe!")
	assert.Contains(t, body, "ThinkPad T14")
	assert.Contains(t, body, "USB-C Dock")
	assert.Contains(t, body, "Rs. 500.00")
	assert.Contains(t, body, "Rs. 120.50")
	assert.Contains(t, body, "<strong>Shipping:</strong> Rs. 15.00")
	assert.Contains(t, body, "<strong>Total Price:</strong> Rs. 1135.50")
	assert.Contains(t, body, "USA")
	assert.Contains(t, body, "support@example.com")
}

func TestRenderOrderSummary_NoName(t *testing.T) {
	body, err := RenderOrderSummary(testOrder(), "", "support@example.com")
	require.NoError(t, err)

	assert.Contains(t, body, "Thank you for your purchase!")
}

func TestRenderOrderSummary_EscapesHTML(t *testing.T) {
	o := testOrder()
	o.Items[0].Name = `<script>alert("x")</script>`

	body, err := RenderOrderSummary(o, "Jane", "support@example.com")
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
}

func TestOrderNotifier_Send(t *testing.T) {
	m := &recordingMailer{}
	n := NewOrderNotifier(m, "support@example.com")

	require.NoError(t, n.SendOrderSummary(context.Background(), "jane@example.com", "Jane", testOrder()))

	assert.Equal(t, "jane@example.com", m.to)
	assert.Equal(t, "Order Summary", m.subject)
	assert.Contains(t, m.body, "ThinkPad T14")
}
