package cart

import (
	"fmt"
	"net/url"
	"strings"
)

// FormatOrderMessage renders the outbound order inquiry, one line per entry
// plus a summary line. Empty string when the cart is empty or not visible.
func (c *Cart) FormatOrderMessage() string {
	if !c.Sess.Visible() || len(c.entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Olá! Gostaria de fazer um pedido:\n\n")

	units := 0
	for _, e := range c.entries {
		if e.Price != nil {
			fmt.Fprintf(&b, "%s (R$ %.2f) - Quantidade: %d\n", e.Description, *e.Price, e.Quantity)
		} else {
			fmt.Fprintf(&b, "%s - Quantidade: %d\n", e.Description, e.Quantity)
		}
		units += e.Quantity
	}

	fmt.Fprintf(&b, "\nTotal de %d unidade(s) em %d produto(s) diferente(s)", units, len(c.entries))
	return b.String()
}

// OrderLink builds the messaging deep link: <endpoint>?text=<escaped message>.
// Empty string when there is no message to send.
func (c *Cart) OrderLink(endpoint string) string {
	msg := c.FormatOrderMessage()
	if msg == "" {
		return ""
	}
	return endpoint + "?text=" + url.QueryEscape(msg)
}
