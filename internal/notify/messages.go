package notify

import (
	"fmt"
	"strings"

	"moto-repaint-backend/internal/domain"
)

// ProjectText renders a new project request for the workshop chat.
func ProjectText(p *domain.ProjectRequest, money *domain.PriceFormatter) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New project request %s\n\n", p.ID)
	fmt.Fprintf(&b, "Name: %s\n", p.Name)
	if p.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", p.Phone)
	}
	if p.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", p.Email)
	}
	if p.Motorcycle != "" {
		fmt.Fprintf(&b, "Motorcycle: %s\n", p.Motorcycle)
	}
	if len(p.Items) > 0 {
		b.WriteString("\nSelected services:\n")
		for _, l := range p.Items {
			fmt.Fprintf(&b, "- %s x%d: %s\n", l.Name, l.Quantity, money.Format(l.Subtotal()))
		}
		fmt.Fprintf(&b, "Total: %s\n", money.Format(p.Total))
	}
	if p.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", p.Notes)
	}
	return strings.TrimRight(b.String(), "\n")
}

// ContactText renders a contact form message.
func ContactText(m *domain.ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New message from %s\n", m.Name)
	if m.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", m.Phone)
	}
	if m.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", m.Email)
	}
	fmt.Fprintf(&b, "\n%s", m.Message)
	return b.String()
}
