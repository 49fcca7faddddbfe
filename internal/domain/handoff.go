package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// HandoffParam is the query parameter that carries cart contents to the
// project request page.
const HandoffParam = "items"

// EncodeHandoff serializes the cart lines as a JSON array.
func EncodeHandoff(c *Cart) (string, error) {
	lines := c.Serialize()
	b, err := json.Marshal(lines)
	if err != nil {
		return "", fmt.Errorf("encode handoff: %w", err)
	}
	return string(b), nil
}

// HandoffURL appends the encoded cart to base as the items query parameter.
// Existing query parameters of base are preserved.
func HandoffURL(base string, c *Cart) (string, error) {
	payload, err := EncodeHandoff(c)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse project url %q: %w", base, err)
	}
	q := u.Query()
	q.Set(HandoffParam, payload)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// DecodeHandoff turns the items parameter back into a cart. Anything that
// cannot be decoded yields an empty cart.
func DecodeHandoff(raw string) *Cart {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NewCart()
	}
	var lines []CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return NewCart()
	}
	return RestoreCart(lines)
}

// CartFromQuery reads the handoff parameter from a parsed query string.
func CartFromQuery(q url.Values) *Cart {
	return DecodeHandoff(q.Get(HandoffParam))
}
