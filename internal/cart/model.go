package cart

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Action is a single-step change to a line item's quantity.
type Action string

const (
	ActionIncrement Action = "increment"
	ActionDecrement Action = "decrement"
)

// ParseAction accepts the storefront's wire values as well as the canonical
// names.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "increment":
		return ActionIncrement, nil
	case "remove", "decrement":
		return ActionDecrement, nil
	default:
		return "", errors.Wrapf(ErrInvalidAction, "%q", s)
	}
}

func (a Action) Apply(quantity int) int {
	switch a {
	case ActionIncrement:
		return quantity + 1
	case ActionDecrement:
		return quantity - 1
	default:
		return quantity
	}
}

// ProductRef is a product id that may arrive as a JSON number or a numeric
// string.
type ProductRef uint

func (p *ProductRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*p = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidProductID
		}
		raw = strings.TrimSpace(s)
	}

	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return ErrInvalidProductID
	}
	*p = ProductRef(n)
	return nil
}

type UpdateItemInput struct {
	ProductID ProductRef `json:"productId"`
	Action    string     `json:"action"`
}

// MutationResult reports the state of a line item and its cart after an
// update. Quantity is zero when the item was removed.
type MutationResult struct {
	OrderID   uint
	ProductID uint
	Quantity  int
	CartItems int
}
