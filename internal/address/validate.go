package address

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
)

// Normalize trims every field and checks it is valid UTF-8 without NUL bytes,
// present and at most 200 characters. Values are otherwise kept verbatim.
func (in ShippingInput) Normalize() (ShippingInput, error) {
	out := ShippingInput{
		Address: strings.TrimSpace(in.Address),
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		Zipcode: strings.TrimSpace(in.Zipcode),
	}

	fields := []struct {
		name  string
		value string
	}{
		{"address", out.Address},
		{"city", out.City},
		{"state", out.State},
		{"zipcode", out.Zipcode},
	}

	for _, f := range fields {
		// Postgres TEXT rejects both
		if !utf8.ValidString(f.value) || strings.ContainsRune(f.value, 0) {
			return ShippingInput{}, errors.Wrap(ErrShippingFieldInvalid, f.name)
		}
		if f.value == "" {
			return ShippingInput{}, errors.Wrap(ErrShippingFieldRequired, f.name)
		}
		if utf8.RuneCountInString(f.value) > maxFieldLength {
			return ShippingInput{}, errors.Wrap(ErrShippingFieldTooLong, f.name)
		}
	}

	return out, nil
}
