// Package bin holds the BIN lookup record and the local input rules applied
// before a lookup is issued.
package bin

import (
	"errors"
	"strings"
)

const (
	// MaxDigits caps the sanitized input.
	MaxDigits = 8
	// MinDigits is the shortest input that may be submitted.
	MinDigits = 6
)

// User-facing messages. Both front ends render these verbatim.
const (
	ValidationMessage = "Please enter at least 6 digits"
	FailureMessage    = "Failed to fetch BIN information. Please try again."
)

// ErrTooShort is returned by Validate when fewer than MinDigits digits are present.
var ErrTooShort = errors.New(ValidationMessage)

// Number describes the card number range the prefix belongs to.
type Number struct {
	IIN    string `json:"iin"`
	Length int    `json:"length"`
	Luhn   bool   `json:"luhn"`
}

// LuhnLabel renders the Luhn flag the way the result panel shows it.
func (n Number) LuhnLabel() string {
	if n.Luhn {
		return "Valid"
	}
	return "Invalid"
}

// Country is the issuing country.
type Country struct {
	Alpha2 string `json:"alpha2"`
	Alpha3 string `json:"alpha3"`
	Name   string `json:"name"`
	Emoji  string `json:"emoji"`
}

// Bank is the issuing institution.
type Bank struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	URL   string `json:"url"`
}

// PhoneHref returns a tel: link for the bank phone, or "" when unknown.
func (b Bank) PhoneHref() string {
	if b.Phone == "" {
		return ""
	}
	return "tel:" + b.Phone
}

// Href returns the bank website as an https URL, or "" when unknown.
// The lookup service reports bare hostnames ("discover.com").
func (b Bank) Href() string {
	if b.URL == "" {
		return ""
	}
	if strings.HasPrefix(b.URL, "http://") || strings.HasPrefix(b.URL, "https://") {
		return b.URL
	}
	return "https://" + b.URL
}

// Result is the record returned by the lookup service. It is passed through
// untouched; no field is validated locally.
type Result struct {
	Number   Number  `json:"number"`
	Scheme   string  `json:"scheme"`
	Type     string  `json:"type"`
	Category string  `json:"category"`
	Country  Country `json:"country"`
	Bank     Bank    `json:"bank"`
	Success  bool    `json:"success"`
}

// Sanitize keeps the ASCII digits of raw, in order, and truncates the result
// to MaxDigits. It never fails; anything else is silently dropped.
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(MaxDigits)
	for i := 0; i < len(raw) && b.Len() < MaxDigits; i++ {
		c := raw[i]
		if c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Validate reports whether digits is long enough to be looked up.
// It assumes digits was produced by Sanitize.
func Validate(digits string) error {
	if len(digits) < MinDigits {
		return ErrTooShort
	}
	return nil
}
