// Package paylink builds payment URLs a participant can open to pay what they owe.
package paylink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmynk/divvy/internal/money"
)

// Generator produces a payment link for one participant.
type Generator interface {
	Link(personName string, owed money.Money, billTitle string) (string, error)
}

// ErrNothingOwed is returned for amounts of zero or less.
var ErrNothingOwed = errors.New("nothing owed")

// Fintoc links to https://fintoc.me/{collector}/{amount}. The amount is in whole major
// units, rounded half up.
type Fintoc struct {
	Collector string
}

var _ Generator = Fintoc{}

// Link implements Generator.
func (f Fintoc) Link(personName string, owed money.Money, billTitle string) (string, error) {
	if owed.Amount <= 0 {
		return "", ErrNothingOwed
	}
	if f.Collector == "" {
		return "", errors.New("fintoc collector not configured")
	}
	amount := owed.Decimal().Round(0).String()
	return fmt.Sprintf("https://fintoc.me/%s/%s", url.PathEscape(f.Collector), amount), nil
}

// Template fills a URL pattern with {name}, {amount}, {currency} and {title}. Values are
// query-escaped; the amount is in major units with the currency's decimals.
type Template struct {
	Pattern string
}

var _ Generator = Template{}

// Link implements Generator.
func (t Template) Link(personName string, owed money.Money, billTitle string) (string, error) {
	if owed.Amount <= 0 {
		return "", ErrNothingOwed
	}
	if t.Pattern == "" {
		return "", errors.New("link template not configured")
	}
	r := strings.NewReplacer(
		"{name}", url.QueryEscape(personName),
		"{amount}", owed.Decimal().StringFixed(owed.Currency.Exponent()),
		"{currency}", url.QueryEscape(string(owed.Currency)),
		"{title}", url.QueryEscape(billTitle),
	)
	return r.Replace(t.Pattern), nil
}

// New picks a generator: a template wins over a Fintoc collector. It returns nil when
// neither is configured.
func New(template, collector string) Generator {
	switch {
	case template != "":
		return Template{Pattern: template}
	case collector != "":
		return Fintoc{Collector: strings.TrimPrefix(collector, "@")}
	}
	return nil
}
