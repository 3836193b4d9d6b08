// Package order holds a single customer order: a base beverage and the
// condiments layered over it.
package order

import (
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/starbuzz/internal/domain/beverage"
)

// Separator splits condiment selections on a single input line.
const Separator = ","

// Order is the beverage being assembled for one customer. Item is the head
// of the chain; every accepted condiment replaces it with a new wrapper.
type Order struct {
	ID        uuid.UUID
	Item      beverage.Item
	CreatedAt time.Time
}

// New starts an order for the given base beverage.
func New(kind beverage.Kind) (*Order, error) {
	base, err := beverage.NewBase(kind)
	if err != nil {
		return nil, errors.Wrap(err, "new base")
	}
	return &Order{
		ID:        uuid.New(),
		Item:      base,
		CreatedAt: time.Now(),
	}, nil
}

// Add wraps the current beverage in condiment.
func (o *Order) Add(condiment beverage.Condiment) error {
	w, err := beverage.Wrap(o.Item, condiment)
	if err != nil {
		return errors.Wrapf(err, "add %s", condiment)
	}
	o.Item = w
	return nil
}

// ApplyLine adds every condiment named on a comma-separated line, left to
// right. Tokens that are not on the menu, empty ones included, are skipped
// and returned in input order.
func (o *Order) ApplyLine(line string) ([]*beverage.InvalidCondimentError, error) {
	var invalid []*beverage.InvalidCondimentError
	for _, token := range Tokens(line) {
		c, err := beverage.ParseCondiment(token)
		if err != nil {
			var icErr *beverage.InvalidCondimentError
			if !errors.As(err, &icErr) {
				return invalid, errors.Wrapf(err, "parse condiment %q", token)
			}
			invalid = append(invalid, icErr)
			continue
		}
		if err := o.Add(c); err != nil {
			return invalid, err
		}
	}
	return invalid, nil
}

// Description renders the full beverage, base first.
func (o *Order) Description() string {
	return o.Item.Description()
}

// Total is the exact cost of the beverage.
func (o *Order) Total() decimal.Decimal {
	return o.Item.Cost()
}

// Tokens splits a condiment line on Separator and trims each part. Empty
// parts are kept, so an empty line yields a single empty token.
func Tokens(line string) []string {
	tokens := strings.Split(line, Separator)
	for i, p := range tokens {
		tokens[i] = strings.TrimSpace(p)
	}
	return tokens
}
