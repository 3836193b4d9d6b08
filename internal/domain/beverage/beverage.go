// Package beverage models menu items as a chain of priced layers: a base
// beverage wrapped by zero or more condiments.
package beverage

import (
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNilItem is returned when a condiment is asked to wrap nothing.
var ErrNilItem = errors.New("nil item")

// Item is anything that can be described and priced. It is implemented only
// by *Base and *Wrapped.
type Item interface {
	Description() string
	Cost() decimal.Decimal

	// next returns the wrapped item, or nil for a base beverage.
	next() Item
}

var (
	_ Item = (*Base)(nil)
	_ Item = (*Wrapped)(nil)
)

// Base is a beverage with no condiments.
type Base struct {
	kind Kind
}

// NewBase returns the base beverage for kind.
func NewBase(kind Kind) (*Base, error) {
	if !kind.Valid() {
		return nil, errors.Wrapf(ErrUnknownBeverage, "kind %d", uint8(kind))
	}
	return &Base{kind: kind}, nil
}

// Kind returns which beverage b is.
func (b *Base) Kind() Kind { return b.kind }

// Description implements Item.
func (b *Base) Description() string { return b.kind.Description() }

// Cost implements Item.
func (b *Base) Cost() decimal.Decimal { return b.kind.Price() }

func (b *Base) next() Item { return nil }

// Wrapped is a condiment layered over another item. The inner item is fixed
// at construction.
type Wrapped struct {
	condiment Condiment
	inner     Item
}

// Wrap layers condiment over inner. inner is left untouched; the result is a
// new item.
func Wrap(inner Item, condiment Condiment) (*Wrapped, error) {
	if isNil(inner) {
		return nil, ErrNilItem
	}
	if !condiment.Valid() {
		return nil, errors.Wrapf(ErrUnknownCondiment, "condiment %d", uint8(condiment))
	}
	return &Wrapped{condiment: condiment, inner: inner}, nil
}

// Condiment returns the outermost condiment of w.
func (w *Wrapped) Condiment() Condiment { return w.condiment }

// Inner returns the item w wraps.
func (w *Wrapped) Inner() Item { return w.inner }

// Description renders the base description followed by every condiment
// suffix in the order the condiments were applied.
func (w *Wrapped) Description() string {
	var (
		base     *Base
		suffixes []string
	)
	walk(w, func(b *Base) { base = b }, func(x *Wrapped) {
		suffixes = append(suffixes, x.condiment.Suffix())
	})

	var sb strings.Builder
	if base != nil {
		sb.WriteString(base.Description())
	}
	for i := len(suffixes) - 1; i >= 0; i-- {
		sb.WriteString(suffixes[i])
	}
	return sb.String()
}

// Cost is the base price plus every condiment increment.
func (w *Wrapped) Cost() decimal.Decimal {
	total := decimal.Zero
	walk(w, func(b *Base) {
		total = total.Add(b.Cost())
	}, func(x *Wrapped) {
		total = total.Add(x.condiment.Price())
	})
	return total
}

func (w *Wrapped) next() Item { return w.inner }

// BaseOf returns the beverage at the bottom of the chain.
func BaseOf(item Item) Kind {
	var kind Kind
	walk(item, func(b *Base) { kind = b.kind }, func(*Wrapped) {})
	return kind
}

// Condiments returns the condiments applied to item, innermost first.
func Condiments(item Item) []Condiment {
	var out []Condiment
	walk(item, func(*Base) {}, func(w *Wrapped) {
		out = append(out, w.condiment)
	})
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// LegacyCost accumulates the cost in float64: the base price, then each
// increment in the order it was applied. The result carries binary rounding
// artifacts and is only meant for reproducing historical totals.
func LegacyCost(item Item) float64 {
	var (
		base       float64
		increments []float64
	)
	walk(item, func(b *Base) {
		base = b.Cost().InexactFloat64()
	}, func(w *Wrapped) {
		increments = append(increments, w.condiment.Price().InexactFloat64())
	})

	total := base
	for i := len(increments) - 1; i >= 0; i-- {
		total += increments[i]
	}
	return total
}

// walk visits item from the outermost layer inwards. Iteration keeps the
// stack flat regardless of chain length.
func walk(item Item, onBase func(*Base), onWrapped func(*Wrapped)) {
	for cur := item; !isNil(cur); cur = cur.next() {
		switch v := cur.(type) {
		case *Base:
			onBase(v)
		case *Wrapped:
			onWrapped(v)
		}
	}
}

func isNil(item Item) bool {
	switch v := item.(type) {
	case nil:
		return true
	case *Base:
		return v == nil
	case *Wrapped:
		return v == nil
	default:
		return false
	}
}
