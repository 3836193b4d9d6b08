package beverage

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownBeverage is returned when a selection does not name a base beverage.
	ErrUnknownBeverage = errors.New("unknown beverage")
	// ErrUnknownCondiment is returned when a selection does not name a condiment.
	ErrUnknownCondiment = errors.New("unknown condiment")
)

// Kind enumerates the base beverages on the menu. The numeric value is the
// selection token shown on the menu.
type Kind uint8

const (
	HouseBlend Kind = iota + 1
	DarkRoast
	Decaf
	Espresso
)

var (
	priceHouseBlend = decimal.RequireFromString("0.89")
	priceDarkRoast  = decimal.RequireFromString("0.99")
	priceDecaf      = decimal.RequireFromString("1.05")
	priceEspresso   = decimal.RequireFromString("1.99")
)

// Kinds returns every base beverage in menu order.
func Kinds() []Kind {
	return []Kind{HouseBlend, DarkRoast, Decaf, Espresso}
}

// Valid reports whether k is on the menu.
func (k Kind) Valid() bool {
	return k >= HouseBlend && k <= Espresso
}

// Token returns the menu selection token for k.
func (k Kind) Token() string { return strconv.Itoa(int(k)) }

func (k Kind) String() string {
	switch k {
	case HouseBlend:
		return "HouseBlend"
	case DarkRoast:
		return "DarkRoast"
	case Decaf:
		return "Decaf"
	case Espresso:
		return "Espresso"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Description is the fixed customer-facing name of the beverage.
func (k Kind) Description() string {
	switch k {
	case HouseBlend:
		return "House Blend Coffee"
	case DarkRoast:
		return "Dark Roast Coffee"
	case Decaf:
		return "Decaf Coffee"
	case Espresso:
		return "Espresso Coffee"
	default:
		return ""
	}
}

// Price is the fixed cost of the beverage without condiments.
func (k Kind) Price() decimal.Decimal {
	switch k {
	case HouseBlend:
		return priceHouseBlend
	case DarkRoast:
		return priceDarkRoast
	case Decaf:
		return priceDecaf
	case Espresso:
		return priceEspresso
	default:
		return decimal.Zero
	}
}

// Condiment enumerates the add-ons that can wrap a beverage. The numeric
// value is the selection token shown on the menu.
type Condiment uint8

const (
	Milk Condiment = iota + 1
	Mocha
	Soy
	WhippedCream
)

var (
	priceMilk         = decimal.RequireFromString("0.20")
	priceMocha        = decimal.RequireFromString("0.20")
	priceSoy          = decimal.RequireFromString("0.15")
	priceWhippedCream = decimal.RequireFromString("0.10")
)

// AllCondiments returns every condiment in menu order.
func AllCondiments() []Condiment {
	return []Condiment{Milk, Mocha, Soy, WhippedCream}
}

// Valid reports whether c is on the menu.
func (c Condiment) Valid() bool {
	return c >= Milk && c <= WhippedCream
}

// Token returns the menu selection token for c.
func (c Condiment) Token() string { return strconv.Itoa(int(c)) }

func (c Condiment) String() string {
	switch c {
	case Milk:
		return "Milk"
	case Mocha:
		return "Mocha"
	case Soy:
		return "Soy"
	case WhippedCream:
		return "WhippedCream"
	default:
		return fmt.Sprintf("Condiment(%d)", uint8(c))
	}
}

// Label is the name printed on the condiment menu.
func (c Condiment) Label() string {
	switch c {
	case Milk:
		return "Milk"
	case Mocha:
		return "Mocha"
	case Soy:
		return "Soy"
	case WhippedCream:
		return "Whipped cream"
	default:
		return ""
	}
}

// Suffix is appended to the wrapped item's description.
func (c Condiment) Suffix() string {
	switch c {
	case Milk:
		return ", Steamed Milk"
	case Mocha:
		return ", Mocha"
	case Soy:
		return ", Soy"
	case WhippedCream:
		return ", Whipped Cream"
	default:
		return ""
	}
}

// Price is the increment added to the wrapped item's cost.
func (c Condiment) Price() decimal.Decimal {
	switch c {
	case Milk:
		return priceMilk
	case Mocha:
		return priceMocha
	case Soy:
		return priceSoy
	case WhippedCream:
		return priceWhippedCream
	default:
		return decimal.Zero
	}
}

// InvalidBeverageError reports a base selection that is not on the menu.
type InvalidBeverageError struct {
	Input string
}

func (e *InvalidBeverageError) Error() string {
	return fmt.Sprintf("invalid coffee choice %q", e.Input)
}

func (e *InvalidBeverageError) Unwrap() error { return ErrUnknownBeverage }

// InvalidCondimentError reports a single condiment token that is not on the menu.
type InvalidCondimentError struct {
	Token string
}

func (e *InvalidCondimentError) Error() string {
	return fmt.Sprintf("invalid condiment choice %q", e.Token)
}

func (e *InvalidCondimentError) Unwrap() error { return ErrUnknownCondiment }

// ParseKind resolves a base selection. Surrounding whitespace is ignored and
// the remainder must be an integer naming a menu entry.
func ParseKind(s string) (Kind, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < int(HouseBlend) || n > int(Espresso) {
		return 0, &InvalidBeverageError{Input: s}
	}
	return Kind(n), nil
}

// ParseCondiment resolves a single condiment token. The token is trimmed and
// must match a menu token exactly.
func ParseCondiment(s string) (Condiment, error) {
	token := strings.TrimSpace(s)
	for _, c := range AllCondiments() {
		if c.Token() == token {
			return c, nil
		}
	}
	return 0, &InvalidCondimentError{Token: token}
}
