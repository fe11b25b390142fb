// Package cart models the shopper's cart as an immutable list of lines.
package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Line is one product in the cart. Price is a snapshot taken when the line
// was first added.
type Line struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Image     string          `json:"image"`
}

// Total returns price times quantity
func (l Line) Total() valueobject.Money {
	return valueobject.USDAmount(l.Price).MultiplyByInt(int64(l.Quantity))
}

// Notice tells the caller why a mutation did less than asked. It is never an error.
type Notice string

const (
	NoticeNone         Notice = ""
	NoticeStockLimited Notice = "STOCK_LIMITED"
	NoticeOutOfStock   Notice = "OUT_OF_STOCK"
	NoticeNotInCart    Notice = "NOT_IN_CART"
)

// Outcome reports the effect of a mutation
type Outcome struct {
	Changed  bool   `json:"changed"`
	Notice   Notice `json:"notice,omitempty"`
	Quantity int    `json:"quantity"`
}

// Cart holds at most one line per product, each with 1 <= quantity.
// All methods return a new Cart and leave the receiver untouched.
type Cart struct {
	lines []Line
}

// New builds a cart from raw lines, merging duplicate products and
// dropping lines with a non-positive quantity.
func New(lines ...Line) Cart {
	out := make([]Line, 0, len(lines))
	index := make(map[string]int, len(lines))
	for _, l := range lines {
		if l.Quantity < 1 || l.ProductID == "" {
			continue
		}
		if i, ok := index[l.ProductID]; ok {
			out[i].Quantity += l.Quantity
			continue
		}
		index[l.ProductID] = len(out)
		out = append(out, l)
	}
	return Cart{lines: out}
}

// Add merges line into the cart. The resulting quantity is clamped to
// [1, stock]; with no stock left nothing changes.
func (c Cart) Add(line Line, stock int) (Cart, Outcome) {
	requested := line.Quantity
	if requested < 1 {
		requested = 1
	}

	i := c.indexOf(line.ProductID)
	if stock < 1 {
		current := 0
		if i >= 0 {
			current = c.lines[i].Quantity
		}
		return c, Outcome{Notice: NoticeOutOfStock, Quantity: current}
	}

	if i < 0 {
		qty, notice := clamp(requested, stock)
		line.Quantity = qty
		next := c.clone(1)
		next.lines = append(next.lines, line)
		return next, Outcome{Changed: true, Notice: notice, Quantity: qty}
	}

	current := c.lines[i].Quantity
	qty, notice := clamp(current+requested, stock)
	if qty == current {
		if notice == NoticeNone {
			notice = NoticeStockLimited
		}
		return c, Outcome{Notice: notice, Quantity: current}
	}
	next := c.clone(0)
	next.lines[i].Quantity = qty
	return next, Outcome{Changed: true, Notice: notice, Quantity: qty}
}

// SetQuantity sets a line's quantity, constrained to [1, stock].
// Unknown products and sold-out products leave the cart unchanged.
func (c Cart) SetQuantity(productID string, qty, stock int) (Cart, Outcome) {
	i := c.indexOf(productID)
	if i < 0 {
		return c, Outcome{Notice: NoticeNotInCart}
	}
	if stock < 1 {
		return c, Outcome{Notice: NoticeOutOfStock, Quantity: c.lines[i].Quantity}
	}
	target, notice := clamp(qty, stock)
	current := c.lines[i].Quantity
	if target == current {
		return c, Outcome{Notice: notice, Quantity: current}
	}
	next := c.clone(0)
	next.lines[i].Quantity = target
	return next, Outcome{Changed: true, Notice: notice, Quantity: target}
}

// Remove deletes the line for productID. Removing an absent product is a no-op.
func (c Cart) Remove(productID string) (Cart, bool) {
	i := c.indexOf(productID)
	if i < 0 {
		return c, false
	}
	next := Cart{lines: make([]Line, 0, len(c.lines)-1)}
	next.lines = append(next.lines, c.lines[:i]...)
	next.lines = append(next.lines, c.lines[i+1:]...)
	return next, true
}

// Clear returns an empty cart
func (c Cart) Clear() Cart {
	return Cart{lines: []Line{}}
}

// Lines returns a copy of the cart lines in insertion order
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line for productID
func (c Cart) Line(productID string) (Line, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// Len returns the number of distinct products
func (c Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines
func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// ItemCount is the sum of quantities across lines
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// Subtotal is the sum of price times quantity across lines
func (c Cart) Subtotal() valueobject.Money {
	return Subtotal(c.lines)
}

// Subtotal sums line totals for any list of lines
func Subtotal(lines []Line) valueobject.Money {
	total := valueobject.Zero(valueobject.DefaultCurrency)
	for _, l := range lines {
		total = total.MustAdd(l.Total())
	}
	return total
}

// MarshalJSON encodes the cart as its line list. Prices survive a round trip
// by value, not by exponent ("1.50" reloads as 1.5).
func (c Cart) MarshalJSON() ([]byte, error) {
	lines := c.lines
	if lines == nil {
		lines = []Line{}
	}
	return json.Marshal(lines)
}

// UnmarshalJSON decodes a line list and normalizes it through New
func (c *Cart) UnmarshalJSON(data []byte) error {
	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*c = New(lines...)
	return nil
}

func (c Cart) indexOf(productID string) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) clone(extra int) Cart {
	lines := make([]Line, len(c.lines), len(c.lines)+extra)
	copy(lines, c.lines)
	return Cart{lines: lines}
}

// clamp bounds qty to [1, stock] and reports when stock was the limit
func clamp(qty, stock int) (int, Notice) {
	notice := NoticeNone
	if qty > stock {
		qty = stock
		notice = NoticeStockLimited
	}
	if qty < 1 {
		qty = 1
	}
	return qty, notice
}
