package cart

import (
	"Hostel-Food-Ordering/domain"
	"encoding/json"
	"sort"
	"strings"
)

// Cart is a date-scoped map of "itemID" or "itemID:variantID" to quantity.
type Cart struct {
	Date  string         `json:"date"`
	Items map[string]int `json:"items"`
}

func New(date string) *Cart {
	return &Cart{Date: date, Items: map[string]int{}}
}

func Key(menuItemID, variantID string) string {
	if variantID == "" {
		return menuItemID
	}
	return menuItemID + ":" + variantID
}

func ParseKey(key string) (menuItemID string, variantID string) {
	menuItemID, variantID, _ = strings.Cut(key, ":")
	return menuItemID, variantID
}

func (c *Cart) Add(menuItemID, variantID string, qty int) {
	c.Set(menuItemID, variantID, c.Items[Key(menuItemID, variantID)]+qty)
}

// Set replaces the quantity; a non-positive quantity removes the line.
func (c *Cart) Set(menuItemID, variantID string, qty int) {
	key := Key(menuItemID, variantID)
	if qty <= 0 {
		delete(c.Items, key)
		return
	}
	c.Items[key] = qty
}

func (c *Cart) Remove(menuItemID, variantID string) {
	delete(c.Items, Key(menuItemID, variantID))
}

func (c *Cart) Clear() {
	c.Items = map[string]int{}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

func (c *Cart) TotalQuantity() int {
	total := 0
	for _, q := range c.Items {
		total += q
	}
	return total
}

// Lines returns the cart as checkout lines in a stable order.
func (c *Cart) Lines() []domain.CartLine {
	keys := make([]string, 0, len(c.Items))
	for k := range c.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]domain.CartLine, 0, len(keys))
	for _, k := range keys {
		itemID, variantID := ParseKey(k)
		lines = append(lines, domain.CartLine{
			MenuItemID: itemID,
			VariantID:  variantID,
			Quantity:   c.Items[k],
		})
	}
	return lines
}

func FromLines(date string, lines []domain.CartLine) *Cart {
	c := New(date)
	for _, l := range lines {
		c.Add(l.MenuItemID, l.VariantID, l.Quantity)
	}
	return c
}

func (c *Cart) Encode() (string, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode restores a stored cart. A cart stored for another date is stale and
// an empty cart for date is returned instead.
func Decode(data string, date string) (*Cart, error) {
	var stored Cart
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, err
	}
	if stored.Date != date {
		return New(date), nil
	}
	if stored.Items == nil {
		stored.Items = map[string]int{}
	}
	for k, q := range stored.Items {
		if q <= 0 {
			delete(stored.Items, k)
		}
	}
	return &stored, nil
}

func StoredDate(data string) (string, error) {
	var stored Cart
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return "", err
	}
	return stored.Date, nil
}
