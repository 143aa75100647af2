package domain

import "sort"

// CartItem is one line of the cart. FlightID is kept as text because it is
// part of the line key.
type CartItem struct {
	FlightID   string  `json:"flight_id"`
	PlaneName  string  `json:"plane_name"`
	Departure  string  `json:"departure"`
	Arrival    string  `json:"arrival"`
	Day        string  `json:"day"`
	TypeTicket string  `json:"type_ticket"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
}

func (i CartItem) Key() string {
	return CartKey(i.FlightID, i.TypeTicket)
}

func (i CartItem) Amount() float64 {
	return i.Price * float64(i.Quantity)
}

type CartStats struct {
	Lines         int     `json:"lines"`
	TotalQuantity int     `json:"total_quantity"`
	TotalAmount   float64 `json:"total_amount"`
}

// Cart maps CartKey(flight, type) to a line item.
type Cart struct {
	Items map[string]CartItem `json:"items"`
}

func NewCart() *Cart {
	return &Cart{Items: make(map[string]CartItem)}
}

func CartKey(flightID, typeTicket string) string {
	return flightID + "_" + typeTicket
}

// Add inserts item with quantity 1, or bumps the quantity of the existing
// line with the same key. The incoming quantity is ignored.
func (c *Cart) Add(item CartItem) CartStats {
	if c.Items == nil {
		c.Items = make(map[string]CartItem)
	}
	key := item.Key()
	if existing, ok := c.Items[key]; ok {
		existing.Quantity++
		c.Items[key] = existing
	} else {
		item.Quantity = 1
		c.Items[key] = item
	}
	return c.Stats()
}

func (c *Cart) Update(flightID, typeTicket string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	key := CartKey(flightID, typeTicket)
	item, ok := c.Items[key]
	if !ok {
		return ErrCartItemNotFound
	}
	item.Quantity = quantity
	c.Items[key] = item
	return nil
}

func (c *Cart) Delete(flightID, typeTicket string) error {
	key := CartKey(flightID, typeTicket)
	if _, ok := c.Items[key]; !ok {
		return ErrCartItemNotFound
	}
	delete(c.Items, key)
	return nil
}

// Stats is recomputed from scratch on every call. A nil cart has zero stats.
func (c *Cart) Stats() CartStats {
	var stats CartStats
	if c == nil {
		return stats
	}
	for _, item := range c.Items {
		stats.Lines++
		stats.TotalQuantity += item.Quantity
		stats.TotalAmount += item.Amount()
	}
	return stats
}

// Lines returns the items ordered by key.
func (c *Cart) Lines() []CartItem {
	if c == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Items))
	for k := range c.Items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]CartItem, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, c.Items[k])
	}
	return lines
}

func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
