package store

import (
	"context"
	"slices"

	"github.com/MrJamesThe3rd/tpv/internal/pos"
)

// collection describes where one entity kind lives inside the State.
type collection[T any] struct {
	prefix   string
	items    func(*pos.State) *[]T
	id       func(*T) *string
	validate func(*T) error
}

var (
	products = collection[pos.Product]{
		prefix:   "prod",
		items:    func(s *pos.State) *[]pos.Product { return &s.Products },
		id:       func(p *pos.Product) *string { return &p.ID },
		validate: func(p *pos.Product) error { return p.Validate() },
	}
	customers = collection[pos.Customer]{
		prefix:   "cust",
		items:    func(s *pos.State) *[]pos.Customer { return &s.Customers },
		id:       func(c *pos.Customer) *string { return &c.ID },
		validate: func(c *pos.Customer) error { return c.Validate() },
	}
	suppliers = collection[pos.Supplier]{
		prefix:   "supp",
		items:    func(s *pos.State) *[]pos.Supplier { return &s.Suppliers },
		id:       func(sp *pos.Supplier) *string { return &sp.ID },
		validate: func(sp *pos.Supplier) error { return sp.Validate() },
	}
	sales = collection[pos.Sale]{
		prefix: "sale",
		items:  func(s *pos.State) *[]pos.Sale { return &s.Sales },
		id:     func(sale *pos.Sale) *string { return &sale.ID },
	}
)

// unchecked returns c without validation, for changes that cannot make an
// entity invalid.
func unchecked[T any](c collection[T]) collection[T] {
	c.validate = nil
	return c
}

func list[T any](s *pos.State, c collection[T]) []T {
	return slices.Clone(*c.items(s))
}

func indexOf[T any](s *pos.State, c collection[T], id string) int {
	items := *c.items(s)
	for i := range items {
		if *c.id(&items[i]) == id {
			return i
		}
	}

	return -1
}

func get[T any](s *pos.State, c collection[T], id string) (T, bool) {
	i := indexOf(s, c, id)
	if i < 0 {
		var zero T
		return zero, false
	}

	return (*c.items(s))[i], true
}

// add appends item, generating an id when it has none.
func add[T any](s *pos.State, c collection[T], item T, newID pos.IDGenerator) T {
	if id := c.id(&item); *id == "" {
		*id = newID(c.prefix)
	}

	items := c.items(s)
	*items = append(*items, item)

	return item
}

// update applies the change to a copy and stores it only when the result
// passes the collection's validation; on failure the entity is untouched.
func update[T any](s *pos.State, c collection[T], id string, apply func(*T)) (T, bool, error) {
	var zero T

	i := indexOf(s, c, id)
	if i < 0 {
		return zero, false, nil
	}

	items := *c.items(s)
	next := items[i]
	apply(&next)

	if c.validate != nil {
		if err := c.validate(&next); err != nil {
			return zero, true, err
		}
	}

	items[i] = next

	return next, true, nil
}

func remove[T any](s *pos.State, c collection[T], id string) bool {
	items := c.items(s)
	n := len(*items)
	*items = slices.DeleteFunc(*items, func(item T) bool { return *c.id(&item) == id })

	return len(*items) != n
}

// updateAndFlush persists only when the entity was found and the change is valid.
func updateAndFlush[T any](ctx context.Context, s *Store, c collection[T], id string, apply func(*T)) (T, bool, error) {
	item, ok, err := update(s.state, c, id, apply)
	if !ok || err != nil {
		return item, ok, err
	}

	return item, true, s.flush(ctx)
}

// removeAndFlush persists only when something was removed.
func removeAndFlush[T any](ctx context.Context, s *Store, c collection[T], id string) (bool, error) {
	if !remove(s.state, c, id) {
		return false, nil
	}

	return true, s.flush(ctx)
}
