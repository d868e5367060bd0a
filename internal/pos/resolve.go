package pos

// Labels shown in place of a weak reference whose target no longer exists.
const (
	DeletedCustomer = "Cliente Eliminado"
	DeletedProduct  = "Producto Eliminado"
	NoSupplier      = "N/A"
	Uncategorized   = "Sin Categoría"
)

// Resolver answers weak-reference lookups against one snapshot of the state.
// Every read site that follows customerId, productId or supplierId goes
// through it so a dangling id renders as a label instead of failing.
type Resolver struct {
	products  map[string]Product
	customers map[string]Customer
	suppliers map[string]Supplier
}

func NewResolver(s *State) *Resolver {
	r := &Resolver{
		products:  make(map[string]Product, len(s.Products)),
		customers: make(map[string]Customer, len(s.Customers)),
		suppliers: make(map[string]Supplier, len(s.Suppliers)),
	}

	for _, p := range s.Products {
		r.products[p.ID] = p
	}

	for _, c := range s.Customers {
		r.customers[c.ID] = c
	}

	for _, sp := range s.Suppliers {
		r.suppliers[sp.ID] = sp
	}

	return r
}

func (r *Resolver) Product(id string) (Product, bool) {
	p, ok := r.products[id]
	return p, ok
}

func (r *Resolver) Customer(id string) (Customer, bool) {
	c, ok := r.customers[id]
	return c, ok
}

func (r *Resolver) Supplier(id string) (Supplier, bool) {
	s, ok := r.suppliers[id]
	return s, ok
}

func (r *Resolver) CustomerName(id string) string {
	if c, ok := r.customers[id]; ok {
		return c.Name
	}

	return DeletedCustomer
}

func (r *Resolver) ProductName(id string) string {
	if p, ok := r.products[id]; ok {
		return p.Name
	}

	return DeletedProduct
}

func (r *Resolver) SupplierName(id string) string {
	if s, ok := r.suppliers[id]; ok {
		return s.Name
	}

	return NoSupplier
}

// Category returns the current category of a product, Uncategorized when the
// product has none, and false when the product was deleted.
func (r *Resolver) Category(productID string) (string, bool) {
	p, ok := r.products[productID]
	if !ok {
		return "", false
	}

	if p.Category == "" {
		return Uncategorized, true
	}

	return p.Category, true
}
