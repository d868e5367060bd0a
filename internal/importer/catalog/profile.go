package catalog

// field is a product attribute that can be read from a column.
type field int

const (
	fieldName field = iota
	fieldCategory
	fieldPrice
	fieldStock
	fieldSupplier
)

// headers lists the accepted column titles per field, compared
// case-insensitively after trimming.
var headers = map[field][]string{
	fieldName:     {"nombre", "producto", "artículo", "articulo"},
	fieldCategory: {"categoría", "categoria", "familia"},
	fieldPrice:    {"precio", "pvp", "precio unitario"},
	fieldStock:    {"stock", "existencias", "cantidad"},
	fieldSupplier: {"proveedor"},
}

// required fields must all be present for a row to be taken as the header.
var required = []field{fieldName, fieldPrice}
