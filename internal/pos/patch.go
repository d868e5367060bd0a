package pos

import "github.com/shopspring/decimal"

// Patches carry a partial record: nil fields are left untouched on update.

// ProductPatch has no stock field; stock only changes through adjustments
// and sales.
type ProductPatch struct {
	ID         string           `json:"id"`
	Name       *string          `json:"name,omitempty"`
	Category   *string          `json:"category,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	SupplierID *string          `json:"supplierId,omitempty"`
}

func (p ProductPatch) Apply(dst *Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}

	if p.Category != nil {
		dst.Category = *p.Category
	}

	if p.Price != nil {
		dst.Price = *p.Price
	}

	if p.SupplierID != nil {
		dst.SupplierID = *p.SupplierID
	}
}

type CustomerPatch struct {
	ID    string  `json:"id"`
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func (p CustomerPatch) Apply(dst *Customer) {
	if p.Name != nil {
		dst.Name = *p.Name
	}

	if p.Email != nil {
		dst.Email = *p.Email
	}

	if p.Phone != nil {
		dst.Phone = *p.Phone
	}
}

type SupplierPatch struct {
	ID      string  `json:"id"`
	Name    *string `json:"name,omitempty"`
	Contact *string `json:"contact,omitempty"`
	Phone   *string `json:"phone,omitempty"`
}

func (p SupplierPatch) Apply(dst *Supplier) {
	if p.Name != nil {
		dst.Name = *p.Name
	}

	if p.Contact != nil {
		dst.Contact = *p.Contact
	}

	if p.Phone != nil {
		dst.Phone = *p.Phone
	}
}

// SettingsPatch doubles as the wire form of a stored settings record, where
// a missing field must fall back to the default.
type SettingsPatch struct {
	CompanyName *string `json:"companyName,omitempty"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty"`
	LogoURL     *string `json:"logoUrl,omitempty"`
}

func (p SettingsPatch) Apply(dst *Settings) {
	if p.CompanyName != nil {
		dst.CompanyName = *p.CompanyName
	}

	if p.Address != nil {
		dst.Address = *p.Address
	}

	if p.Phone != nil {
		dst.Phone = *p.Phone
	}

	if p.Email != nil {
		dst.Email = *p.Email
	}

	if p.LogoURL != nil {
		dst.LogoURL = *p.LogoURL
	}
}
