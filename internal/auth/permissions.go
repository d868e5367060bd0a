package auth

type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleUser   Role = "user"
)

type Module string

const (
	ModuleSales     Module = "sales"
	ModuleProducts  Module = "products"
	ModuleStock     Module = "stock"
	ModuleCustomers Module = "customers"
	ModuleSuppliers Module = "suppliers"
	ModuleSettings  Module = "settings"
)

// Access levels are ordered: write implies read.
type Access int

const (
	AccessNone Access = iota
	AccessRead
	AccessWrite
)

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "read"
	case AccessWrite:
		return "write"
	default:
		return "none"
	}
}

var permissions = map[Role]map[Module]Access{
	RoleAdmin: {
		ModuleSales:     AccessWrite,
		ModuleProducts:  AccessWrite,
		ModuleStock:     AccessWrite,
		ModuleCustomers: AccessWrite,
		ModuleSuppliers: AccessWrite,
		ModuleSettings:  AccessWrite,
	},
	RoleSeller: {
		ModuleSales:     AccessWrite,
		ModuleProducts:  AccessRead,
		ModuleStock:     AccessRead,
		ModuleCustomers: AccessRead,
		ModuleSuppliers: AccessRead,
	},
	RoleUser: {
		ModuleSales:     AccessRead,
		ModuleProducts:  AccessRead,
		ModuleStock:     AccessRead,
		ModuleCustomers: AccessRead,
		ModuleSuppliers: AccessRead,
	},
}

// Permission returns what role may do in module. Unknown roles and modules
// missing from the role's table get AccessNone.
func Permission(role Role, module Module) Access {
	return permissions[role][module]
}

func CanWrite(role Role, module Module) bool {
	return Permission(role, module) >= AccessWrite
}

func CanRead(role Role, module Module) bool {
	return Permission(role, module) >= AccessRead
}
