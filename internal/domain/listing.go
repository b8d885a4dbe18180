package domain

import "time"

// Category enumerates the fixed set of listing categories.
type Category string

const (
	CategoryClothing    Category = "ropa"
	CategoryElectronics Category = "electronica"
	CategoryHome        Category = "hogar"
	CategoryVehicles    Category = "vehiculos"
	CategoryTools       Category = "herramientas"
	CategoryLand        Category = "terrenos"
)

// Categories lists every valid category.
func Categories() []Category {
	return []Category{
		CategoryClothing,
		CategoryElectronics,
		CategoryHome,
		CategoryVehicles,
		CategoryTools,
		CategoryLand,
	}
}

// Valid reports whether the category is a member of the closed set.
func (c Category) Valid() bool {
	switch c {
	case CategoryClothing, CategoryElectronics, CategoryHome,
		CategoryVehicles, CategoryTools, CategoryLand:
		return true
	}
	return false
}

// Label returns the display name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryClothing:
		return "Ropa y Moda"
	case CategoryElectronics:
		return "Electrónicos"
	case CategoryHome:
		return "Hogar y Jardín"
	case CategoryVehicles:
		return "Vehículos"
	case CategoryTools:
		return "Herramientas"
	case CategoryLand:
		return "Terrenos"
	}
	return string(c)
}

// Condition enumerates the state of the offered item.
type Condition string

const (
	ConditionNew     Condition = "nuevo"
	ConditionUsed    Condition = "usado"
	ConditionLikeNew Condition = "como-nuevo"
)

// Valid reports whether the condition is a member of the closed set.
func (c Condition) Valid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionLikeNew:
		return true
	}
	return false
}

// ListingStatus enumerates listing lifecycle states.
type ListingStatus string

const (
	StatusAvailable ListingStatus = "disponible"
	StatusSold      ListingStatus = "vendido"
	StatusReserved  ListingStatus = "reservado"
)

// Label returns the display name for the status.
func (s ListingStatus) Label() string {
	switch s {
	case StatusAvailable:
		return "Disponible"
	case StatusSold:
		return "Vendido"
	case StatusReserved:
		return "Reservado"
	}
	return string(s)
}

// Listing is the aggregate for a product offered for sale.
type Listing struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Category    Category
	Condition   Condition
	Images      []string
	Location    Location
	SellerID    string
	Seller      *PublicUser
	Status      ListingStatus
	Views       int64
	CreatedAt   time.Time
}
