package room

// TypeID identifies a bookable room type.
type TypeID string

const (
	TypeJunior   TypeID = "junior"
	TypeDouble   TypeID = "double"
	TypeDeluxe   TypeID = "deluxe"
	TypeFamily   TypeID = "family"
	TypeSuperior TypeID = "superior"
)

// CatalogEntry is static reference data, not user-mutable.
// Prices are NGN per night.
type CatalogEntry struct {
	id           TypeID
	name         string
	nightlyPrice int64
	amenities    []string
}

func (e CatalogEntry) ID() TypeID          { return e.id }
func (e CatalogEntry) Name() string        { return e.name }
func (e CatalogEntry) NightlyPrice() int64 { return e.nightlyPrice }

func (e CatalogEntry) Amenities() []string {
	out := make([]string, len(e.amenities))
	copy(out, e.amenities)
	return out
}

type Catalog struct {
	entries []CatalogEntry
	byID    map[TypeID]CatalogEntry
}

func NewCatalog(entries []CatalogEntry) Catalog {
	byID := make(map[TypeID]CatalogEntry, len(entries))
	for _, e := range entries {
		byID[e.id] = e
	}
	return Catalog{entries: entries, byID: byID}
}

// Entries returns catalog entries in stable display order.
func (c Catalog) Entries() []CatalogEntry {
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c Catalog) Lookup(id TypeID) (CatalogEntry, bool) {
	e, ok := c.byID[id]
	return e, ok
}

var defaultAmenities = []string{"Breakfast", "WiFi", "Gym", "Satellite TV", "Restaurant on-site"}

// DefaultCatalog is the hotel's room inventory.
func DefaultCatalog() Catalog {
	return NewCatalog([]CatalogEntry{
		{id: TypeJunior, name: "Double Deluxe", nightlyPrice: 145000, amenities: defaultAmenities},
		{id: TypeDouble, name: "Royal Standard", nightlyPrice: 150000, amenities: defaultAmenities},
		{id: TypeDeluxe, name: "Royal Executive", nightlyPrice: 165000, amenities: defaultAmenities},
		{id: TypeFamily, name: "Executive Suite", nightlyPrice: 185000, amenities: defaultAmenities},
		{id: TypeSuperior, name: "Luxury King", nightlyPrice: 200000, amenities: defaultAmenities},
	})
}
