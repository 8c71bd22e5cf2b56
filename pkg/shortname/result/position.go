package result

import "fmt"

// Position is one of the five fixed slots of the naming convention.
type Position int

const (
	ProductType Position = iota + 1
	ProductName
	PrimaryVariant
	SecondaryVariant
	AdditionalDescription
)

// Positions lists every slot in output order.
var Positions = [...]Position{
	ProductType,
	ProductName,
	PrimaryVariant,
	SecondaryVariant,
	AdditionalDescription,
}

// NumPositions is the number of slots every result carries.
const NumPositions = len(Positions)

var positionNames = map[Position]string{
	ProductType:           "Product Type",
	ProductName:           "Product Name",
	PrimaryVariant:        "Primary Variant",
	SecondaryVariant:      "Secondary Variant",
	AdditionalDescription: "Additional Description",
}

// Name returns the human readable slot name.
func (p Position) Name() string {
	if name, ok := positionNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Mandatory reports whether the slot must be filled. Only the product type is.
func (p Position) Mandatory() bool {
	return p == ProductType
}

// Index returns the zero-based index of the slot in a component slice.
func (p Position) Index() int {
	return int(p) - 1
}

// Valid reports whether p is one of the five slots.
func (p Position) Valid() bool {
	return p >= ProductType && p <= AdditionalDescription
}

func (p Position) String() string {
	return fmt.Sprintf("Position %d (%s)", int(p), p.Name())
}
