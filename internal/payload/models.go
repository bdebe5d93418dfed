package payload

// Document is the wire shape of one processed order guide.
type Document struct {
	ID                string      `json:"id"`
	Processor         string      `json:"processor"`
	Date              *string     `json:"date,omitempty"`
	LocationVendorIDs []uint      `json:"locationVendorIds"`
	Items             []Item      `json:"items"`
	Errors            []ItemError `json:"errors,omitempty"`
}

// Item is the wire shape of one order guide line.
type Item struct {
	ItemNo       string      `json:"itemNo"`
	PackType     string      `json:"packType,omitempty"`
	PackSize     string      `json:"packSize,omitempty"`
	Description  string      `json:"description,omitempty"`
	Brand        string      `json:"brand,omitempty"`
	Barcode      string      `json:"barcode,omitempty"`
	Price        *string     `json:"price,omitempty"`
	PriceType    string      `json:"priceType,omitempty"`
	PriceDate    *string     `json:"priceDate,omitempty"`
	Discontinued bool        `json:"discontinued"`
	MatchIDs     []uint      `json:"matchedCatalogItemIds,omitempty"`
	Errors       []ItemError `json:"errors,omitempty"`
}

// ItemError is the wire shape of one recorded validation error.
type ItemError struct {
	Kind           string `json:"kind"`
	Message        string `json:"message"`
	ItemNo         string `json:"itemNo,omitempty"`
	LocationVendor *uint  `json:"locationVendorId,omitempty"`
}
