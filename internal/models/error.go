package models

// ErrorKind classifies a problem found while processing an order guide file.
type ErrorKind string

// Error kinds.
const (
	ErrorWrongStringFormat      ErrorKind = "WRONG_STRING_FORMAT"
	ErrorItemNotFound           ErrorKind = "ITEM_NOT_FOUND"
	ErrorPriceChangeExceeded    ErrorKind = "PRICE_CHANGE_EXCEEDED"
	ErrorLocationVendorNotFound ErrorKind = "LOCATION_VENDOR_NOT_FOUND"
)

// OrderGuideError describes a single validation problem. Errors are data:
// they ride along with the produced items and documents and never stop
// processing of sibling rows.
type OrderGuideError struct {
	Kind           ErrorKind       `json:"kind"`
	Message        string          `json:"message"`
	ItemNo         string          `json:"itemNo,omitempty"`
	LocationVendor *LocationVendor `json:"-"`
	// Row holds the offending raw record for structural errors.
	Row []string `json:"row,omitempty"`
}

// NewError creates an error of the given kind.
func NewError(kind ErrorKind, message string) *OrderGuideError {
	return &OrderGuideError{Kind: kind, Message: message}
}

// NewEmptyPackSizeError flags a missing or empty pack-size field on an item.
func NewEmptyPackSizeError(itemNo string) *OrderGuideError {
	return &OrderGuideError{
		Kind:    ErrorWrongStringFormat,
		Message: "Pack-size field was not found or empty.",
		ItemNo:  itemNo,
	}
}
