package packing

import (
	"errors"
	"fmt"
)

// ErrInvalidLineItem is the unwrap target for all line-item rejections:
// non-positive quantities and produce types with no density policy entry.
var ErrInvalidLineItem = errors.New("invalid line item")

// InvalidLineItemError reports which line item was rejected and why.
// The whole request is rejected; no pieces are produced for any line item.
type InvalidLineItemError struct {
	ProduceType string
	Cause       error
}

// NewInvalidLineItemError creates an InvalidLineItemError for the given produce type.
func NewInvalidLineItemError(produceType string, cause error) *InvalidLineItemError {
	return &InvalidLineItemError{ProduceType: produceType, Cause: cause}
}

func (e *InvalidLineItemError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrInvalidLineItem, e.ProduceType, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidLineItem, e.ProduceType)
}

func (e *InvalidLineItemError) Unwrap() error {
	return ErrInvalidLineItem
}
