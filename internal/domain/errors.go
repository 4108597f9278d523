package domain

import "errors"

var (
	// ErrStoreUnavailable wraps every inventory store fault that is not a
	// stock shortage: unreachable backend, failed transaction, bad data.
	ErrStoreUnavailable = errors.New("inventory store unavailable")

	ErrInvalidProduct   = errors.New("product: invalid")
	ErrInvalidQuantity  = errors.New("trolley: quantity must be positive")
	ErrQuantityOverflow = errors.New("trolley: quantity too large")
	ErrEmptyOrder       = errors.New("order: no lines")
	ErrUnknownIntent    = errors.New("session: unknown intent")
)

// Notice is an informational outcome shown to the customer. It is never a fault.
type Notice string

const (
	NoticeNone              Notice = ""
	NoticeEmptyKeyword      Notice = "Please type product ID or name to search"
	NoticeNoProductSelected Notice = "Please search for an available product before adding it to the trolley"
	NoticeEmptyTrolley      Notice = "Your trolley is empty"
)
