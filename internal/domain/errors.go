package domain

import "errors"

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrProductNotFound = errors.New("product not found")
	ErrItemNotFound    = errors.New("line item not found")

	ErrRoomAlreadyRunning = errors.New("room is already running")
	ErrRoomNotRunning     = errors.New("room is not running")
	ErrNothingToEnd       = errors.New("room has no elapsed time or items to end")

	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidPrice    = errors.New("price must not be negative")
	ErrInvalidName     = errors.New("name must not be empty")
)
