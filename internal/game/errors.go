package game

import "errors"

var (
	ErrUnknownInventory = errors.New("unknown inventory")
	ErrUnknownOp        = errors.New("unknown operation")
	ErrMissingIndex     = errors.New("index is required")
	ErrOperationFailed  = errors.New("operation failed")
)
