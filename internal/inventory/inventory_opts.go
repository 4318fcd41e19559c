package inventory

type Option func(*Inventory)

// WithSink attaches a notification sink.
func WithSink(s Sink) Option {
	return func(inv *Inventory) {
		inv.sink = s
	}
}

// WithOverflow sets the handler for items Add cannot place. Without one,
// such items are left with the caller.
func WithOverflow(h OverflowHandler) Option {
	return func(inv *Inventory) {
		inv.overflow = h
	}
}

// WithCloner sets how items are duplicated when moved to another inventory.
func WithCloner(c Cloner) Option {
	return func(inv *Inventory) {
		inv.cloner = c
	}
}
