package errs

// Error kinds shared by the order engine and its callers.
var (
	// Checkout input is incomplete or the cart is empty
	ErrValidation = New("validation error")

	// Order Store unreachable or a read/write was rejected
	ErrPersistence = New("persistence error")

	// Status update targets an order the store does not know
	ErrNotFound = New("order not found")

	// Status label outside the recognized set
	ErrInvalidStatus = New("invalid order status")

	// Strict workflow rejected a status jump
	ErrIllegalTransition = New("illegal status transition")
)
