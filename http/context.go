package http

// ContextKey is the type of Gorilla context keys.
type ContextKey int

const (
	// ContextRequestIDKey is the key to use to store/retrieve the request ID.
	ContextRequestIDKey ContextKey = iota

	// ContextCustomerIDKey is the key to use to store/retrieve the signed-in
	// customer's ID.
	ContextCustomerIDKey

	// ContextOrderCountKey and ContextOrderValueKey carry what a checkout
	// request ordered, for the request stats.
	ContextOrderCountKey
	ContextOrderValueKey
)
