package dispatch

// Test-only exports for internal functions.
var (
	NewResponseFuture = newResponseFuture
	ValidHeaderValue  = validHeaderValue
	SetContentLength  = setContentLength
)

// Normalized reports whether the response has passed through a
// RouteFuture already. For external tests.
func (res *Response) Normalized() bool { return res.normalized }
