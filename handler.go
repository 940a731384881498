package dispatch

import (
	"context"
	"net/http"
)

// Void is the extracted-value type for handlers that take no request data.
type Void struct{}

// Handler is the typed handler signature. The argument has already been
// extracted from the request, and the handler always completes with a
// response — failures must be converted upstream, e.g. via IntoResponse.
type Handler[T any] func(ctx context.Context, v T) *Response

// ExtractHandler couples an extractor with a handler for the extracted
// value. It is the unit composed by Or, and it implements Service so a
// chain can be mounted directly on a Route.
type ExtractHandler[T any] struct {
	extract Extractor[T]
	handle  Handler[T]
}

// Handle pairs an extractor with a handler.
func Handle[T any](ex Extractor[T], h Handler[T]) ExtractHandler[T] {
	if ex == nil || h == nil {
		panic("dispatch: nil extractor or handler")
	}
	return ExtractHandler[T]{extract: ex, handle: h}
}

// CallWith invokes the handler with an already-extracted value. No
// extraction or fallback happens here — the decision was made upstream.
func (eh ExtractHandler[T]) CallWith(ctx context.Context, v T) *Response {
	return eh.handle(ctx, v)
}

// Extract runs the extractor against the request.
func (eh ExtractHandler[T]) Extract(r *http.Request) (T, error) {
	return eh.extract(r)
}

// Call implements Service: extract from the raw request, then invoke the
// handler. A rejection becomes a 404 with an empty body; the rejection
// itself is discarded.
func (eh ExtractHandler[T]) Call(ctx context.Context, r *http.Request) (*Response, error) {
	v, err := eh.extract(r)
	if err != nil {
		return NewResponse(http.StatusNotFound), nil
	}
	return eh.handle(ctx, v), nil
}
