package dispatch

import (
	"context"
	"net/http"
)

// Or composes two extractor-typed handlers with ordered fallback: the
// left extractor is always attempted first, and the right side is
// consulted only when it fails. The winning side's handler runs with the
// value it extracted; the losing side is never invoked.
//
// Chains nest left-associatively:
//
//	dispatch.Or(dispatch.Or(a, b), c)
//
// tries a, then b, then c, in that literal order. When every arm rejects,
// Call responds 404 with an empty body and both rejections are discarded.
//
// The combined unit supports both composition modes: CallWith dispatches
// an already-decided Either to the matching side, and Call runs the
// extraction race against the raw request.
func Or[L, R any](lhs ExtractHandler[L], rhs ExtractHandler[R]) ExtractHandler[Either[L, R]] {
	return ExtractHandler[Either[L, R]]{
		extract: func(r *http.Request) (Either[L, R], error) {
			if lv, err := lhs.extract(r); err == nil {
				return Left[L, R](lv), nil
			}
			rv, err := rhs.extract(r)
			if err != nil {
				return Either[L, R]{}, Reject(http.StatusNotFound, "no extractor matched")
			}
			return Right[L, R](rv), nil
		},
		handle: func(ctx context.Context, e Either[L, R]) *Response {
			return MatchEither(e,
				func(lv L) *Response { return lhs.handle(ctx, lv) },
				func(rv R) *Response { return rhs.handle(ctx, rv) },
			)
		},
	}
}
