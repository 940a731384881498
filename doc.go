// Package dispatch is a handler-dispatch engine for Go HTTP services.
// Handlers are typed over the value an extractor pulls from the request,
// and the dispatch layer owns response normalization — Content-Length,
// Allow headers, and HEAD body stripping are applied exactly once, no
// matter how deeply routes are nested.
//
// The composition unit is an ExtractHandler: an extractor paired with a
// handler of the extracted value. Or chains them with ordered fallback —
// the left arm is always tried first:
//
//	one := dispatch.Handle(dispatch.Path[int]("id"), handleByID)
//	two := dispatch.Handle(dispatch.Query[string]("a"), handleByQuery)
//	three := dispatch.Handle(dispatch.None, handleFallback)
//
//	chain := dispatch.Or(dispatch.Or(one, two), three)
//
// A chain (or any Service) is erased into a Route, an opaque cloneable
// handle that can be stored and invoked uniformly:
//
//	rt := dispatch.NewRoute(chain)
//	res, err := rt.Invoke(req).Await(ctx)
//
// Route implements Service itself, so routes nest: layers wrap a route in
// cross-cutting services (logging, recovery, timeouts, rate limiting) and
// the result is another route.
//
// MethodRoute dispatches on the request method, answering unmatched
// methods with 405 plus an Allow header and serving HEAD from the GET
// route with the body stripped. Router mounts method tables on
// http.ServeMux patterns:
//
//	r := dispatch.New()
//	r.Use(dispatch.Recovery())
//	r.Route("/items/{id}", dispatch.NewMethodRoute().Get(chain))
package dispatch
