// Package router serves lookups against a nested route tree.
//
// A Router wraps a routing.Routes value and adds everything a caller needs
// around a raw request path: normalization, query splitting, parameter
// decoding, reverse routing, structured logging, Prometheus metrics and an
// OpenTelemetry span per lookup.
//
//	r := router.New(routes,
//	    router.WithLogger(logger),
//	    router.WithNamespace("myapp"),
//	)
//
//	res, err := r.Match(ctx, "/users/42/posts?page=2")
//	if errors.Is(err, router.ErrNotFound) {
//	    // render r.NotFound()
//	}
//
//	var p struct {
//	    ID int `param:"id"`
//	}
//	if err := res.Decode(&p); err != nil {
//	    return err
//	}
//
// Routers are immutable after New and safe for concurrent use.
package router
