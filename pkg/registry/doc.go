// Package registry exports a route tree as a JSON snapshot and publishes it
// to a file or an S3 bucket.
//
// A snapshot lists every route the tree generates, with its segments and
// parameter names, so that other services (edge proxies, sitemap builders,
// link checkers) can consume the route table without linking the Go code.
//
//	snap := registry.FromRoutes("shop", routes)
//	pub := registry.Multi(
//	    registry.NewFilePublisher("dist/routes.json"),
//	    registry.NewS3Publisher(s3Client, "shop-routes", "routes.json"),
//	)
//	if err := pub.Publish(ctx, snap); err != nil {
//	    return err
//	}
package registry
