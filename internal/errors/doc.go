// Package errors provides structured, actionable errors for nestroute.
//
// Route patterns, manifests, configuration files and registry publishing
// all report problems through *RouteError, which carries:
//   - A stable code (e.g., "E200") with a registered message and detail
//   - The location of the problem (manifest file line, or pattern column)
//   - A suggestion describing how to fix it
//
// # Error Categories
//
//   - pattern: Route pattern syntax (":id", "*rest", typed params)
//   - manifest: Declarative route tree files (YAML or JSON)
//   - config: nestroute.json problems
//   - publish: Route registry publishing (file, S3)
//   - cli: Command-line usage
//
// # Usage
//
//	err := errors.New("E202").
//	    WithPattern("/files/*path/edit", 7).
//	    WithSuggestion("Move the wildcard to the end of the pattern")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E202: Wildcard segment must be last
//	//
//	//   column 8
//	//
//	//   → /files/*path/edit
//	//            ^
//	//
//	//   Hint: Move the wildcard to the end of the pattern
package errors
