// Package fault defines the error taxonomy of the query engine and the single
// side channel through which recoverable failures are surfaced.
//
// Every failure the engine can hit while mutating a graph or running a query
// is local and recoverable. The operation that triggered it returns a
// sentinel (a zero ID, an unchanged program, a pass-through token) together
// with an error value, and the same error is handed to a Reporter so that
// embedding code can decide whether it is fatal or merely logged.
//
// Sentinels are matched with errors.Is; the typed errors carry detail and are
// matched with errors.As:
//
//	if err := g.AddEdge(spec); err != nil {
//	    var dangling *fault.DanglingEndpointError
//	    if errors.As(err, &dangling) {
//	        // dangling.Side is "in" or "out"
//	    }
//	}
package fault
