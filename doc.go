// Package graphene is an embeddable, in-memory graph query engine.
//
// A DB holds a directed property graph, a registry of pipe types and a chain
// of program rewrites. Queries are built fluently and evaluated lazily by a
// pull-based machine that explores the graph depth-first:
//
//	db := graphene.New()
//	_, _ = db.AddVertex(ctx, graphene.VertexSpec{ID: "Thor"})
//	_, _ = db.AddVertex(ctx, graphene.VertexSpec{ID: "Odin"})
//	_ = db.AddEdge(ctx, graphene.EdgeSpec{Out: "Thor", In: "Odin", Label: "parent"})
//
//	parents := db.V("Thor").Out("parent").Run(ctx)
//
// Aliases name reusable step sequences:
//
//	_ = db.AddAlias("parents", graphene.Program{graphene.S("out", "parent")})
//	grandparents := db.V("Thor").Step("parents").Step("parents").Run(ctx)
//
// Recoverable failures (duplicate ids, dangling edges, unknown pipe types,
// invalid filter arguments) are returned where a caller can see them and are
// also sent to the DB's fault.Reporter, which logs them by default.
//
// A DB is not safe for concurrent mutation. Concurrent queries against a
// graph that is no longer being mutated are fine.
package graphene
