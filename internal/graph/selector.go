package graph

// SelectorKind tags the variant held by a Selector.
type SelectorKind int

const (
	// SelectAll selects every vertex in insertion order.
	SelectAll SelectorKind = iota
	// SelectIDs selects the listed ids, in list order, dropping misses.
	SelectIDs
	// SelectMatch selects vertices whose properties equal every entry of Match.
	SelectMatch
)

// Selector is the argument of FindVertices.
type Selector struct {
	Kind  SelectorKind
	IDs   []ID
	Match Props
}

// All selects every vertex.
func All() Selector {
	return Selector{Kind: SelectAll}
}

// ByIDs selects vertices by id.
func ByIDs(ids ...ID) Selector {
	return Selector{Kind: SelectIDs, IDs: ids}
}

// Matching selects vertices by property equality.
func Matching(p Props) Selector {
	return Selector{Kind: SelectMatch, Match: p}
}
