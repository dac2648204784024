package cache

// Entity names used by the invalidation table
const (
	EntityProfile  = "profile"
	EntityProduct  = "product"
	EntityPost     = "post"
	EntityLaunch   = "launch"
	EntityPhase    = "phase"
	EntityProtocol = "protocol"
	EntityMediaKit = "mediakit"
)

// dependents maps an entity to the key prefixes that must be marked stale
// when a row of that entity is mutated. Relations between entities live in
// this one table; call sites must not invalidate dependent keys ad hoc.
var dependents = map[string][]string{
	// Posts appear in launch-scoped and range-scoped list views.
	EntityPost: {prefixPostsByLaunch, prefixPostsByRange},
	// Deleting a launch detaches an unknown set of posts, so every post
	// view and single entry is suspect.
	EntityLaunch: {PrefixPosts, PrefixPostEntry},
	// Phases only appear under their launch.
	EntityPhase: {PrefixPhases},
	// Post filter views resolve platforms through profiles.
	EntityProfile: {PrefixPosts},
}

// Mutated marks every dependent list of the entity stale. Direct list
// updates (insert/replace/remove) are the caller's job; this covers the
// views whose membership cannot be decided from the mutated row alone.
func (s *Store) Mutated(entity string) {
	for _, prefix := range dependents[entity] {
		s.InvalidatePrefix(prefix)
	}
}
