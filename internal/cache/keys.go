package cache

import (
	"fmt"
	"time"
)

// Cache key scheme. List keys share an entity prefix so ApplyLists and
// InvalidatePrefix can reach every list view of that entity at once.
const (
	KeyProfiles  = "profiles:all"
	KeyProducts  = "products:all"
	KeyLaunches  = "launches:all"
	KeyProtocols = "protocols:all"
	KeyMediaKit  = "mediakit:all"
	KeyPosts     = "posts:all"

	PrefixProfiles = "profiles:"
	PrefixProducts = "products:"
	PrefixLaunches = "launches:"
	PrefixPosts    = "posts:"
	PrefixPhases   = "phases:"

	// PrefixPostEntry covers single post entries, which live outside the
	// list prefix so ApplyLists never touches them.
	PrefixPostEntry = "post:one:"

	prefixPostsByLaunch = "posts:launch:"
	prefixPostsByRange  = "posts:range:"
)

// PostsByLaunch keys the post list scoped to one launch
func PostsByLaunch(launchID string) string {
	return prefixPostsByLaunch + launchID
}

// PostsByRange keys a date-range post list; bounds are inclusive
func PostsByRange(from, to time.Time) string {
	return fmt.Sprintf("%s%d:%d", prefixPostsByRange, from.Unix(), to.Unix())
}

// Post keys a single post entry
func Post(id string) string {
	return PrefixPostEntry + id
}

// Launch keys a single launch entry
func Launch(id string) string {
	return "launch:one:" + id
}

// Phases keys the phase list of one launch
func Phases(launchID string) string {
	return PrefixPhases + launchID
}
