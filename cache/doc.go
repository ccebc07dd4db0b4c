/*
Package cache provides a small TTL read-through cache used to
deduplicate repeated remote lookups for stable reference data (network
names, line info, direction lists).

Each Cache is an isolated instance; there is no package-level state.
The cache is a pass-through wrapper: it never produces errors of its
own, and a failed fetch is never stored.

	c := cache.New(5 * time.Minute)
	line, err := cache.GetOrFetch(c, cache.LineKey(lineID, networkID), func() (store.Route, error) {
	    return st.GetLine(ctx, lineID, networkID)
	})

Volatile data such as traffic disruptions must not go through this
cache; it is reserved for relational-store reads.
*/
package cache
