/*
Package store is the client for the remote relational backend that owns
all durable data: networks, routes, the agency mapping to the disruption
feed's network codes, user favorites and preferences, the referral
leaderboard, and forum topics.

The store is reached over a REST surface: equality-filtered row
selection by table name (GET /rest/v1/<table>?col=eq.value) and named
remote procedures (POST /rest/v1/rpc/<name>). Select, SelectOne, Insert,
Upsert, Delete and RPC form the generic layer; the typed accessors in
queries.go are what the rest of the service uses.

Errors from this package are hard failures and must be surfaced by
callers; contrast with the disruption feed, which degrades to empty
results.
*/
package store
