// Package monitor keeps a periodically refreshed snapshot of active
// disruptions per network. The refresh loop is bound to its caller's
// context: cancelling the context stops the ticker and ends the loop,
// so no periodic fetch outlives the view that started it.
package monitor
