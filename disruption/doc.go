/*
Package disruption resolves traffic disruptions for networks and lines.

Given an internal network identifier, the Resolver looks up the
disruption feed's numeric network code (a single-row agency read),
fetches the full public feed, and filters it down to the requested
network or line. Line matching compares the line's display number
against the feed's number and code fields, exactly and case-sensitively.
A disruption is active while the current time lies inside its inclusive
effective window.

Disruption data is advisory. Resolver methods return errors so tests
and callers can distinguish "no disruptions" from "lookup failed", but
the HTTP handlers and the background monitor convert failures to empty
results and a logged warning; a broken feed must never take a line or
timetable view down with it.

Disruption reads are never routed through the TTL cache.
*/
package disruption
