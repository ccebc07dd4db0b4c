// Package gtfsrt adapts a GTFS-RT service-alerts feed into the
// disruption model, as an optional secondary source merged with the
// primary disruption feed. Trip updates and vehicle positions are not
// consumed; only Alert entities are read.
package gtfsrt
