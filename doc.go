/*
Package transitapi serves the data behind the Oise regional bus-transit
information client: network, line and direction reference data read
from the remote relational store through a short-TTL cache, plus live
traffic disruptions resolved from the public disruption feed.

Reference-data endpoints fail hard (the screen shows the error);
disruption endpoints fail soft to empty lists (the screen shows no
banner). See the disruption and cache packages for the two policies.
*/
package transitapi
