// Package core implements the two consensus mechanisms at the heart of the
// flight insurance system.
//
// The first is an oracle consensus protocol. A caller opens a status request
// for a flight; the request is tagged with a pseudo-random index; oracles
// whose assigned indexes match self-select and submit their independent view
// of the flight's status; the request is finalized when three independent
// oracles agree on the same value.
//
// The second is a multi-party registration consensus. New airlines are
// admitted into the participant set by the existing members: unconditionally
// while the set is small (the bootstrap fast-path), and by majority vote once
// it has reached five admitted members.
//
// Both mechanisms read and write their state through the Store interface,
// emit progress events through a notify.Notifier, and report failures with
// typed common.CoreErr values that carry the offending identifier.
package core
