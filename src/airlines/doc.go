// Package airlines defines the concept of an airline participant and
// implements functions to manage collections of airlines.
//
// An airline is a participant in the multi-party registration consensus. It
// is identified by an opaque address, which in practice is the hexadecimal
// representation of a secp256k1 public key, and optionally carries a moniker
// which is a non-unique user-friendly name.
//
// An airline goes through two independent transitions after being created in
// the pending state. It becomes admitted when the existing membership accepts
// it, either through the bootstrap fast-path or through a quorum vote. It
// becomes authorized when it separately proves payment of its stake. Only
// admitted airlines take part in votes; only authorized airlines are expected
// to operate flights covered by the system. Airlines are never removed.
package airlines
