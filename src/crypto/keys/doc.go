// Package keys implements the public key cryptography behind participant
// identities.
//
// Every participant, be it an airline or an oracle, is identified by the
// hexadecimal representation of a secp256k1 public key. We chose the
// secp256k1 curve because it is also used by Bitcoin and Ethereum, which
// means existing Ethereum account keys can be reused as participant
// identities.
package keys
