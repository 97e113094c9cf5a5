// Package session owns the authenticated-user state of the client: the
// bearer token, the current user and whether a restore is still in flight.
//
// A Store is created from the persisted token, restored once at startup and
// then driven by Login, Register, Logout and Expire. Every transition is
// published to subscribers as a State snapshot, and transitions that change
// the current screen are reported to a Navigator.
package session
