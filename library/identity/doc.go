// Package identity implements the Identity Service: it owns the registered
// users and the current session.
//
// Passwords are stored as bcrypt hashes and never leave the service; every
// user returned by a query has the hash stripped. This is still a
// single-device demo system - there is no token exchange and no transport
// security, only a persisted session naming the logged-in user.
package identity
