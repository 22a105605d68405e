// Package session owns "who is logged in".
//
// A Store keeps the current Session in memory, mirrors it to a Persistence
// and notifies subscribers on change. Only Store methods write the
// persisted state, and the token and identity are always cleared together.
//
// A Bootstrapper reconciles the persisted state with the server once at
// startup:
//
//	no token               -> Unauthenticated (no request)
//	token + identity       -> WarmRestored, background profile refresh
//	token, no identity     -> blocking profile fetch
//
// Any refresh or fetch failure clears the session.
package session
