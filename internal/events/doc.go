// Package events carries task change events from the service layer to
// whatever delivers them to clients.
//
// Producers depend only on EventEmitter; consumers implement EventHandler and
// are registered with an emitter at startup. InMemoryEventEmitter dispatches
// synchronously to every registered handler.
package events
