// Package notify delivers task change notifications to clients.
//
// EventNotifier turns service notifications into events.TaskEvent values
// and hands them to an events.EventEmitter. Hub is an events.EventHandler
// that broadcasts each event as a JSON text frame to every connected
// websocket client. Delivery is best effort: there is no replay, no
// acknowledgment and no per-client filtering, and a client that cannot keep
// up is disconnected.
package notify
