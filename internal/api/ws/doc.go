// Package ws streams session snapshots to the desktop shell over WebSocket.
//
// Every connection receives a snapshot on connect and after each applied
// change. Clients may also send commands on the same socket.
//
// Message Types (Client → Server):
//   - intent: dispatch {"type":"intent","intent":{"type":"DESKSORT","payload":"name"}}
//   - menu_intent: dispatch from a menu item, closing the menu
//   - ping: keep-alive ping
//
// Message Types (Server → Client):
//   - system: connection greeting carrying the client id
//   - snapshot: full session state
//   - result: outcome of an intent
//   - pong: keep-alive reply
//   - error: malformed or rejected message
//
// Each connection has its own writer goroutine with a bounded queue. A
// client that falls behind is disconnected rather than slowing the others.
//
// Example Usage:
//
//	hub := ws.NewHub(sess, ws.Options{Logger: logger})
//	defer hub.Close()
//	router.GET("/stream", hub.HandleConnection)
package ws
