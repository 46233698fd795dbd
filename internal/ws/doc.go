// Package ws implements the WebSocket hub for dataset-change notifications.
//
// Hub manages a set of connected clients. Its Run loop polls the registry
// fingerprint on a short interval and broadcasts a message whenever the
// fingerprint changes, i.e. after every effective reload.
//
// New(registry, interval) creates a Hub.
// Hub.Run(ctx) starts the poll loop — blocks until ctx is cancelled, then
// closes all active connections.
// Hub.ServeHTTP upgrades an HTTP connection to WebSocket and sends the
// current dataset listing immediately on connect.
//
// Message format sent to clients:
//
//	{
//	  "event": "datasets",
//	  "data":  {"fingerprint": "...", "datasets": [{"name","records"}], "generated_at": "..."}
//	}
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level. The endpoint is mounted at /ws/stream by the server.
package ws
