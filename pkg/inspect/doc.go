// Package inspect serves a live view of a Lumen document and a set of
// watched element references over HTTP.
//
// Endpoints:
//
//	GET /tree               document tree as JSON
//	GET /query?selector=…   one-off selector lookup
//	GET /refs               current resolution of every watched reference
//	GET /ws                 websocket stream of watched-reference changes
//	GET /metrics            prometheus metrics
//
// Watch subscribes a tracked effect to a reference, so every change of a
// live reference (selector signal update, NodeRef rebind, source mutation)
// is pushed to connected websocket clients as it happens. Each HTTP request
// runs inside an OpenTelemetry span using the global tracer provider.
package inspect
