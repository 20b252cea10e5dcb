// Package preview serves build scripts as rendered HTML for development.
//
// Routes:
//
//	GET /                       index of scripts
//	GET /scripts/{name}         rendered page
//	GET /scripts/{name}/frames  frames as JSON
//	GET /metrics                Prometheus metrics
//	GET /_seqtree/reload        live-reload websocket
//
// Scripts are read from disk on every request. With watching enabled, a
// poll-based Watcher notices edits and tells connected browsers to reload.
package preview
