// Package telemetry exports builder and preview-server activity to
// Prometheus and OpenTelemetry.
//
// Metrics implements builder.Observer, so one value can be passed to every
// build pass with builder.WithObserver:
//
//	m := telemetry.NewMetrics(telemetry.WithRegistry(reg))
//	err := builder.Run(sink, build, builder.WithObserver(m))
//
// Metrics collected (default namespace "seqtree"):
//   - seqtree_sequences_total: sequence numbers issued, by operation
//   - seqtree_blocks_opened_total: blocks opened, by kind
//   - seqtree_builds_total: finished build passes, by result
//   - seqtree_build_errors_total: failed build passes, by error code
//   - seqtree_build_max_depth: deepest nesting per successful pass
//   - seqtree_build_lines: distinct lines per successful pass
//   - seqtree_http_requests_total: preview requests, by route and status
//   - seqtree_http_request_duration_seconds: preview request latency
//
// Tracing wraps HTTP handlers in server spans; builder.RunContext adds one
// span per build pass underneath.
package telemetry
