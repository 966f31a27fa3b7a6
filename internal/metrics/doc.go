// Package metrics records how repository runs went.
//
// Every component takes a Recorder; NoopRecorder is the default so callers
// never check for nil. PrometheusRecorder keeps the values in a registry
// that the build command dumps with WriteTextfile when --metrics-file is
// given, for pickup by the node exporter textfile collector. There is no
// HTTP endpoint: gitin runs once and exits.
package metrics
