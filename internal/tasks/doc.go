// Package tasks implements long-running coaching operations.
//
// The core type is AnalysisEngine, which drives a video form analysis
// from upload through the backend's progress stream to the final
// scored result. Operations emit progress updates via channels for
// non-blocking status reporting to CLI/UI layers.
package tasks
