// Package ui implements the interactive analysis view using
// bubbletea's Elm architecture.
//
// [AnalysisModel] renders a live progress bar while a video form
// analysis runs, then the scored result. Progress updates flow through
// a channel from the AnalysisEngine, providing non-blocking status
// reporting during the upload and scoring phases.
package ui
