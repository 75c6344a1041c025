// Package services implements the HTTP clients this program depends on.
//
// # Backend API
//
// [Backend] wraps the coaching backend's REST surface. Every response
// is expected to carry a JSON body, even on error; error shapes are
// normalized so callers only deal with three cases:
//   - [shared.RemoteError] : backend answered with a non-2xx status and
//     a structured {error} body
//   - [shared.UnreachableError] : the backend could not be reached at
//     the transport level (DNS, refused, timeout)
//   - [shared.StreamError] : a mid-stream application error from the
//     analysis endpoint
//
// # Analysis stream
//
// [Backend.AnalyzeForm] uploads a video as multipart form data and
// returns a [ProgressStream] over the newline-delimited JSON progress
// records. Lines split across read chunks are reassembled before
// parsing, and malformed individual lines are skipped with a warning.
//
// # Cloud store
//
// [CloudStore] adapts the Drive and Sheets APIs to the handful of
// operations the session layer needs: search by exact name, create
// with named sub-sheets, batch range read/write, clear, and row
// append. Every call waits on a shared quota limiter. Credential
// acquisition is out of scope here; the adapter runs on whatever
// authorized client it is given.
package services
