// Package core provides the record-management logic behind the profile form.
//
// This package has no HTTP or HTML dependencies. The web layer drives it one
// user event at a time; tests drive it directly.
//
// # Architecture
//
// The package is organized around a handful of collaborating types:
//
//   - [RecordStore]: the ordered, in-memory sequence of committed records.
//   - [Form]: the draft under construction, its error map, and the editing
//     marker. Submitting a valid draft appends to or overwrites the store.
//   - [Pager]: fixed-size pagination over the store (see [PageSize]).
//   - [ImageRegistry]: display handles for profile pictures, acquired when a
//     row is rendered and released when the record is replaced or removed.
//   - [Session]: one browser page worth of state. Sessions are created and
//     expired by the [SessionManager].
//
// # Record Identity
//
// Records carry a generated ID. Positions are still meaningful for display
// and pagination, and the index-based store operations remain available, but
// edits and deletes issued from the UI resolve by ID so that a delete cannot
// shift the target of a pending edit.
//
// # Validation
//
// [ValidateField] and [ValidateFile] return an empty string on success or a
// human-readable message. [Form.Submit] recomputes the whole [ErrorMap] from
// the current draft before deciding validity.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]. Each
// category has a code for support reference:
//
//   - VAL001-VAL004: field and file validation
//   - FORM001-FORM002: malformed form events
//   - IDX001, REC001: stale record references
//   - FILE001-FILE004: uploaded image problems
//   - SES001, NAV001: missing session or navigation state
//   - CTRY001: country list failures
//   - RATE001, REQ001-REQ002: request throttling and cancellation
package core
