// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package pipe wraps the OS unidirectional byte pipe as a write-only
// Sender and a read-only Receiver that register with a readiness
// registry as event sources.
//
// Both endpoints are created non-blocking and close-on-exec in one
// logically atomic step. Every I/O call completes immediately: it
// returns a count, a would-block error recognized by
// api.IsWouldBlock, or a platform error. Bytes are delivered raw and
// unstructured, exactly as the kernel pipe buffer delivers them, so
// short transfers are ordinary results, not errors.
//
// The two endpoints of one pipe reference independent descriptors and
// may be used from different goroutines without extra locking; the
// kernel guarantees consistency of the shared pipe buffer.
package pipe
