// Package services holds the in-memory state managers of the course manager:
// the user registry with its session (AuthService), the course collection
// driven by a pure reducer (CourseService), and UI preferences
// (PreferencesService).
//
// Managers mutate memory synchronously and hand a snapshot of the whole
// collection to a persistence queue after every change. They never wait for
// the write; failures are reported by the queue.
package services
