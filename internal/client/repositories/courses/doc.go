// Package courses provides the client-side persistence layer for courses and
// their nested topics.
//
// Each row holds one models.Course (topics included) encoded as JSON, keyed by
// course id, with the owner's email copied into its own column. Like the user
// registry, the collection is replaced wholesale inside a transaction.
package courses
