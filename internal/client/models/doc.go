// Package models defines the records managed by the course manager: users,
// courses and their topics. JSON field names match the backup file format.
package models
