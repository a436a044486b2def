// Package transfer exports the local users and courses to a JSON backup file
// and restores them from one.
//
// A backup has the form
//
//	{
//	  "users": [ ...StoredUser ],
//	  "global_courses": [ ...Course ]
//	}
//
// Import replaces both collections and then reloads the in-memory state
// managers, so the running application sees the restored data right away.
package transfer
