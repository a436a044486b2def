package common

// Setting keys stored in the settings collection.
const (
	SettingCurrentUser = "currentUser"
	SettingTheme       = "theme"
)

// DefaultBackupFileName is the file name used by export when no path is given.
const DefaultBackupFileName = "course_manager_backup.json"
