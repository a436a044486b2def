package cli

import "context"

func (a *App) export(ctx context.Context, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	written, err := a.exporter.ExportFile(ctx, path)
	if err != nil {
		return err
	}
	a.printf("Backup written to %s\n", written)
	return nil
}

// importBackup replaces every user and course with the content of a backup
// file and reloads the application state.
func (a *App) importBackup(ctx context.Context, args []string) error {
	ok, err := a.confirmed("Importing replaces ALL current users and courses. Continue?")
	if err != nil || !ok {
		return err
	}

	wasLoggedIn := a.isLoggedIn()
	snap, err := a.importer.ImportFile(ctx, args[0])
	if err != nil {
		return err
	}
	a.lastListed = nil
	a.printf("Imported %d users and %d courses.\n", len(snap.Users), len(snap.Courses))
	if wasLoggedIn && !a.isLoggedIn() {
		a.println("Your account is not part of the backup; you have been logged out.")
	}
	return nil
}
