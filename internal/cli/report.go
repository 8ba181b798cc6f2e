package cli

import "context"

// Export uploads a CSV statement of the selected classroom's ledger and
// prints a time-limited download link.
func (a *App) Export(ctx context.Context) error {
	actorID, err := a.actorID(ctx)
	if err != nil {
		printlnFn("Please log in first.")
		return err
	}
	if !a.hasClassroom() {
		printlnFn("Select a classroom first: use <classroom-id>")
		return nil
	}

	url, err := a.reports.ExportStatement(ctx, actorID, a.classroomID)
	if err != nil {
		a.logger.Error(ctx, "statement export failed", "error", err)
		printlnFn("Error:", err)
		return err
	}

	printlnFn("Statement uploaded. Download link (valid 15 minutes):")
	printlnFn(url)
	return nil
}
