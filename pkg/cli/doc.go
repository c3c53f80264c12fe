/*
Package cli provides command-line utilities for the synack command.

Output formatting renders a decoded report tree in one of four formats:

	formatter := cli.NewFormatter(cli.FormatJSON, true)
	if err := formatter.FormatTo(os.Stdout, report.Render()); err != nil {
		return err
	}

Long batch runs report progress on a single status line:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(total)
	for i, report := range reports {
		// decode
		progress.Update(int64(i + 1))
	}
	progress.Finish()

SetupSignalHandler returns a context canceled on SIGINT/SIGTERM for the
serve and watch loops.
*/
package cli
