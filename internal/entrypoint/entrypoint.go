package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"novelgrab/internal/app"
	"novelgrab/internal/cli"
	"novelgrab/internal/tui"
)

func Execute(args []string) (int, error) {
	if len(args) > 1 {
		switch args[1] {
		case "download":
			opts, err := cli.ParseDownload(args[2:])
			if err != nil {
				return exitCode(err)
			}
			return 0, runDownload(opts)
		case "pdf":
			opts, err := cli.ParsePDF(args[2:])
			if err != nil {
				return exitCode(err)
			}
			return 0, app.RunPDF(opts)
		case "init":
			return 0, cli.RunSettingsWizard()
		case "help", "-h", "--help":
			printUsage()
			return 0, nil
		default:
			printUsage()
			return 2, fmt.Errorf("unknown command %q", args[1])
		}
	}

	res, err := tui.Run()
	if err != nil {
		return 1, err
	}
	if !res.RunNow {
		return 0, nil
	}
	if res.PDF != nil {
		return 0, app.RunPDF(*res.PDF)
	}
	if res.Download != nil {
		return 0, runDownload(*res.Download)
	}
	return 0, nil
}

// runDownload runs until done or interrupted; Ctrl-C cancels cleanly
// between navigations.
func runDownload(opts app.Options) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := app.Run(ctx, opts)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "interrupted, progress so far is saved")
		return nil
	}
	return err
}

func exitCode(err error) (int, error) {
	var exitErr cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code, exitErr.Err
	}
	return 1, err
}

func printUsage() {
	fmt.Print(`Usage:
  novelgrab                 interactive mode
  novelgrab download        download chapters (see -h for flags)
  novelgrab pdf             build a PDF from downloaded chapters
  novelgrab init            write a settings file interactively
`)
}
