package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/nickromney/certfacts/internal/export"
	"github.com/nickromney/certfacts/internal/inventory"
	"github.com/spf13/cobra"
)

type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// TUIFunc runs the interactive report browser.
type TUIFunc func(ctx context.Context, b *inventory.Builder, dir string) error

// NewRootCmd creates the cobra root command with all subcommands.
// runTUI is called when no subcommand is given on an interactive terminal.
func NewRootCmd(runTUI TUIFunc, buildInfo BuildInfo) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "certfacts",
		Short: "Read-only health report for a directory of certificates and keys",
		Long: "certfacts inventories a directory holding <name>.json, <name>.pem and <name>.key per certificate, " +
			"and reports whether each certificate matches its key and how many days remain until it expires. " +
			"It never modifies the files it inspects.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			if runTUI != nil && interactive() {
				return runTUI(cmd.Context(), rt.builder, rt.dir)
			}
			report, err := rt.builder.Build(cmd.Context(), rt.dir)
			if err != nil {
				return err
			}
			return emit(cmd, report, export.FormatJSON, "")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.register(root)

	root.AddCommand(
		newReportCmd(opts),
		newInspectCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(buildInfo),
	)
	if runTUI != nil {
		root.AddCommand(newTUICmd(opts, runTUI))
	}

	return root
}

func newVersionCmd(buildInfo BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "certfacts %s\n", buildInfo.Version)
			fmt.Fprintf(out, "build_time: %s\n", buildInfo.BuildTime)
			fmt.Fprintf(out, "git_commit: %s\n", buildInfo.GitCommit)
		},
	}
}

func newReportCmd(opts *globalOptions) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inspect every certificate in the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return usageError(err)
			}
			rt, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			report, err := rt.builder.Build(cmd.Context(), rt.dir)
			if err != nil {
				return err
			}
			return emit(cmd, report, f, output)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml, prom, table")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to FILE atomically instead of stdout")
	return cmd
}

func newInspectCmd(opts *globalOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "inspect NAME",
		Short: "Inspect a single logical certificate name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return usageError(err)
			}
			rt, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			name := args[0]
			rec := rt.builder.Inspect(cmd.Context(), rt.dir, name)
			if f == export.FormatTable {
				paths := inventory.PathsFor(rt.dir, name)
				con.field("Certificate", paths.Cert)
				con.field("Key", paths.Key)
				fmt.Fprintln(con.stdout)
			}
			return emit(cmd, inventory.Report{name: rec}, f, "")
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format: json, yaml, prom, table")
	return cmd
}

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var format, output string
	var debounce time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the report whenever the cert directory changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return usageError(err)
			}
			rt, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			if output == "" {
				con.progress("Watching " + rt.dir + " (ctrl+c to stop)")
			}
			var emitErr error
			err = rt.builder.Watch(cmd.Context(), rt.dir, debounce, func(r inventory.Report) {
				if emitErr = emit(cmd, r, f, output); emitErr != nil {
					con.fail(emitErr.Error())
				}
			})
			if err != nil {
				return err
			}
			return emitErr
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml, prom, table")
	cmd.Flags().StringVarP(&output, "output", "o", "", "rewrite FILE atomically after each change instead of printing")
	cmd.Flags().DurationVar(&debounce, "debounce", inventory.DefaultDebounce, "quiet period before rebuilding")
	return cmd
}

func newTUICmd(opts *globalOptions, runTUI TUIFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the report interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !interactive() {
				return &ExitError{Code: ExitUsage, Msg: "tui requires an interactive terminal"}
			}
			rt, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), rt.builder, rt.dir)
		},
	}
}

// emit writes report to output (atomically) or to the command's stdout.
func emit(cmd *cobra.Command, report inventory.Report, f export.Format, output string) error {
	tableOpt := export.TableOptions{Color: con.color && output == ""}

	if output == "" {
		return export.Write(cmd.OutOrStdout(), report, f, tableOpt)
	}

	data, err := export.Render(report, f, tableOpt)
	if err != nil {
		return err
	}
	if err := export.WriteFileAtomic(output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	con.done(fmt.Sprintf("Wrote %d record(s) to %s", len(report), output))
	return nil
}
