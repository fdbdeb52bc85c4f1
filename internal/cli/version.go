package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/mattn/go-runewidth"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/chazuruo/histclean/internal/report"
)

// VersionInfo is the build metadata stamped into the binary.
type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
	BuiltBy string `json:"built_by,omitempty" yaml:"built_by,omitempty"`
	Go      string `json:"go_version" yaml:"go_version"`
}

// String returns the one-line form used by --version.
func (v VersionInfo) String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", v.Version, v.Commit, v.Date)
}

// VersionOptions contains the options for the version command.
type VersionOptions struct {
	Short  bool
	Format string
}

// NewVersionCommand creates the version command.
func NewVersionCommand(info VersionInfo) *cobra.Command {
	opts := &VersionOptions{}

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVersion(cmd.OutOrStdout(), opts, info)
		},
	}

	cmd.Flags().BoolVar(&opts.Short, "short", false, "print only the version number")
	cmd.Flags().StringVar(&opts.Format, "format", "", "output format: "+report.FormatList())

	return cmd
}

func runVersion(out io.Writer, opts *VersionOptions, info VersionInfo) error {
	if opts.Short {
		_, err := fmt.Fprintln(out, info.Version)
		return err
	}

	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	info.Go = runtime.Version()
	if info.BuiltBy == "unknown" {
		info.BuiltBy = ""
	}
	if format != report.FormatTable {
		return report.Encode(out, info, format)
	}

	tbl := table.New("Build", "Value").WithWriter(out).WithWidthFunc(runewidth.StringWidth)
	tbl.AddRow("version", info.Version)
	tbl.AddRow("commit", info.Commit)
	tbl.AddRow("date", info.Date)
	if info.BuiltBy != "" {
		tbl.AddRow("built by", info.BuiltBy)
	}
	tbl.AddRow("go", info.Go)
	tbl.Print()

	return nil
}
