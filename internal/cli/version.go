// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

// Version is the version of the tool, set at link time with
// -ldflags "-X github.com/dalzilio/robdd/internal/cli.Version=...".
var Version = "dev"

// VersionInfo is the JSON output of the version command.
type VersionInfo struct {
	Version string `json:"version"`
	Go      string `json:"go"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print the version of robdd",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
			info := VersionInfo{Version: Version, Go: runtime.Version()}
			return formatter.Success(info, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "robdd %s (%s)\n", info.Version, info.Go)
				return err
			})
		},
	}
}
