package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pkt.systems/tabpad/internal/version"
)

func newVersionCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the tabpad build version",
		Long:  "Print the tabpad banner. With --verbose, also print the module path, VCS revision and build time.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintln(out, version.Banner()); err != nil {
				return err
			}
			if !verbose {
				return nil
			}
			info := version.Read()
			_, err := fmt.Fprintf(out, "module:   %s\nrevision: %s\nbuilt:    %s\n",
				info.Module, orUnknown(info.Revision), buildTime(info.Time))
			return err
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include module, revision and build time")
	return cmd
}

func orUnknown(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}

func buildTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.UTC().Format(time.RFC3339)
}
