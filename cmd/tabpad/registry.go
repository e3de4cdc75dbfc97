package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
)

func newRecentCmd(cfgPath *string) *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List or clear recently opened files",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			a, err := openApp(*cfgPath, false, logger)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			out := cmd.OutOrStdout()
			if clearAll {
				if err := a.registry.ClearRecent(); err != nil {
					return err
				}
				logger.Info("recent files cleared")
				return nil
			}
			paths, err := a.registry.RecentFiles()
			if err != nil {
				return err
			}
			for i, path := range paths {
				if _, err := fmt.Fprintf(out, "%d. %s\n", i+1, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "clear the recent files list")
	return cmd
}

func newSessionCmd(cfgPath *string) *cobra.Command {
	var clearAll bool
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Show or clear the saved tab session",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			a, err := openApp(*cfgPath, false, logger)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()
			if clearAll {
				if err := a.registry.ClearSession(); err != nil {
					return err
				}
				logger.Info("session cleared")
				return nil
			}
			snapshot, err := a.registry.Session()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, path := range snapshot.OpenFilePaths {
				marker := " "
				if i == snapshot.ActiveIndex {
					marker = "*"
				}
				if _, err := fmt.Fprintf(out, "%s %d. %s\n", marker, i+1, path); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&clearAll, "clear", false, "forget the saved tabs")
	return cmd
}
