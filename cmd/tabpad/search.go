package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
	"pkt.systems/tabpad/internal/appconfig"
	"pkt.systems/tabpad/internal/filestore"
	"pkt.systems/tabpad/internal/format"
	"pkt.systems/tabpad/internal/memsurface"
	"pkt.systems/tabpad/schema"
	"pkt.systems/tabpad/search"
)

func newSearchCmd(cfgPath *string) *cobra.Command {
	var caseSensitive bool
	var cursor int
	var direction string
	cmd := &cobra.Command{
		Use:   "search FILE QUERY",
		Short: "Count and list occurrences of QUERY in a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}
			cfg, err := appconfig.Load(*cfgPath)
			if err != nil {
				return err
			}
			svcCfg := cfg.ServiceConfig()
			files := filestore.New(filestore.Options{MaxSize: svcCfg.MaxFileSize, Logger: logger})
			content, contentFormat, err := files.Read(args[0])
			if err != nil {
				return err
			}
			surface := memsurface.New("")
			if err := surface.SetSerializedContent(content, contentFormat); err != nil {
				return err
			}
			result := search.Find(search.Query{
				Text:          surface.PlainText(),
				Pattern:       args[1],
				CaseSensitive: caseSensitive,
				Cursor:        cursor,
				Direction:     dir,
			})
			logger.Debug("search done", "path", args[0], "matches", len(result.Matches))
			out := cmd.OutOrStdout()
			if _, err := fmt.Fprintf(out, "%d/%d\n", result.Counter.Current, result.Counter.Total); err != nil {
				return err
			}
			for _, line := range format.FormatHighlights(result.Highlights) {
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&caseSensitive, "case", false, "match case")
	cmd.Flags().IntVar(&cursor, "cursor", 0, "cursor offset the active match is chosen from")
	cmd.Flags().StringVar(&direction, "direction", "", "none, next or prev")
	return cmd
}

func parseDirection(value string) (schema.SearchDirection, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "none":
		return schema.DirectionNone, nil
	case "next", "forward":
		return schema.DirectionForward, nil
	case "prev", "previous", "backward":
		return schema.DirectionBackward, nil
	default:
		return schema.DirectionNone, fmt.Errorf("unsupported direction %q", value)
	}
}
