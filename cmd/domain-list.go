package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tempusbreve/zone-helper/internal/zone"
)

var domainListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the zone's records, grouped by domain",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		_, idx, err := loadZone(ctx)
		if err != nil {
			return err
		}

		return writeGrouped(cmd.OutOrStdout(), listOutput, idx)
	},
}

var listOutput = "text"

func init() {
	domainCmd.AddCommand(domainListCmd)

	domainListCmd.Flags().StringVarP(&listOutput, "output", "o", listOutput, "Output format (text, json, yaml)")
}

func writeGrouped(w io.Writer, format string, idx *zone.Index) error {
	view := zone.Group(idx)

	switch format {
	case "text", "":
		zone.PrintGrouped(w, view)
		fmt.Fprintf(w, "%s %s in %s %s\n",
			humanize.Comma(int64(idx.Total())), english.PluralWord(idx.Total(), "record", ""),
			humanize.Comma(int64(idx.Len())), english.PluralWord(idx.Len(), "domain", ""))
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(view)
	}

	return fmt.Errorf("unknown output format %q", format)
}
