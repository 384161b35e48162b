package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"rusmarc/pkg/typed"
)

func newFieldsCmd(stdout io.Writer) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "fields",
		Short: "列出内置字段解析器（字段号与类型标签）",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listFields(stdout, typed.Default(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "以 JSON 数组输出")
	return cmd
}

func listFields(w io.Writer, reg *typed.Registry, asJSON bool) error {
	type row struct {
		Number uint32 `json:"number"`
		Kind   string `json:"kind"`
	}
	rows := make([]row, 0, reg.Len())
	for _, n := range reg.Numbers() {
		e, _ := reg.Lookup(n)
		rows = append(rows, row{Number: uint32(n), Kind: string(e.Kind)})
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tKIND")
	for _, r := range rows {
		fmt.Fprintf(tw, "%03d\t%s\n", r.Number, r.Kind)
	}
	return tw.Flush()
}
