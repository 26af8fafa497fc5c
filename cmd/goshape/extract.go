package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/goshape/source"
)

func (a *app) extractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <schema-file> <value-file|->",
		Short: "Print the value as JSON with undeclared keys removed",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			s, err := a.loadSchema(args[0])
			if err != nil {
				return err
			}
			v, err := a.readValue(args[1])
			if err != nil {
				return err
			}
			out, err := s.Extract(v)
			if err != nil {
				return a.reject(err, false)
			}
			b, err := source.EncodeJSON(out)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s\n", b)
			return nil
		},
	}
}
