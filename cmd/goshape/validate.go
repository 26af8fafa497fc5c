package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) validateCmd() *cobra.Command {
	var showValue bool
	cmd := &cobra.Command{
		Use:   "validate <schema-file> <value-file|->",
		Short: "Validate a value, rejecting keys the schema does not declare",
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
			if err := s.Validate(v); err != nil {
				return a.reject(err, showValue)
			}
			fmt.Fprintln(a.out, "ok")
			return nil
		},
	}
	cmd.Flags().BoolVar(&showValue, "show-value", false, "print the rejected value (it may hold secrets)")
	return cmd
}
