package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"crosswarped.com/wordgrid/internal/wordsource"
)

func newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup WORD...",
		Short: "Report whether each word is in the dictionary or begins a longer word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("dict")
			d, err := wordsource.LoadDictionary(path)
			if err != nil {
				return err
			}
			for _, word := range args {
				r := d.Lookup(word)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n", word, r, r)
			}
			return nil
		},
	}
	cmd.Flags().String("dict", "", "Packed dictionary file")
	_ = cmd.MarkFlagRequired("dict")
	return cmd
}
