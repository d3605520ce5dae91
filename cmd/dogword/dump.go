package main

import (
	"bufio"

	"github.com/spf13/cobra"

	"crosswarped.com/wordgrid/internal/wordsource"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print every word in a packed dictionary, in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("dict")
			d, err := wordsource.LoadDictionary(path)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(cmd.OutOrStdout())
			n := 0
			for word := range d.Words() {
				w.WriteString(word)
				w.WriteByte('\n')
				n++
			}
			logger.Debug().Int("words", n).Msg("dumped dictionary")
			return w.Flush()
		},
	}
	cmd.Flags().String("dict", "", "Packed dictionary file")
	_ = cmd.MarkFlagRequired("dict")
	return cmd
}
