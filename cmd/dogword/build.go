package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"crosswarped.com/wordgrid/internal/wordsource"
	"crosswarped.com/wordgrid/pkg/dict"
	"crosswarped.com/wordgrid/pkg/primitives"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a packed dictionary from word lists",
		Args:  cobra.NoArgs,
		RunE:  runBuild,
	}
	cmd.Flags().StringSlice("words", nil, "Word list file, one word per line (repeatable, .gz allowed)")
	cmd.Flags().String("out", "", "Output dictionary file (.gz to compress)")
	cmd.Flags().Bool("dag", false, "Share identical single-word suffixes to shrink the dictionary")
	cmd.Flags().String("alphabet", "", "Reject words with characters outside this range, e.g. a-z")
	cmd.Flags().Int("min_length", 0, "Skip words shorter than this")
	cmd.Flags().Int("max_length", 0, "Skip words longer than this")
	_ = cmd.MarkFlagRequired("words")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	files, _ := cmd.Flags().GetStringSlice("words")
	out, _ := cmd.Flags().GetString("out")
	dag, _ := cmd.Flags().GetBool("dag")
	alphabet, _ := cmd.Flags().GetString("alphabet")

	opts := wordsource.Options{Seen: primitives.NewCharSet(0, 0xff)}
	opts.MinLength, _ = cmd.Flags().GetInt("min_length")
	opts.MaxLength, _ = cmd.Flags().GetInt("max_length")
	if alphabet != "" {
		cs, err := primitives.ParseCharSet(alphabet)
		if err != nil {
			return err
		}
		opts.Alphabet = cs
	}

	start := time.Now()
	logger.Info().Strs("files", files).Msg("loading words")
	b, err := wordsource.LoadBuilder(cmd.Context(), files, opts)
	if err != nil {
		logger.Error().Err(err).Msg("loading words failed")
		return err
	}
	logger.Info().
		Int("words", b.NumWords()).
		Int("edges", b.NumEdges()).
		Str("alphabet", opts.Seen.String()).
		Int("letters", opts.Seen.Count()).
		Msg("built trie")

	if dag {
		nodes := b.CollapseSuffixes()
		logger.Info().Int("nodes", nodes).Int("edges", b.NumEdges()).Msg("collapsed suffixes")
	}

	d, err := dict.Build(b)
	if err != nil {
		logger.Error().Err(err).Msg("packing dictionary failed")
		return err
	}
	n, err := wordsource.SaveDictionary(out, d)
	if err != nil {
		logger.Error().Err(err).Msg("saving dictionary failed")
		return err
	}

	logger.Info().
		Str("out", out).
		Int("records", d.Len()).
		Int64("bytes", n).
		Dur("elapsed", time.Since(start)).
		Msg("wrote dictionary")
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d words, %d records, %d letters\n", out, b.NumWords(), d.Len(), opts.Seen.Count())
	return nil
}
