package main

import (
	"context"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"crosswarped.com/wordgrid"
	"crosswarped.com/wordgrid/internal/wordsource"
)

func newSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve GRID...",
		Short: "List the words hidden in one or more grids",
		Long: "Each GRID is a row-major string of letters, either a perfect square\n" +
			"such as ABCDEFGHIJKLMNOP or rows separated by '/' such as ABCDE/FGHIJ.",
		Args: cobra.MinimumNArgs(1),
		RunE: runSolve,
	}
	cmd.Flags().String("dict", "", "Packed dictionary file")
	cmd.Flags().Int("min_length", wordgrid.DefaultMinLength, "The minimum word length")
	cmd.Flags().Bool("no_tiles", false, "Treat Q as a plain letter instead of QU")
	cmd.Flags().Int("workers", 0, "Grids searched at once (0 for no limit)")
	cmd.Flags().Duration("timeout", 1*time.Minute, "Give up after this long")

	cmd.Flags().Bool("profile", false, "Profile the search")
	cmd.Flags().String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	cmd.Flags().String("memory-profile-file", "mem.pprof", "The file to write the memory profile to")
	_ = cmd.MarkFlagRequired("dict")
	return cmd
}

func runSolve(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("dict")
	minLength, _ := cmd.Flags().GetInt("min_length")
	noTiles, _ := cmd.Flags().GetBool("no_tiles")
	workers, _ := cmd.Flags().GetInt("workers")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	d, err := wordsource.LoadDictionary(path)
	if err != nil {
		logger.Error().Err(err).Str("dict", path).Msg("loading dictionary failed")
		return err
	}
	logger.Debug().Str("dict", path).Int("records", d.Len()).Msg("loaded dictionary")

	opts := []wordgrid.FinderOption{wordgrid.WithMinLength(minLength)}
	if noTiles {
		opts = append(opts, wordgrid.WithoutTiles())
	}
	finder := wordgrid.NewFinder(d, opts...)

	parsed := make([]wordgrid.Grid, len(args))
	grids := make([]wordgrid.CharGrid, len(args))
	for i, arg := range args {
		g, err := wordgrid.ParseGrid(arg)
		if err != nil {
			return fmt.Errorf("grid %q: %w", arg, err)
		}
		parsed[i], grids[i] = g, g
	}

	stop, err := startProfile(cmd)
	if err != nil {
		return err
	}
	defer stop()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	start := time.Now()
	results, err := wordgrid.FindAll(ctx, finder, grids, workers)
	if err != nil {
		logger.Error().Err(err).Msg("search failed")
		return err
	}
	logger.Info().Int("grids", len(grids)).Dur("elapsed", time.Since(start)).Msg("search done")

	out := cmd.OutOrStdout()
	for i, words := range results {
		if i > 0 {
			fmt.Fprintln(out, "--------------------------------")
		}
		fmt.Fprintln(out, parsed[i].Repr())
		fmt.Fprintln(out, strings.Join(words, " "))
		fmt.Fprintf(out, "%d words, max score %d\n", len(words), wordgrid.Score(words))
	}
	return nil
}

// startProfile starts CPU profiling if --profile is set. The returned func
// stops it and writes the heap profile.
func startProfile(cmd *cobra.Command) (func(), error) {
	if on, _ := cmd.Flags().GetBool("profile"); !on {
		return func() {}, nil
	}
	profileFile, _ := cmd.Flags().GetString("profile-file")
	memoryProfileFile, _ := cmd.Flags().GetString("memory-profile-file")

	f, err := os.Create(profileFile)
	if err != nil {
		return nil, fmt.Errorf("creating profile file: %w", err)
	}
	mf, err := os.Create(memoryProfileFile)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating memory profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		mf.Close()
		return nil, fmt.Errorf("starting CPU profile: %w", err)
	}

	return func() {
		pprof.StopCPUProfile()
		f.Close()
		if err := pprof.WriteHeapProfile(mf); err != nil {
			logger.Warn().Err(err).Msg("writing heap profile failed")
		}
		mf.Close()
		logger.Info().Str("cpu", profileFile).Str("memory", memoryProfileFile).Msg("wrote profiles")
	}, nil
}
