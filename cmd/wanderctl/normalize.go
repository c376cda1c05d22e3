package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"wanderplan/internal/tripplan"
)

var normalizeShowRepair bool

var normalizeCmd = &cobra.Command{
	Use:   "normalize [file]",
	Short: "Normalize a raw model response into a trip plan",
	Long: `Reads a raw model response from file, or stdin when no file or "-" is given,
strips code fences, repairs near-JSON and prints the validated plan.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().BoolVar(&normalizeShowRepair, "show-repair", false, "print the repaired text before parsing")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	if normalizeShowRepair {
		fmt.Fprintln(cmd.OutOrStdout(), tripplan.Repair(tripplan.StripCodeFence(raw)))
		fmt.Fprintln(cmd.OutOrStdout())
	}

	plan, err := tripplan.Normalize(raw)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(b), nil
}
