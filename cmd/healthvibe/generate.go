package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/healthvibe/internal/generator"
	"github.com/MrSnakeDoc/healthvibe/internal/validation"
)

var (
	generateSeed uint64
	generateAt   string
)

var generateCmd = &cobra.Command{
	Use:   "generate <query>",
	Short: "Print the remedies generated for a query as JSON",
	Long: `Runs the template generator once, without the processing delay, and
prints the three remedies.

--seed fixes the sampled ingredients, times and images. Remedy IDs embed the
generation time: --at sets it (RFC 3339), and with a seed and no --at the
Unix epoch is used, so the same seed prints the same output.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().Uint64Var(&generateSeed, "seed", 0, "generator seed, 0 for a random one")
	generateCmd.Flags().StringVar(&generateAt, "at", "", "generation time used in IDs, RFC 3339")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	query, err := validation.ValidateQuery(args[0])
	if err != nil {
		return err
	}

	var opts []generator.Option
	switch {
	case generateAt != "":
		at, err := time.Parse(time.RFC3339, generateAt)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		opts = append(opts, generator.WithClock(func() time.Time { return at }))
	case generateSeed != 0:
		opts = append(opts, generator.WithClock(func() time.Time { return time.UnixMilli(0) }))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(generator.New(generateSeed, opts...).Generate(query))
}
