package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/coredds/m3crack/internal/report"
	"github.com/coredds/m3crack/pkg/decryptor"
	"github.com/coredds/m3crack/pkg/enigma"
	"github.com/coredds/m3crack/pkg/fitness"
	"github.com/spf13/cobra"
)

var crackCmd = &cobra.Command{
	Use:   "crack",
	Short: "Recover the key and plaintext behind an M3 ciphertext",
	Long: `Run the full three-phase search (wheel order/position by Index of
Coincidence, ring optimization, greedy plugboard hill-climb) against a
ciphertext and print the recovered key and decrypted plaintext.

INPUT METHODS:
  m3crack crack --text "CIPHERTEXT"      # Direct text
  m3crack crack --file message.txt       # From file
  echo "CIPHERTEXT" | m3crack crack      # From stdin`,
	RunE: runCrack,
}

func init() {
	crackCmd.Flags().StringP("text", "t", "", "Ciphertext to crack")
	crackCmd.Flags().StringP("file", "f", "", "File containing ciphertext")
	crackCmd.Flags().IntP("survivors", "s", 100, "Phase-1 survivors carried into ring optimization")
	crackCmd.Flags().IntP("plugboard-rounds", "r", 10, "Maximum plugboard hill-climb rounds")
	crackCmd.Flags().StringP("bigrams", "", "", "Path to a GRAM,SCORE bigram table for plugboard scoring")
	crackCmd.Flags().StringP("trigrams", "", "", "Path to a GRAM,SCORE trigram table for plugboard scoring")
	crackCmd.Flags().BoolP("json", "", false, "Print a schema-validated JSON report instead of plain text")
	crackCmd.Flags().DurationP("timeout", "", 0, "Abort the search after this long and report the best key found so far (0 = no timeout)")
	crackCmd.Flags().IntP("workers", "w", 0, "Concurrent phase-1 workers (0 = GOMAXPROCS)")
}

func runCrack(cmd *cobra.Command, args []string) error {
	setupVerbose(cmd)

	cipherText, err := getCiphertext(cmd)
	if err != nil {
		return fmt.Errorf("failed to get ciphertext: %w", err)
	}
	if cipherText == "" {
		return fmt.Errorf("no ciphertext provided. Use --text, --file, or pipe to stdin")
	}

	opts, err := decryptorOptions(cmd)
	if err != nil {
		return err
	}

	survivors, _ := cmd.Flags().GetInt("survivors")
	rounds, _ := cmd.Flags().GetInt("plugboard-rounds")

	d := decryptor.New(cipherText, opts...)

	ctx, cancel := searchContext(cmd)
	defer cancel()

	result := d.Decrypt(ctx)

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printJSONReport(cmd, result, cipherText, survivors, rounds)
	}
	return printPlainResult(cmd, result, cipherText)
}

// getCiphertext resolves ciphertext from --text, --file, or stdin, in
// that order, matching the input precedence the rest of this corpus
// uses for its own commands.
func getCiphertext(cmd *cobra.Command) (string, error) {
	if text, _ := cmd.Flags().GetString("text"); text != "" {
		return text, nil
	}

	if filename, _ := cmd.Flags().GetString("file"); filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return "", fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		return string(data), nil
	}

	if stat, err := os.Stdin.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	return "", nil
}

// decryptorOptions translates crack's flags into decryptor.Options,
// loading an n-gram table for the plugboard scorer when one is given.
// --trigrams takes precedence over --bigrams when both are set.
func decryptorOptions(cmd *cobra.Command) ([]decryptor.Option, error) {
	var opts []decryptor.Option

	if survivors, _ := cmd.Flags().GetInt("survivors"); survivors > 0 {
		opts = append(opts, decryptor.WithPhase1Survivors(survivors))
	}
	if rounds, _ := cmd.Flags().GetInt("plugboard-rounds"); rounds >= 0 {
		opts = append(opts, decryptor.WithPlugboardRounds(rounds))
	}
	if workers, _ := cmd.Flags().GetInt("workers"); workers > 0 {
		opts = append(opts, decryptor.WithWorkers(workers))
	}

	if path, _ := cmd.Flags().GetString("trigrams"); path != "" {
		table, err := fitness.LoadNGramTable(path, 3)
		if err != nil {
			return nil, fmt.Errorf("failed to load trigram table: %w", err)
		}
		opts = append(opts, decryptor.WithPlugboardScorer(table))
	} else if path, _ := cmd.Flags().GetString("bigrams"); path != "" {
		table, err := fitness.LoadNGramTable(path, 2)
		if err != nil {
			return nil, fmt.Errorf("failed to load bigram table: %w", err)
		}
		opts = append(opts, decryptor.WithPlugboardScorer(table))
	}

	return opts, nil
}

// searchContext builds the context.Context Decrypt runs under,
// applying --timeout when the caller set one.
func searchContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

func printPlainResult(cmd *cobra.Command, result enigma.ScoredKey, cipherText string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "key: %s\n", result.Key)
	fmt.Fprintf(out, "score: %v\n", result.Score)

	e, err := enigma.NewFromKey(result.Key)
	if err != nil {
		return fmt.Errorf("failed to rebuild Enigma from recovered key: %w", err)
	}
	fmt.Fprintf(out, "plaintext: %s\n", e.Decrypt(cipherText))
	return nil
}

func printJSONReport(cmd *cobra.Command, result enigma.ScoredKey, cipherText string, survivors, rounds int) error {
	r := report.Build(result, cipherText, survivors, rounds)
	data, err := r.MarshalAndValidate()
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
