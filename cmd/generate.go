package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizly/internal/questiongen"
	"github.com/abhisek/quizly/internal/quiz"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Author new questions with an LLM and add them to the bank",
	Long: `Generate multiple-choice questions for one or more categories.

Categories are generated concurrently. Every question is validated before it
is stored; duplicates of questions already in the bank are dropped.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringSlice("category", nil, "Category IDs to generate for (default: all)")
	generateCmd.Flags().String("difficulty", "", "easy, medium or hard (default: a mix)")
	generateCmd.Flags().Int("count", 5, "Questions per category")
	generateCmd.Flags().Bool("dry-run", false, "Print the questions without saving them")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ids, _ := cmd.Flags().GetStringSlice("category")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if err := checkDifficulty(difficulty); err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("--count must be at least 1")
	}

	ctx := cmd.Context()
	d, err := openDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	gen, err := d.generator(ctx)
	if err != nil {
		return err
	}

	cats, err := selectCategories(ctx, d.bank, ids)
	if err != nil {
		return err
	}
	existing, err := d.bank.Questions(ctx)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}
	prior := make([]string, 0, len(existing))
	for _, q := range existing {
		prior = append(prior, q.Text)
	}

	inputs := make([]questiongen.Input, 0, len(cats))
	for _, c := range cats {
		inputs = append(inputs, questiongen.Input{
			Category:   c,
			Difficulty: difficulty,
			Count:      count,
			Prior:      prior,
		})
	}

	fmt.Printf("Generating %d questions for %d categories...\n\n", count, len(cats))
	results, err := gen.GenerateBatch(ctx, inputs)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	var added, failed int
	for _, r := range results {
		name := r.Input.Category.Name
		if r.Err != nil {
			failed++
			fmt.Printf("✗ %s: %v\n", name, r.Err)
			continue
		}
		fmt.Printf("✓ %s: %d questions\n", name, len(r.Questions))
		for _, q := range r.Questions {
			fmt.Printf("    [%s] %s\n", q.Difficulty, q.Text)
			for i, o := range q.Options {
				mark := " "
				if i == q.CorrectIndex {
					mark = "*"
				}
				fmt.Printf("      %s %d) %s\n", mark, i+1, o)
			}
		}
		if dryRun {
			continue
		}
		n, err := d.bank.Append(ctx, r.Questions...)
		if err != nil {
			log.Error().Err(err).Str("category", r.Input.Category.ID).Msg("append generated questions")
			return fmt.Errorf("save %s questions: %w", name, err)
		}
		added += n
	}

	fmt.Println()
	if dryRun {
		fmt.Println("Dry run: nothing saved.")
	} else {
		fmt.Printf("Added %d questions to the bank.\n", added)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d categories failed", failed, len(results))
	}
	return nil
}

// selectCategories resolves ids against the bank. Empty ids means all.
func selectCategories(ctx context.Context, bank *quiz.BankProvider, ids []string) ([]quiz.Category, error) {
	cats, err := bank.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if len(ids) == 0 {
		return cats, nil
	}

	byID := make(map[string]quiz.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}
	out := make([]quiz.Category, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[strings.TrimSpace(id)]
		if !ok {
			return nil, fmt.Errorf("unknown category %q", id)
		}
		out = append(out, c)
	}
	return out, nil
}
