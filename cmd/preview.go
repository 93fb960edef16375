package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizly/internal/llm"
	"github.com/abhisek/quizly/internal/questiongen"
	"github.com/abhisek/quizly/internal/quiz"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview LLM-generated questions for a category (no database)",
	Long: `Generate and interactively answer questions for one category.

This is a stateless developer tool: no database, no history, no bank updates.
Useful for evaluating question quality and prompt changes.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("category", "general", "Category ID")
	previewCmd.Flags().String("difficulty", "", "easy, medium or hard (default: a mix)")
	previewCmd.Flags().Int("count", 5, "Number of questions to generate")
}

func runPreview(cmd *cobra.Command, args []string) error {
	categoryID, _ := cmd.Flags().GetString("category")
	difficulty, _ := cmd.Flags().GetString("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	if err := checkDifficulty(difficulty); err != nil {
		return err
	}

	category, ok := findCategory(quiz.DefaultCategories(), categoryID)
	if !ok {
		return fmt.Errorf("unknown category %q", categoryID)
	}

	// No EventRepo: requests are only logged.
	ctx := context.Background()
	llmCfg, err := llm.Resolve()
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	provider, err := llm.NewProvider(ctx, llmCfg, nil)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	gen := questiongen.New(provider, questiongen.DefaultConfig())

	fmt.Printf("Category: %s %s (%s)\n", category.Icon, category.Name, orAny(difficulty))
	fmt.Printf("Generating %d questions...\n\n", count)

	qs, err := gen.Generate(ctx, questiongen.Input{Category: category, Difficulty: difficulty, Count: count})
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	var correct int
	for i, q := range qs {
		fmt.Printf("── Question %d/%d [%s] ──\n", i+1, len(qs), q.Difficulty)
		fmt.Println(q.Text)
		for j, o := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, o)
		}

		fmt.Print("\nYour answer: ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		idx, err := strconv.Atoi(answer)
		if answer == "" || err != nil {
			fmt.Printf("(skipped) Answer: %s\n\n", q.Options[q.CorrectIndex])
			continue
		}

		if q.IsCorrect(idx - 1) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Options[q.CorrectIndex])
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, len(qs))
	return nil
}

func findCategory(cats []quiz.Category, id string) (quiz.Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return quiz.Category{}, false
}

func orAny(difficulty string) string {
	if difficulty == "" {
		return "any difficulty"
	}
	return difficulty
}
