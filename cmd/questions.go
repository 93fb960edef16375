package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizly/internal/quiz"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Browse the question bank",
}

var questionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List questions (optionally filtered by category or difficulty)",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		showAnswers, _ := cmd.Flags().GetBool("answers")
		if err := checkDifficulty(difficulty); err != nil {
			return err
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		all, err := d.bank.Questions(cmd.Context())
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}
		qs := quiz.Filter(all, category, difficulty)
		if len(qs) == 0 {
			fmt.Println("No questions found.")
			return nil
		}

		// Header.
		fmt.Printf("%-22s  %-12s  %-6s  %s\n", "ID", "Category", "Level", "Question")
		fmt.Println(strings.Repeat("─", 100))

		for _, q := range qs {
			text := q.Text
			if len(text) > 55 {
				text = text[:52] + "..."
			}
			fmt.Printf("%-22s  %-12s  %-6s  %s\n", q.ID, q.CategoryID, q.Difficulty, text)
			if showAnswers {
				fmt.Printf("%-44s  → %s\n", "", q.Options[q.CorrectIndex])
			}
		}

		fmt.Printf("\n%d questions\n", len(qs))
		return nil
	},
}

var questionsCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories with their question counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		ctx := cmd.Context()
		cats, err := d.bank.Categories(ctx)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		qs, err := d.bank.Questions(ctx)
		if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}

		counts := make(map[string]map[string]int)
		for _, q := range qs {
			if counts[q.CategoryID] == nil {
				counts[q.CategoryID] = make(map[string]int)
			}
			counts[q.CategoryID][q.Difficulty]++
		}

		fmt.Printf("%-12s  %-20s  %5s  %5s  %5s\n", "ID", "Name", "Easy", "Med", "Hard")
		fmt.Println(strings.Repeat("─", 56))
		for _, c := range cats {
			n := counts[c.ID]
			fmt.Printf("%-12s  %-20s  %5d  %5d  %5d\n", c.ID, c.Icon+" "+c.Name,
				n[quiz.DifficultyEasy], n[quiz.DifficultyMedium], n[quiz.DifficultyHard])
		}

		if last, err := d.bank.LastSync(ctx); err == nil && !last.IsZero() {
			fmt.Printf("\nLast updated %s\n", last.Local().Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func init() {
	questionsListCmd.Flags().String("category", "", "Filter by category ID")
	questionsListCmd.Flags().String("difficulty", "", "Filter by difficulty (easy, medium, hard)")
	questionsListCmd.Flags().Bool("answers", false, "Show the correct answer")

	questionsCmd.AddCommand(questionsListCmd)
	questionsCmd.AddCommand(questionsCategoriesCmd)
}
