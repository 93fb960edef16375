package session

// Outcome is the terminal tally of a completed session.
type Outcome struct {
	Correct      int
	Incorrect    int
	NotAttempted int
	Total        int
}

// BuildOutcome partitions answers into the three result buckets.
func BuildOutcome(answers []AnswerRecord, total int) Outcome {
	o := Outcome{Total: total}
	for _, a := range answers {
		switch a.Result {
		case ResultCorrect:
			o.Correct++
		case ResultIncorrect:
			o.Incorrect++
		case ResultNotAttempted:
			o.NotAttempted++
		}
	}
	return o
}

// Score is the displayed score.
func (o Outcome) Score() int {
	return o.Correct
}

// Percentage returns the share of correct answers in [0,100].
func (o Outcome) Percentage() float64 {
	if o.Total == 0 {
		return 0
	}
	return float64(o.Correct) / float64(o.Total) * 100
}

// Message returns the encouragement line for the results screen.
func (o Outcome) Message() string {
	pct := o.Percentage()
	switch {
	case o.Total > 0 && o.Correct == o.Total:
		return "Perfect Score!"
	case pct >= 80:
		return "Excellent!"
	case pct >= 60:
		return "Good Job!"
	case pct >= 40:
		return "Not Bad!"
	case pct > 0:
		return "Keep Practicing!"
	default:
		return "Try Again!"
	}
}
