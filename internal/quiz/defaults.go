package quiz

// DefaultCategories is written to the blob store on first run.
func DefaultCategories() []Category {
	return []Category{
		{ID: "general", Name: "General Knowledge", Description: "A bit of everything", Icon: "🧠"},
		{ID: "science", Name: "Science", Description: "Physics, chemistry and biology", Icon: "🔬"},
		{ID: "history", Name: "History", Description: "People and events that shaped the world", Icon: "📜"},
		{ID: "geography", Name: "Geography", Description: "Countries, capitals and landmarks", Icon: "🌍"},
		{ID: "technology", Name: "Technology", Description: "Computers and the internet", Icon: "💻"},
	}
}

// DefaultQuestions is written to the blob store on first run.
func DefaultQuestions() []Question {
	return []Question{
		{ID: "general-1", CategoryID: "general", Difficulty: DifficultyEasy,
			Text:    "How many days are there in a leap year?",
			Options: []string{"364", "365", "366", "367"}, CorrectIndex: 2},
		{ID: "general-2", CategoryID: "general", Difficulty: DifficultyEasy,
			Text:    "Which color do you get by mixing blue and yellow?",
			Options: []string{"Green", "Purple", "Orange", "Brown"}, CorrectIndex: 0},
		{ID: "general-3", CategoryID: "general", Difficulty: DifficultyMedium,
			Text:    "How many sides does a hexagon have?",
			Options: []string{"5", "6", "7", "8"}, CorrectIndex: 1},
		{ID: "general-4", CategoryID: "general", Difficulty: DifficultyHard,
			Text:    "Which planet has the most confirmed moons?",
			Options: []string{"Jupiter", "Saturn", "Uranus", "Neptune"}, CorrectIndex: 1},

		{ID: "science-1", CategoryID: "science", Difficulty: DifficultyEasy,
			Text:    "What is the chemical symbol for water?",
			Options: []string{"O2", "H2O", "CO2", "NaCl"}, CorrectIndex: 1},
		{ID: "science-2", CategoryID: "science", Difficulty: DifficultyEasy,
			Text:    "Which planet is known as the Red Planet?",
			Options: []string{"Venus", "Mars", "Jupiter", "Mercury"}, CorrectIndex: 1},
		{ID: "science-3", CategoryID: "science", Difficulty: DifficultyMedium,
			Text:    "What gas do plants absorb from the atmosphere?",
			Options: []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Helium"}, CorrectIndex: 2},
		{ID: "science-4", CategoryID: "science", Difficulty: DifficultyMedium,
			Text:    "What is the powerhouse of the cell?",
			Options: []string{"Nucleus", "Ribosome", "Mitochondria", "Golgi apparatus"}, CorrectIndex: 2},
		{ID: "science-5", CategoryID: "science", Difficulty: DifficultyHard,
			Text:    "What is the atomic number of carbon?",
			Options: []string{"6", "8", "12", "14"}, CorrectIndex: 0},

		{ID: "history-1", CategoryID: "history", Difficulty: DifficultyEasy,
			Text:    "Who was the first President of the United States?",
			Options: []string{"Thomas Jefferson", "Abraham Lincoln", "George Washington", "John Adams"}, CorrectIndex: 2},
		{ID: "history-2", CategoryID: "history", Difficulty: DifficultyMedium,
			Text:    "In which year did World War II end?",
			Options: []string{"1943", "1944", "1945", "1946"}, CorrectIndex: 2},
		{ID: "history-3", CategoryID: "history", Difficulty: DifficultyMedium,
			Text:    "Which civilization built Machu Picchu?",
			Options: []string{"Aztec", "Maya", "Inca", "Olmec"}, CorrectIndex: 2},
		{ID: "history-4", CategoryID: "history", Difficulty: DifficultyHard,
			Text:    "In which year did the Berlin Wall fall?",
			Options: []string{"1987", "1989", "1991", "1993"}, CorrectIndex: 1},

		{ID: "geography-1", CategoryID: "geography", Difficulty: DifficultyEasy,
			Text:    "What is the capital of France?",
			Options: []string{"Berlin", "Madrid", "Paris", "Rome"}, CorrectIndex: 2},
		{ID: "geography-2", CategoryID: "geography", Difficulty: DifficultyEasy,
			Text:    "Which is the largest ocean on Earth?",
			Options: []string{"Atlantic", "Indian", "Arctic", "Pacific"}, CorrectIndex: 3},
		{ID: "geography-3", CategoryID: "geography", Difficulty: DifficultyMedium,
			Text:    "Which river is the longest in Africa?",
			Options: []string{"Congo", "Niger", "Nile", "Zambezi"}, CorrectIndex: 2},
		{ID: "geography-4", CategoryID: "geography", Difficulty: DifficultyHard,
			Text:    "What is the capital of Australia?",
			Options: []string{"Sydney", "Melbourne", "Canberra", "Perth"}, CorrectIndex: 2},

		{ID: "technology-1", CategoryID: "technology", Difficulty: DifficultyEasy,
			Text:    "What does CPU stand for?",
			Options: []string{"Central Processing Unit", "Computer Personal Unit", "Central Program Utility", "Core Processing Unit"}, CorrectIndex: 0},
		{ID: "technology-2", CategoryID: "technology", Difficulty: DifficultyMedium,
			Text:    "Which company created the Go programming language?",
			Options: []string{"Microsoft", "Google", "Apple", "Mozilla"}, CorrectIndex: 1},
		{ID: "technology-3", CategoryID: "technology", Difficulty: DifficultyMedium,
			Text:    "What does HTTP stand for?",
			Options: []string{"HyperText Transfer Protocol", "High Transfer Text Protocol", "Hyperlink Text Transport Protocol", "Host Transfer Protocol"}, CorrectIndex: 0},
		{ID: "technology-4", CategoryID: "technology", Difficulty: DifficultyHard,
			Text:    "How many bits are in a byte?",
			Options: []string{"4", "8", "16", "32"}, CorrectIndex: 1},
	}
}
