package quiz

var sampleQuestions = []Question{
	{
		Question: "What does HTML stand for?",
		Options:  []string{"HyperText Markup Language", "HighText Machine Language", "HyperTransfer Markup Language", "None of the above"},
		Answer:   "HyperText Markup Language",
	},
	{
		Question: "Which company created JavaScript?",
		Options:  []string{"Netscape", "Microsoft", "Sun Microsystems", "IBM"},
		Answer:   "Netscape",
	},
	{
		Question: "Which tag links a CSS file?",
		Options:  []string{"<css>", "<link>", "<style>", "<script>"},
		Answer:   "<link>",
	},
	{
		Question: "React is mainly used for building?",
		Options:  []string{"Database", "Connectivity", "User Interface", "Server"},
		Answer:   "User Interface",
	},
	{
		Question: "Which hook is for state in React?",
		Options:  []string{"useEffect", "useState", "useMemo", "useRef"},
		Answer:   "useState",
	},
}

// Sample returns a fresh copy of the built-in quiz. Callers may modify
// the result freely.
func Sample() []Question {
	out := make([]Question, len(sampleQuestions))
	for i, q := range sampleQuestions {
		q.Options = append([]string(nil), q.Options...)
		out[i] = q
	}
	return out
}
