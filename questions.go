package main

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Answer is one entry on a question's board, ranked by point value.
type Answer struct {
	Text   string `yaml:"text" json:"text"`
	Points int    `yaml:"points" json:"points"`
}

// Question is a single board: a prompt plus its ranked answers.
type Question struct {
	Prompt  string   `yaml:"prompt" json:"prompt"`
	Answers []Answer `yaml:"answers" json:"answers"`
}

type questionBank struct {
	Questions []Question `yaml:"questions"`
}

//go:embed questions.yaml
var defaultQuestions []byte

// loadQuestions returns the question set for this server: either the YAML
// file named by --questions, or the built-in Sanskrit set. The bank is
// read once at startup and never mutated afterwards.
func loadQuestions(cfg *Config) ([]Question, error) {
	data := defaultQuestions

	if cfg.questionFile != "" {
		var err error
		data, err = os.ReadFile(cfg.questionFile)
		if err != nil {
			return nil, fmt.Errorf("reading question bank: %w", err)
		}
	}

	var bank questionBank
	if err := yaml.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("parsing question bank: %w", err)
	}

	if err := validateQuestions(bank.Questions); err != nil {
		return nil, err
	}

	return bank.Questions, nil
}

func validateQuestions(questions []Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("question bank contains no questions")
	}

	for qi, q := range questions {
		if q.Prompt == "" {
			return fmt.Errorf("question %d has an empty prompt", qi+1)
		}
		if len(q.Answers) == 0 {
			return fmt.Errorf("question %d has no answers", qi+1)
		}

		prev := 0
		for ai, a := range q.Answers {
			if a.Text == "" {
				return fmt.Errorf("question %d answer %d has empty text", qi+1, ai+1)
			}
			if a.Points < 1 {
				return fmt.Errorf("question %d answer %d has invalid point value: %d", qi+1, ai+1, a.Points)
			}
			if ai > 0 && a.Points >= prev {
				return fmt.Errorf("question %d answer point values must be strictly descending (%d then %d)", qi+1, prev, a.Points)
			}
			prev = a.Points
		}
	}

	return nil
}
