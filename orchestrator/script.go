package orchestrator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Turn is one conversation utterance in ingestion order.
type Turn struct {
	Speaker int    `yaml:"speaker"`
	Text    string `yaml:"text"`
}

type Script struct {
	Title string `yaml:"title"`
	Turns []Turn `yaml:"turns"`
}

func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s Script
	if err := yaml.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	if len(s.Turns) == 0 {
		return nil, fmt.Errorf("script %s: no turns", path)
	}
	for i, t := range s.Turns {
		if t.Speaker < 0 {
			return nil, fmt.Errorf("script %s: turn %d has negative speaker id", path, i)
		}
	}
	return &s, nil
}

// NumSpeakers is max speaker id + 1; ids need not be contiguous.
func (s *Script) NumSpeakers() int {
	max := 0
	for _, t := range s.Turns {
		if t.Speaker > max {
			max = t.Speaker
		}
	}
	return max + 1
}
