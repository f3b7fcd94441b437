package reference

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/immigraid/internal/core/domain"
	"github.com/custodia-labs/immigraid/internal/core/ports/driven"
)

//go:embed data/*.yaml
var files embed.FS

// Ensure Store implements the interfaces.
var (
	_ driven.PathwaySource  = (*Store)(nil)
	_ driven.ResponseSource = (*Store)(nil)
)

// Store holds the decoded reference data.
type Store struct {
	pathways     []domain.Pathway
	rules        []domain.ResponseRule
	defaults     []domain.LocalizedText
	questionSets []domain.QuestionSet
}

type pathwaysFile struct {
	Pathways []domain.Pathway `yaml:"pathways"`
}

type responsesFile struct {
	Rules    []domain.ResponseRule  `yaml:"rules"`
	Defaults []domain.LocalizedText `yaml:"defaults"`
}

type questionsFile struct {
	QuestionSets []domain.QuestionSet `yaml:"question_sets"`
}

// Load decodes the embedded reference data.
func Load() (*Store, error) {
	var p pathwaysFile
	if err := decode("data/pathways.yaml", &p); err != nil {
		return nil, err
	}
	var r responsesFile
	if err := decode("data/responses.yaml", &r); err != nil {
		return nil, err
	}
	var q questionsFile
	if err := decode("data/questions.yaml", &q); err != nil {
		return nil, err
	}

	return &Store{
		pathways:     p.Pathways,
		rules:        r.Rules,
		defaults:     r.Defaults,
		questionSets: q.QuestionSets,
	}, nil
}

// MustLoad is like Load but panics on error. The data is compiled in, so a
// failure is a build defect.
func MustLoad() *Store {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	return s
}

func decode(name string, v any) error {
	data, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Pathways returns the pathways in display order.
func (s *Store) Pathways() ([]domain.Pathway, error) {
	out := make([]domain.Pathway, len(s.pathways))
	copy(out, s.pathways)
	return out, nil
}

// Rules returns the keyword reply rules in match order.
func (s *Store) Rules() []domain.ResponseRule {
	return s.rules
}

// Defaults returns the fallback replies.
func (s *Store) Defaults() []domain.LocalizedText {
	return s.defaults
}

// QuestionSets returns the long essay help content in match order.
func (s *Store) QuestionSets() []domain.QuestionSet {
	return s.questionSets
}
