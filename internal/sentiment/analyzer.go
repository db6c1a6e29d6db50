// Package sentiment scores text polarity with the VADER lexicon, extended by
// an embedded table of social media terms.
package sentiment

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/jonreiter/govader"
	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var slangLexicon []byte

// maxValence bounds a single lexicon entry, as in VADER
const maxValence = 4.0

// Lexicon holds extra word valences merged over the VADER lexicon
type Lexicon struct {
	Words map[string]float64 `yaml:"words"`
}

// ParseLexicon decodes a YAML lexicon document
func ParseLexicon(data []byte) (*Lexicon, error) {
	lex := &Lexicon{}
	if err := yaml.Unmarshal(data, lex); err != nil {
		return nil, fmt.Errorf("failed to decode lexicon: %w", err)
	}
	if len(lex.Words) == 0 {
		return nil, fmt.Errorf("lexicon has no words")
	}
	for word, v := range lex.Words {
		if v < -maxValence || v > maxValence {
			return nil, fmt.Errorf("valence of %q out of range: %v", word, v)
		}
	}
	return lex, nil
}

// Analyzer scores text polarity. It is read-only after construction and safe
// for concurrent use.
type Analyzer struct {
	sia *govader.SentimentIntensityAnalyzer
}

// New returns an Analyzer backed by VADER plus the embedded slang lexicon
func New() (*Analyzer, error) {
	lex, err := ParseLexicon(slangLexicon)
	if err != nil {
		return nil, err
	}
	return NewWithLexicon(lex), nil
}

// NewWithLexicon returns an Analyzer with lex merged over the VADER lexicon.
// Entries in lex win over VADER's own.
func NewWithLexicon(lex *Lexicon) *Analyzer {
	sia := govader.NewSentimentIntensityAnalyzer()
	for word, v := range lex.Words {
		sia.Lexicon[strings.ToLower(word)] = v
	}
	return &Analyzer{sia: sia}
}

// Polarity returns the VADER compound score of text, in [-1, 1]. Text without
// any opinion word scores 0.
func (a *Analyzer) Polarity(text string) float64 {
	text = normalize(text)
	if text == "" {
		return 0
	}
	return a.sia.PolarityScores(text).Compound
}

// normalize collapses whitespace to single spaces and strips quote apostrophes
// around words. VADER only splits on spaces.
func normalize(text string) string {
	text = strings.NewReplacer("’", "'", "‘", "'").Replace(text)

	fields := strings.Fields(text)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "'")
		if f == "" {
			continue
		}
		words = append(words, f)
	}
	return strings.Join(words, " ")
}
