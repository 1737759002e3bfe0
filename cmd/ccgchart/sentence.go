package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nlplab-oss/ccgchart/model"
)

// jsonSupertag is one candidate lexical category for a word position, as
// named in a sentence file.
type jsonSupertag struct {
	Category string  `json:"category"`
	LogProb  float64 `json:"logProb"`
}

// jsonWord is one sentence position's raw input.
type jsonWord struct {
	Word      string         `json:"word"`
	POS       string         `json:"pos"`
	Supertags []jsonSupertag `json:"supertags"`
}

// jsonSentenceFile is the on-disk shape a sentence file decodes into.
type jsonSentenceFile struct {
	Words []jsonWord `json:"words"`
}

// jsonSentence is a model.Sentence backed by a decoded jsonSentenceFile.
// The category string named in the file is handed to the registered rule
// engine uninterpreted; this package never parses category syntax itself.
type jsonSentence struct {
	words   []jsonWord
	lexicon map[string]int
}

func newJSONSentence(f *jsonSentenceFile) *jsonSentence {
	s := &jsonSentence{words: f.Words, lexicon: make(map[string]int, len(f.Words))}
	for _, w := range f.Words {
		if _, ok := s.lexicon[w.Word]; !ok {
			s.lexicon[w.Word] = len(s.lexicon) + 1
		}
	}
	return s
}

func (s *jsonSentence) Len() int          { return len(s.words) }
func (s *jsonSentence) Word(i int) string { return s.words[i].Word }
func (s *jsonSentence) POS(i int) string  { return s.words[i].POS }

func (s *jsonSentence) LexiconID(word string) int {
	return s.lexicon[word]
}

func (s *jsonSentence) Supertags(i int) []model.SupertagCandidate {
	cands := make([]model.SupertagCandidate, len(s.words[i].Supertags))
	for j, st := range s.words[i].Supertags {
		cands[j] = model.SupertagCandidate{Category: st.Category, LogProb: st.LogProb}
	}
	return cands
}

// jsonSentenceLoader implements model.SentenceLoader by decoding the flat
// JSON shape above. It is this CLI's own lightweight default loader, not a
// stand-in for the upstream supertagger-ingestion pipeline, which remains
// out of scope here.
type jsonSentenceLoader struct{}

func (jsonSentenceLoader) Load(path string) (model.Sentence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ccgchart: cannot read sentence file %s: %w", path, err)
	}
	var f jsonSentenceFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ccgchart: cannot parse sentence file %s: %w", path, err)
	}
	return newJSONSentence(&f), nil
}

var _ model.SentenceLoader = jsonSentenceLoader{}
