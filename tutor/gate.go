package tutor

import (
	"strings"

	"github.com/SaiNageswarS/go-collection-boot/ds"
	"github.com/SaiNageswarS/lab-tutor-gateway/model"
)

// DefaultVocabulary is the closed set of programming terms and interrogatives
// that admit a question into the tutoring pipeline.
var DefaultVocabulary = []string{
	"algorithm", "algorithms", "function", "functions", "code", "implement", "debug", "error",
	"variable", "variables", "loop", "loops", "array", "arrays", "list", "lists",
	"dict", "dictionary", "dictionaries", "class", "classes", "object", "objects",
	"bfs", "dfs", "graph", "graphs", "tree", "trees", "sort", "sorting", "search",
	"python", "javascript", "react", "html", "css", "programming", "syntax",
	"data", "structure", "structures", "comprehension", "comprehensions",
	"what", "how", "why", "when", "where", "explain", "help", "tutorial",
}

// ScopeGate is a substring classifier over a fixed vocabulary. Matching is
// case-insensitive and ignores word boundaries, so "classical" matches
// "class".
type ScopeGate struct {
	terms []string
}

// NewScopeGate lower-cases and de-duplicates the vocabulary, dropping empty
// terms so they cannot admit everything.
func NewScopeGate(vocabulary []string) *ScopeGate {
	seen := ds.NewSet[string]()
	terms := make([]string, 0, len(vocabulary))
	for _, term := range vocabulary {
		term = strings.ToLower(term)
		if term == "" || seen.Contains(term) {
			continue
		}
		seen.Add(term)
		terms = append(terms, term)
	}
	return &ScopeGate{terms: terms}
}

// IsAdmissible reports whether question may be answered against lab. A nil
// lab (unknown skill or lab id) is never admissible.
func (g *ScopeGate) IsAdmissible(question string, lab *model.LabContent) bool {
	if lab == nil || question == "" {
		return false
	}

	normalized := strings.ToLower(question)
	for _, term := range g.terms {
		if strings.Contains(normalized, term) {
			return true
		}
	}
	return false
}
