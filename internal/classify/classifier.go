// Package classify implements the domain gate that decides whether a user
// question can be answered from the sales dataset.
//
// The gate is a cheap local check, not a model call: clearly off-topic input
// never reaches SQL generation.
package classify

import (
	"strings"

	"github.com/salescope/salescope/internal/model"
)

// defaultKeywords is the fixed vocabulary of business terms tied to the
// sales_data table. Matching is by substring, so plural and compound forms
// of these terms are covered.
var defaultKeywords = []string{"sales", "product", "channel", "city", "quantity", "units"}

// Classifier tags questions as in-domain or out-of-domain.
type Classifier struct {
	keywords []string
}

// New returns a classifier over the default sales vocabulary.
func New() *Classifier {
	return NewWithKeywords(defaultKeywords)
}

// NewWithKeywords returns a classifier over a custom vocabulary. Keywords are
// matched case-insensitively.
func NewWithKeywords(keywords []string) *Classifier {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &Classifier{keywords: lowered}
}

// Classify is deterministic and total: any keyword occurring anywhere in the
// question marks it in-domain, otherwise it is out-of-domain. It never fails.
func (c *Classifier) Classify(question string) model.Classification {
	lowered := strings.ToLower(question)
	for _, kw := range c.keywords {
		if strings.Contains(lowered, kw) {
			return model.InDomain
		}
	}
	return model.OutOfDomain
}
