package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/salescope/salescope/internal/model"
)

func TestClassify(t *testing.T) {
	classifier := New()

	tests := []struct {
		name     string
		question string
		want     model.Classification
	}{
		{
			name:     "units question is in domain",
			question: "Tell me the top 5 days with highest daily units sold?",
			want:     model.InDomain,
		},
		{
			name:     "cricket question is out of domain",
			question: "Who won the cricket world cup in 2023?",
			want:     model.OutOfDomain,
		},
		{
			name:     "keyword match is case-insensitive",
			question: "What are the monthly SALES across Channel 1 since Jan 2025?",
			want:     model.InDomain,
		},
		{
			name:     "product keyword",
			question: "Which PRODUCT performed best last quarter?",
			want:     model.InDomain,
		},
		{
			name:     "city keyword inside larger word",
			question: "Show me electricity consumption trends",
			want:     model.InDomain, // substring policy: "city" occurs in "electricity"
		},
		{
			name:     "empty question",
			question: "",
			want:     model.OutOfDomain,
		},
		{
			name:     "weather question",
			question: "Will it rain in tomorrow's forecast?",
			want:     model.OutOfDomain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.question))
		})
	}
}

func TestClassifyIsDeterministic(t *testing.T) {
	classifier := New()
	question := "How many units did we sell in Pune?"

	first := classifier.Classify(question)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, classifier.Classify(question))
	}
}

func TestNewWithKeywordsNormalizes(t *testing.T) {
	classifier := NewWithKeywords([]string{"  Revenue ", ""})
	assert.Equal(t, model.InDomain, classifier.Classify("total revenue by region"))
	assert.Equal(t, model.OutOfDomain, classifier.Classify("total sales by region"))
}
