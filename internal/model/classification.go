package model

// Classification tags a user question as answerable from the sales dataset
// or not.
type Classification int

const (
	// OutOfDomain means no sales vocabulary appears in the question.
	OutOfDomain Classification = iota
	// InDomain means the question can be resolved against the sales table.
	InDomain
)

func (c Classification) String() string {
	if c == InDomain {
		return "in_domain"
	}
	return "out_of_domain"
}
