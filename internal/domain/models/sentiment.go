package models

// Sentiment is the score of one text.
type Sentiment struct {
	Polarity      float64 `json:"polarity"`
	Subjectivity  float64 `json:"subjectivity"`
	CompoundScore float64 `json:"compound_score"`
	Sentiment     string  `json:"sentiment"`
}

// SentimentSummary aggregates a batch of individual scores.
type SentimentSummary struct {
	AveragePolarity     float64 `json:"average_polarity"`
	AverageSubjectivity float64 `json:"average_subjectivity"`
	AverageCompound     float64 `json:"average_compound"`
	OverallSentiment    string  `json:"overall_sentiment"`
}

// AggregateSentiment is the batch scoring response.
type AggregateSentiment struct {
	IndividualResults []Sentiment      `json:"individual_results"`
	AggregateResults  SentimentSummary `json:"aggregate_results"`
}
