package models

// TopCoinsRequest is the query for the top listing endpoint.
type TopCoinsRequest struct {
	Limit int `query:"limit" default:"50" validate:"gte=1,lte=250"`
}

// RecommendationsRequest selects the risk profile for scoring.
type RecommendationsRequest struct {
	RiskProfile string `query:"risk_profile" default:"moderate" validate:"oneof=conservative moderate aggressive"`
}

// SentimentRequest scores a single text.
type SentimentRequest struct {
	Text string `json:"text" validate:"required"`
}

// SentimentBatchRequest scores several texts and aggregates them.
type SentimentBatchRequest struct {
	Texts []string `json:"texts" validate:"required,min=1"`
}
