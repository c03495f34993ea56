package models

// Recommendation is one top-ranked coin with its risk assessment. Ephemeral;
// recomputed on every request.
type Recommendation struct {
	Coin       string   `json:"coin"`
	Price      float64  `json:"price"`
	Change24h  float64  `json:"change_24h"`
	RiskScore  int      `json:"risk_score"`
	Analysis   []string `json:"analysis"`
	Prediction string   `json:"prediction"`
}

// RecommendationSet is the full response of the recommendation engine.
type RecommendationSet struct {
	SpecificRecommendations []Recommendation `json:"specific_recommendations"`
	Disclaimer              string           `json:"disclaimer"`
}
