package usecase

import (
	"regexp"
	"strings"
	"time"

	"github.com/jonreiter/govader"

	"CoinSage/internal/domain/models"
	xlogger "CoinSage/pkg/logger"
)

var (
	urlPattern      = regexp.MustCompile(`http\S+|www\.\S+`)
	nonAlphaPattern = regexp.MustCompile(`[^a-zA-Z\s]`)
)

// SentimentScorer scores text polarity with a lexicon model. Independent of
// the market pipeline; availability is gated by an operating-hours window.
type SentimentScorer struct {
	analyzer  *govader.SentimentIntensityAnalyzer
	startHour int
	endHour   int
	logger    *xlogger.Logger

	now func() time.Time // injectable for tests
}

func NewSentimentScorer(startHour, endHour int, logger *xlogger.Logger) *SentimentScorer {
	return &SentimentScorer{
		analyzer:  govader.NewSentimentIntensityAnalyzer(),
		startHour: startHour,
		endHour:   endHour,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *SentimentScorer) operating() bool {
	hour := s.now().Hour()
	return s.startHour <= hour && hour < s.endHour
}

// CleanText lowercases, strips URLs and non-alphabetic characters, and
// collapses whitespace. A result of "" is a valid zero-signal input.
func CleanText(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = nonAlphaPattern.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

// Score analyzes one text. Polarity is the VADER compound in [-1,1];
// subjectivity is the non-neutral token proportion in [0,1].
func (s *SentimentScorer) Score(text string) (*models.Sentiment, error) {
	if !s.operating() {
		return nil, models.ErrOutOfHours
	}

	cleaned := CleanText(text)
	scores := s.analyzer.PolarityScores(cleaned)

	polarity := scores.Compound
	subjectivity := scores.Positive + scores.Negative
	compound := (polarity + 1) / 2

	return &models.Sentiment{
		Polarity:      polarity,
		Subjectivity:  subjectivity,
		CompoundScore: compound,
		Sentiment:     sentimentLabel(compound),
	}, nil
}

// ScoreBatch scores each text, skipping entries that fail, and aggregates
// the rest.
func (s *SentimentScorer) ScoreBatch(texts []string) (*models.AggregateSentiment, error) {
	if !s.operating() {
		return nil, models.ErrOutOfHours
	}

	results := make([]models.Sentiment, 0, len(texts))
	var totalPolarity, totalSubjectivity float64

	for _, text := range texts {
		res, err := s.Score(text)
		if err != nil {
			s.logger.Warn("text scoring skipped", xlogger.Error(err))
			continue
		}
		results = append(results, *res)
		totalPolarity += res.Polarity
		totalSubjectivity += res.Subjectivity
	}

	if len(results) == 0 {
		return nil, models.ErrNoValidTexts
	}

	n := float64(len(results))
	avgPolarity := totalPolarity / n
	avgSubjectivity := totalSubjectivity / n
	avgCompound := (avgPolarity + 1) / 2

	return &models.AggregateSentiment{
		IndividualResults: results,
		AggregateResults: models.SentimentSummary{
			AveragePolarity:     avgPolarity,
			AverageSubjectivity: avgSubjectivity,
			AverageCompound:     avgCompound,
			OverallSentiment:    sentimentLabel(avgCompound),
		},
	}, nil
}

// sentimentLabel maps a compound score in [0,1] to a five-level label. The
// chain is evaluated strictly top-down; the later branches are partially
// shadowed by the earlier ones, which is part of the documented contract.
func sentimentLabel(compound float64) string {
	switch {
	case compound >= 0.6:
		return "very positive"
	case compound >= 0.2:
		return "positive"
	case compound > 0.4:
		return "neutral"
	case compound > 0.2:
		return "negative"
	default:
		return "very negative"
	}
}
