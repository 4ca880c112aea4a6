package models

// AnalyticsSeries is the column-aligned projection served to analytics
// consumers: the three slices always have equal length.
type AnalyticsSeries struct {
	Timestamps    []string  `json:"timestamps"` // "2006-01-02 15:04"
	ResponseTimes []float64 `json:"response_times"`
	ClarityScores []float64 `json:"clarity_scores"`
}

func EmptySeries() *AnalyticsSeries {
	return &AnalyticsSeries{
		Timestamps:    []string{},
		ResponseTimes: []float64{},
		ClarityScores: []float64{},
	}
}
