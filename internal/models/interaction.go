package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Metric keys present on every stored interaction.
const (
	MetricResponseTime   = "response_time"
	MetricVoiceClarity   = "voice_clarity"
	MetricEmotionalValue = "emotional_value"
)

// MetricSet holds the per-interaction numeric metrics. After a write it always
// contains all known keys (missing ones are filled with 0.0).
type MetricSet map[string]float64

func DefaultMetrics() MetricSet {
	return MetricSet{
		MetricResponseTime:   0.0,
		MetricVoiceClarity:   0.0,
		MetricEmotionalValue: 0.0,
	}
}

// Merge returns the defaults overlaid with the caller-supplied values.
func (m MetricSet) Merge(overrides MetricSet) MetricSet {
	out := make(MetricSet, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func (m MetricSet) Get(key string) float64 {
	if m == nil {
		return 0.0
	}
	return m[key]
}

// Interaction is one message turn in a session: an append-only, immutable row.
// The store assigns ID and Timestamp at write time.
type Interaction struct {
	ID        uint                          `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	SessionID string                        `gorm:"column:session_id;type:text;index" json:"session_id"`
	Role      string                        `gorm:"column:role;type:text" json:"role"` // "system" | "user" | "assistant"
	Content   string                        `gorm:"column:content;type:text" json:"content"`
	Metrics   datatypes.JSONType[MetricSet] `gorm:"column:metrics;type:jsonb" json:"metrics"`
	Timestamp time.Time                     `gorm:"column:timestamp;type:timestamptz;index" json:"timestamp"`
}

func (Interaction) TableName() string { return "interactions" }
