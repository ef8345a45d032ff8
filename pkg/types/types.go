package types

import "time"

// PredictionResult is the outcome of a single leaf analysis.
// Confidence is the probability mass assigned to the chosen label, in [0,1].
type PredictionResult struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// HistoryEntry is one persisted analysis record. Entries are immutable
// after creation and owned by the history store.
type HistoryEntry struct {
	ID           string    `json:"id"`
	Label        Label     `json:"label"`
	Confidence   float64   `json:"confidence"`
	Timestamp    time.Time `json:"timestamp"`
	ImagePreview string    `json:"image_preview,omitempty"`
}

// Language selects a localization of the advice text
type Language string

const (
	LangEnglish Language = "en"
	LangHindi   Language = "hi"
)

// AdviceRecord holds the static treatment and prevention guidance for a
// diagnosis, localized per language
type AdviceRecord struct {
	Severity   Severity            `json:"severity"`
	Treatment  map[Language]string `json:"treatment"`
	Prevention map[Language]string `json:"prevention"`
}
