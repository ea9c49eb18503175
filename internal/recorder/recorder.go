package recorder

import "time"

// Check results.
const (
	CheckUnchanged = "UNCHANGED"
	CheckChanged   = "CHANGED"
	CheckMissing   = "MISSING"
)

// ArtifactLoadEvent records a model artifact loaded at startup.
type ArtifactLoadEvent struct {
	Role        string // "logistic" or "forest"
	Name        string
	Kind        string
	Path        string
	Fingerprint string
	Features    int
}

// ArtifactCheckEvent records one scheduled integrity check of an artifact file.
type ArtifactCheckEvent struct {
	CheckID   string
	Role      string
	Path      string
	Expected  string
	Actual    string
	Result    string // CheckUnchanged, CheckChanged or CheckMissing
	Error     string
	CheckedAt time.Time
}

// Recorder keeps an audit trail of the model artifacts in use. It never
// stores customer records or predictions.
type Recorder interface {
	RecordArtifactLoad(evt *ArtifactLoadEvent) error
	RecordArtifactCheck(evt *ArtifactCheckEvent) error
	Close() error
}
