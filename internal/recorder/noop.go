package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordArtifactLoad(_ *ArtifactLoadEvent) error   { return nil }
func (n *NoopRecorder) RecordArtifactCheck(_ *ArtifactCheckEvent) error { return nil }
func (n *NoopRecorder) Close() error                                    { return nil }
