package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"ChurnSentinel/internal/classifier"
	"ChurnSentinel/internal/input"
	"ChurnSentinel/internal/notifier"
	"ChurnSentinel/internal/recorder"
	"ChurnSentinel/internal/scoring"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Sender delivers chat messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// CheckObserver receives artifact check results.
type CheckObserver interface {
	ObserveArtifactCheck(artifact, result string)
}

// Artifact is a model file being watched, with the fingerprint it had
// when the model was loaded.
type Artifact struct {
	Role string
	Info classifier.Info
}

// Scheduler runs the artifact integrity watch and answers chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Scorer    *scoring.Scorer
	Artifacts []Artifact
	Notifier  Sender // nil disables alerts
	Recorder  recorder.Recorder
	Observer  CheckObserver // may be nil
	Ctx       context.Context

	mu         sync.Mutex
	lastResult map[string]string
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc *scoring.Scorer, artifacts []Artifact, tn Sender, rec recorder.Recorder) *Scheduler {
	return &Scheduler{
		Cron:       cron.New(cron.WithSeconds()),
		Scorer:     sc,
		Artifacts:  artifacts,
		Notifier:   tn,
		Recorder:   rec,
		Ctx:        ctx,
		lastResult: make(map[string]string),
	}
}

// RegisterAll registers the artifact check task.
func (s *Scheduler) RegisterAll(checkCron string) error {
	if _, err := s.Cron.AddFunc(checkCron, s.CheckArtifacts); err != nil {
		return fmt.Errorf("register artifact check: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running check to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// CheckArtifacts re-fingerprints every watched artifact file. Loaded models
// are never replaced; a mismatch is only logged, recorded and reported.
func (s *Scheduler) CheckArtifacts() {
	checkID := uuid.NewString()
	log.Printf("[INFO] running artifact check %s", checkID)

	for _, a := range s.Artifacts {
		evt := &recorder.ArtifactCheckEvent{
			CheckID:   checkID,
			Role:      a.Role,
			Path:      a.Info.Path,
			Expected:  a.Info.Fingerprint,
			CheckedAt: time.Now(),
		}

		sum, err := classifier.Fingerprint(a.Info.Path)
		switch {
		case err != nil:
			evt.Result = recorder.CheckMissing
			evt.Error = err.Error()
			if !errors.Is(err, fs.ErrNotExist) {
				log.Printf("[WARN] read artifact %s: %v", a.Info.Path, err)
			}
		case sum != a.Info.Fingerprint:
			evt.Result = recorder.CheckChanged
			evt.Actual = sum
		default:
			evt.Result = recorder.CheckUnchanged
			evt.Actual = sum
		}

		if s.Observer != nil {
			s.Observer.ObserveArtifactCheck(a.Role, evt.Result)
		}
		if err := s.Recorder.RecordArtifactCheck(evt); err != nil {
			log.Printf("[ERROR] record artifact check: %v", err)
		}

		if !s.transitioned(a.Role, evt.Result) {
			continue
		}
		switch evt.Result {
		case recorder.CheckUnchanged:
			log.Printf("[INFO] artifact %s matches the loaded %s model again", a.Info.Path, a.Role)
		default:
			log.Printf("[WARN] artifact %s is %s since the %s model was loaded", a.Info.Path, strings.ToLower(evt.Result), a.Role)
			s.trySend(notifier.FormatArtifactAlert(a.Role, a.Info.Path, evt.Result, evt.Error))
		}
	}
}

// transitioned records result for role and reports whether it differs from
// the previous check. The first check counts as a transition only when the
// file no longer matches.
func (s *Scheduler) transitioned(role, result string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, seen := s.lastResult[role]
	s.lastResult[role] = result
	if !seen {
		return result != recorder.CheckUnchanged
	}
	return prev != result
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return helpText
	}
	name := strings.ToLower(fields[0])
	if i := strings.Index(name, "@"); i >= 0 {
		name = name[:i]
	}

	switch name {
	case "/score":
		form, err := parseArgs(fields[1:])
		if err != nil {
			return "❌ " + html.EscapeString(err.Error())
		}
		a, err := s.Scorer.Evaluate(form.Customer)
		if err != nil {
			log.Printf("[ERROR] score command: %v", err)
			return "❌ scoring failed: " + html.EscapeString(err.Error())
		}
		return notifier.FormatAssessment(a)
	case "/whatif":
		form, err := parseArgs(fields[1:])
		if err != nil {
			return "❌ " + html.EscapeString(err.Error())
		}
		sim, err := s.Scorer.Simulate(form.Customer, form.Override)
		if err != nil {
			log.Printf("[ERROR] whatif command: %v", err)
			return "❌ scoring failed: " + html.EscapeString(err.Error())
		}
		return notifier.FormatSimulation(sim)
	case "/models":
		infos := make([]classifier.Info, len(s.Artifacts))
		for i, a := range s.Artifacts {
			infos[i] = a.Info
		}
		return notifier.FormatModels(infos)
	default:
		return helpText
	}
}

const helpText = `Available commands:
• /score age=40 credit_score=650 geography=France gender=Male tenure=3 balance=50000 num_products=2 is_active=1 salary=60000
• /whatif [same fields] sim_products=4 sim_active=1
• /models
Omitted fields take the dashboard defaults.`

// parseArgs reads key=value pairs into a dashboard form.
func parseArgs(args []string) (input.Form, error) {
	v := url.Values{}
	for _, arg := range args {
		key, val, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return input.Form{}, fmt.Errorf("expected key=value, got %q", arg)
		}
		v.Set(strings.ToLower(key), val)
	}
	return input.Parse(v)
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
