package pipeline

import (
	"time"

	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/prompt"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/routing"
	"github.com/DridhaTeamHQ/Tria-pilot-sub003/internal/scene"
)

// Stage statuses for attempt debug records.
const (
	StagePass = "PASS"
	StageFail = "FAIL"
	StageSkip = "SKIP"
)

// StageRecord is one step of an attempt's debug trail.
type StageRecord struct {
	Stage    int
	Name     string
	Status   string
	Duration time.Duration
	Note     string
}

// Attempt is the unit of work flowing through the pipeline. One attempt
// produces at most one accepted image; rejections surface to the
// caller, the core never auto-retries an attempt.
type Attempt struct {
	ID        string
	SessionID string
	UseCase   routing.UseCase
	Engine    routing.Engine

	Scene  *scene.IntelOutput
	Prompt *prompt.Assembled

	Image    []byte // nil unless accepted
	MimeType string

	SimBefore *float64
	SimAfter  *float64
	Accepted  bool

	Stages []StageRecord
}

func (a *Attempt) record(stage int, name, status string, start time.Time, note string) {
	a.Stages = append(a.Stages, StageRecord{
		Stage:    stage,
		Name:     name,
		Status:   status,
		Duration: time.Since(start),
		Note:     note,
	})
}
