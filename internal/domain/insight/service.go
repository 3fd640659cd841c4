package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/costtrack/internal/domain/activity"
	"github.com/rpggio/costtrack/internal/domain/metrics"
)

const (
	// FallbackText replaces the narrative when the generator fails.
	FallbackText = "Maliyet analizi sırasında bir hata oluştu. Verileri kontrol edip tekrar deneyin."
	// EmptyText replaces an empty generator response.
	EmptyText = "Yanıt alınamadı."
)

// ErrNoGenerator is reported in the logs when no text generator is configured.
var ErrNoGenerator = errors.New("no text generator configured")

// Generator produces text from a system instruction and a user prompt.
type Generator interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// Insight is a generated cost narrative for one project.
type Insight struct {
	ProjectID   string    `json:"project_id"`
	Text        string    `json:"text"`
	Fallback    bool      `json:"fallback"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Service produces AI cost narratives.
type Service struct {
	metrics   *metrics.Service
	generator Generator
	activity  activity.Logger
	logger    *slog.Logger
}

// NewService creates an insight service. generator may be nil, in which case
// every request yields the fallback text.
func NewService(metricsSvc *metrics.Service, generator Generator, activityLog activity.Logger, logger *slog.Logger) *Service {
	return &Service{metrics: metricsSvc, generator: generator, activity: activityLog, logger: logger}
}

// Generate asks the model for a narrative about a project. Only an unknown
// project is an error; generator failures produce the fallback text.
func (s *Service) Generate(ctx context.Context, projectID string) (*Insight, error) {
	snap, err := s.metrics.ProjectSnapshot(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := &Insight{ProjectID: projectID}
	text, err := s.call(ctx, BuildPrompt(snap.Project, snap.Metrics))
	switch {
	case err != nil:
		if s.logger != nil {
			s.logger.Error("insight generation failed", "project_id", projectID, "error", err)
		}
		out.Text = FallbackText
		out.Fallback = true
	case strings.TrimSpace(text) == "":
		out.Text = EmptyText
		out.Fallback = true
	default:
		out.Text = text
	}
	out.GeneratedAt = time.Now()

	activity.Record(ctx, s.activity, s.logger, &activity.ActivityEntry{
		ProjectID:    projectID,
		EntityID:     projectID,
		ActivityType: activity.TypeInsightGenerated,
		Summary:      fmt.Sprintf("insight for %q (fallback=%t)", snap.Project.Name, out.Fallback),
	})
	return out, nil
}

func (s *Service) call(ctx context.Context, prompt string) (string, error) {
	if s.generator == nil {
		return "", ErrNoGenerator
	}
	return s.generator.Generate(ctx, SystemInstruction, prompt)
}
