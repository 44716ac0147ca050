package crisis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NeuralTrust/SafeChat/pkg/config"
	domain "github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"github.com/NeuralTrust/SafeChat/pkg/domain/notification"
	"github.com/NeuralTrust/SafeChat/pkg/domain/toggle"
	"github.com/NeuralTrust/SafeChat/pkg/infra/prometheus"
	"github.com/NeuralTrust/SafeChat/pkg/infra/workerpool"
	"github.com/sirupsen/logrus"
)

const alertTitle = "Crisis alert"

//go:generate mockery --name=RiskScorer --dir=. --output=./mocks --filename=risk_scorer_mock.go --case=underscore --with-expecter

// RiskScorer rates how likely a message expresses self-harm intent, from 0.0 to 1.0.
type RiskScorer interface {
	Score(ctx context.Context, text string) (float64, error)
}

//go:generate mockery --name=Recorder --dir=. --output=./mocks --filename=recorder_mock.go --case=underscore --with-expecter
type Recorder interface {
	// Submit evaluates the message in the background; it never blocks the caller.
	Submit(conversationID, userID, text string)
	EvaluateAndFlag(ctx context.Context, conversationID, userID, text string)
	Shutdown()
}

type RecorderDeps struct {
	Logger   *logrus.Logger
	Toggles  toggle.Checker
	Repo     domain.Repository
	Notifier notification.OperatorNotifier
	Pool     workerpool.Pool
	// Scorer and Exporter are optional.
	Scorer   RiskScorer
	Exporter domain.EventExporter
}

type recorder struct {
	logger      *logrus.Logger
	toggles     toggle.Checker
	repo        domain.Repository
	notifier    notification.OperatorNotifier
	pool        workerpool.Pool
	scorer      RiskScorer
	exporter    domain.EventExporter
	detector    *KeywordDetector
	taskTimeout time.Duration
}

func NewRecorder(cfg config.CrisisConfig, deps RecorderDeps) Recorder {
	return &recorder{
		logger:      deps.Logger,
		toggles:     deps.Toggles,
		repo:        deps.Repo,
		notifier:    deps.Notifier,
		pool:        deps.Pool,
		scorer:      deps.Scorer,
		exporter:    deps.Exporter,
		detector:    NewKeywordDetector(cfg.Keywords),
		taskTimeout: cfg.TaskTimeout,
	}
}

func (r *recorder) Submit(conversationID, userID, text string) {
	task := func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.taskTimeout)
		defer cancel()
		r.EvaluateAndFlag(ctx, conversationID, userID, text)
	}
	if !r.pool.Submit(task) {
		r.logger.WithField("conversation_id", conversationID).Warn("crisis recorder is shut down, evaluation skipped")
	}
}

func (r *recorder) Shutdown() {
	r.pool.Shutdown()
}

func (r *recorder) EvaluateAndFlag(ctx context.Context, conversationID, userID, text string) {
	if strings.TrimSpace(conversationID) == "" || strings.TrimSpace(userID) == "" || strings.TrimSpace(text) == "" {
		return
	}
	if !r.toggles.IsEnabled(ctx, toggle.CrisisAlertsEnabled) {
		return
	}

	keyword, found := r.detector.Detect(text)
	if !found {
		return
	}

	log := r.logger.WithFields(logrus.Fields{
		"conversation_id": conversationID,
		"user_id":         userID,
		"keyword":         keyword,
	})

	flag := domain.NewFlag(conversationID, userID, keyword, r.score(ctx, text, log))
	if err := r.repo.Save(ctx, flag); err != nil {
		if errors.Is(err, domain.ErrAlreadyFlagged) {
			prometheus.CrisisFlagsTotal.WithLabelValues(prometheus.FlagOutcomeDuplicate).Inc()
			log.Debug("crisis flag already recorded for conversation")
			return
		}
		prometheus.CrisisFlagsTotal.WithLabelValues(prometheus.FlagOutcomeError).Inc()
		log.WithError(err).Error("failed to save crisis flag")
		return
	}
	prometheus.CrisisFlagsTotal.WithLabelValues(prometheus.FlagOutcomeRecorded).Inc()
	log.Warn("crisis flag recorded")

	body := alertBody(flag)
	if err := r.notifier.NotifyAdmins(ctx, alertTitle, body); err != nil {
		log.WithError(err).Error("failed to notify admins of crisis flag")
	}
	if err := r.notifier.EmailAdmins(ctx, alertTitle, body); err != nil {
		log.WithError(err).Error("failed to email admins of crisis flag")
	}
	if r.exporter != nil {
		if err := r.exporter.Export(ctx, domain.NewFlaggedEvent(flag)); err != nil {
			log.WithError(err).Error("failed to export crisis event")
		}
	}
}

func (r *recorder) score(ctx context.Context, text string, log *logrus.Entry) *float64 {
	if r.scorer == nil {
		return nil
	}
	s, err := r.scorer.Score(ctx, text)
	if err != nil {
		log.WithError(err).Warn("risk scoring failed, recording flag without score")
		return nil
	}
	return &s
}

func alertBody(flag *domain.Flag) string {
	body := fmt.Sprintf("Conversation %s (user %s) matched crisis keyword %q.",
		flag.ConversationID, flag.UserID, flag.Keyword)
	if flag.RiskScore != nil {
		body += fmt.Sprintf(" Risk score: %.2f.", *flag.RiskScore)
	}
	return body + " Please review the conversation."
}
