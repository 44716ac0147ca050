package chat

import (
	"context"

	"github.com/NeuralTrust/SafeChat/pkg/app/classifier"
	"github.com/NeuralTrust/SafeChat/pkg/app/crisis"
	"github.com/NeuralTrust/SafeChat/pkg/app/guardrail"
	"github.com/NeuralTrust/SafeChat/pkg/app/routing"
	"github.com/NeuralTrust/SafeChat/pkg/config"
	domainCrisis "github.com/NeuralTrust/SafeChat/pkg/domain/crisis"
	"github.com/NeuralTrust/SafeChat/pkg/domain/moderation"
	"github.com/NeuralTrust/SafeChat/pkg/domain/risk"
	"github.com/NeuralTrust/SafeChat/pkg/domain/user"
	"github.com/NeuralTrust/SafeChat/pkg/infra/prometheus"
	"github.com/NeuralTrust/SafeChat/pkg/infra/providers"
	"github.com/sirupsen/logrus"
)

const modelNone = "none"

//go:generate mockery --name=Orchestrator --dir=. --output=./mocks --filename=orchestrator_mock.go --case=underscore --with-expecter
type Orchestrator interface {
	Respond(ctx context.Context, req Request) *Response
}

type OrchestratorDeps struct {
	Logger     *logrus.Logger
	Resolver   ContextResolver
	Classifier classifier.Classifier
	Router     routing.Router
	Guardrail  guardrail.Guardrail
	Catalog    domainCrisis.ResourceCatalog
	Recorder   crisis.Recorder
}

type orchestrator struct {
	logger          *logrus.Logger
	resolver        ContextResolver
	classifier      classifier.Classifier
	router          routing.Router
	guardrail       guardrail.Guardrail
	catalog         domainCrisis.ResourceCatalog
	recorder        crisis.Recorder
	systemPrompt    string
	fallbackMessage string
}

func NewOrchestrator(cfg *config.Config, deps OrchestratorDeps) Orchestrator {
	return &orchestrator{
		logger:          deps.Logger,
		resolver:        deps.Resolver,
		classifier:      deps.Classifier,
		router:          deps.Router,
		guardrail:       deps.Guardrail,
		catalog:         deps.Catalog,
		recorder:        deps.Recorder,
		systemPrompt:    cfg.Router.SystemPrompt,
		fallbackMessage: cfg.Safety.FallbackMessage,
	}
}

func (o *orchestrator) Respond(ctx context.Context, req Request) (resp *Response) {
	// the crisis evaluation is queued even when the pipeline below panics
	defer o.recorder.Submit(req.ConversationID, req.UserID, req.Message)

	defer func() {
		if r := recover(); r != nil {
			o.logger.WithFields(logrus.Fields{
				"conversation_id": req.ConversationID,
				"user_id":         req.UserID,
			}).Errorf("chat pipeline panicked: %v", r)
			resp = o.fallback()
		}
	}()

	uctx := o.resolver.Resolve(ctx, req.UserID)
	if req.Device != "" {
		uctx.Device = req.Device
	}

	window := req.RecentUserMessages
	if window == nil {
		window = req.History
	}
	level := o.classifier.Classify(req.Message, window)
	prometheus.RiskClassificationsTotal.WithLabelValues(level.String()).Inc()

	reply := o.router.Route(ctx, providers.Request{
		ConversationID: req.ConversationID,
		UserID:         req.UserID,
		Message:        req.Message,
		History:        req.History,
		Context:        *uctx,
		SystemPrompt:   o.systemPrompt,
	})

	result := o.guardrail.Check(reply.Content, level)
	prometheus.ModerationActionsTotal.WithLabelValues(result.Action.String()).Inc()

	resp = &Response{
		Content:           result.FinalResponse,
		Provider:          reply.Provider,
		Model:             reply.Model,
		RiskLevel:         level,
		ModerationAction:  result.Action,
		ModerationWarning: warningFor(result.Action),
		ReviewRequired:    result.Action == moderation.Flagged,
	}
	if level.AtLeast(risk.High) {
		resp.CrisisFlagged = true
		resp.CrisisResources = o.resources(ctx, uctx)
	}
	if result.Action != moderation.None {
		o.logger.WithFields(logrus.Fields{
			"conversation_id": req.ConversationID,
			"provider":        reply.Provider,
			"action":          result.Action.String(),
			"reason":          result.ReasonOrEmpty(),
		}).Info("assistant reply moderated")
	}
	return resp
}

func (o *orchestrator) resources(ctx context.Context, uctx *user.Context) []domainCrisis.Resource {
	found, err := o.catalog.Find(ctx, uctx.Language, uctx.Region)
	if err != nil {
		o.logger.WithError(err).WithFields(logrus.Fields{
			"language": uctx.Language,
			"region":   uctx.Region,
		}).Error("failed to load crisis resources")
		return domainCrisis.DefaultResources()
	}
	if len(found) == 0 {
		return domainCrisis.DefaultResources()
	}
	return found
}

func (o *orchestrator) fallback() *Response {
	return &Response{
		Content:          o.fallbackMessage,
		Provider:         ProviderFallback,
		Model:            modelNone,
		RiskLevel:        risk.None,
		ModerationAction: moderation.None,
	}
}
