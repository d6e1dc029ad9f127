package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/autostream-agent/server/internal/agent/conversations"
	"github.com/autostream-agent/server/internal/agent/model"
	"github.com/autostream-agent/server/internal/agent/parsers"
	"github.com/autostream-agent/server/internal/agent/prompts"
	errx "github.com/autostream-agent/server/internal/core/error"
	"github.com/autostream-agent/server/internal/observability"
	logx "github.com/autostream-agent/server/pkg/logger"
	"github.com/rs/zerolog"
)

// Config holds everything needed to compose the orchestrator end-to-end.
type Config struct {
	Repo       model.SessionRepository
	Classifier model.Classifier
	Retriever  model.Retriever
	Generator  model.Generator
	Tool       model.LeadCapture
	Core       model.OrchestratorConfig
	Business   model.BusinessConfig
	Metrics    *observability.Metrics
}

// Orchestrator drives the dialogue state machine. Each inbound message is one
// turn: resolve the input class, look up the transition, run its action, and
// commit the staged session exactly once.
type Orchestrator struct {
	repo       model.SessionRepository
	classifier model.Classifier
	retriever  model.Retriever
	generator  model.Generator
	tool       model.LeadCapture
	cfg        model.OrchestratorConfig
	business   model.BusinessConfig
	windower   *conversations.Windower
	metrics    *observability.Metrics
	log        zerolog.Logger
}

func New(cfg Config) (*Orchestrator, error) {
	if cfg.Repo == nil {
		return nil, fmt.Errorf("session repository is nil")
	}
	if cfg.Classifier == nil || cfg.Generator == nil || cfg.Retriever == nil {
		return nil, fmt.Errorf("ports are not properly initialized")
	}
	if cfg.Tool == nil {
		return nil, fmt.Errorf("lead capture tool is nil")
	}
	if cfg.Metrics == nil {
		return nil, fmt.Errorf("metrics is nil")
	}

	return &Orchestrator{
		repo:       cfg.Repo,
		classifier: cfg.Classifier,
		retriever:  cfg.Retriever,
		generator:  cfg.Generator,
		tool:       cfg.Tool,
		cfg:        cfg.Core,
		business:   cfg.Business,
		windower:   conversations.NewWindower(cfg.Core.HistoryWindow),
		metrics:    cfg.Metrics,
		log:        logx.With("orchestrator"),
	}, nil
}

// Reply is the outward result of one turn.
type Reply struct {
	Response string
	ThreadID string
	Intent   string
}

// HandleTurn processes one inbound message for a thread. Turns for the same
// thread are serialised in arrival order; the session is mutated on a staging
// copy and committed once, after the reply has been composed.
func (o *Orchestrator) HandleTurn(ctx context.Context, threadID, message string) (Reply, error) {
	started := time.Now()

	threadID = strings.TrimSpace(threadID)
	message = strings.TrimSpace(message)
	if threadID == "" {
		return Reply{}, errx.NewInput(errors.New("missing thread_id"), "thread_id is required")
	}
	if message == "" {
		return Reply{}, errx.NewInput(errors.New("missing message"), "message is required")
	}

	unlock := o.repo.Lock(threadID)
	defer unlock()

	sess, err := o.repo.GetOrCreate(ctx, threadID)
	if err != nil {
		return Reply{}, err
	}

	class, intent, slotValue := o.classifyInput(ctx, sess, message)

	tr, ok := transitionTable[sess.State][class]
	if !ok {
		// unreachable with a well-formed table; fail closed into clarification
		o.log.Error().Str("state", string(sess.State)).Str("class", string(class)).Msg("no transition entry")
		tr = transition{next: sess.State, act: actClarify}
	}

	response := o.execute(ctx, sess, tr, message, slotValue)

	sess.AppendTurn(model.RoleUser, message, intent)
	sess.AppendTurn(model.RoleAgent, response, "")

	if err := o.repo.Commit(ctx, threadID, sess); err != nil {
		return Reply{}, err
	}

	o.metrics.ObserveTurn(intent, time.Since(started))
	o.log.Debug().
		Str("thread_id", threadID).
		Str("intent", intent).
		Str("state", string(sess.State)).
		Msg("turn committed")

	return Reply{Response: response, ThreadID: threadID, Intent: intent}, nil
}

// classifyInput resolves the transition-table input class for the current
// message. In an AWAITING_* state the message is interpreted as the expected
// slot value and the classifier is not consulted; otherwise the classifier
// port decides, with any failure or unknown label degrading to unknown.
func (o *Orchestrator) classifyInput(ctx context.Context, sess *model.Session, message string) (inputClass, string, string) {
	if sess.State.AwaitingSlot() {
		value, err := extractSlot(sess.State, message)
		if err != nil {
			o.log.Debug().Err(err).Str("thread_id", sess.ThreadID).Msg("slot value rejected")
			return classSlotInvalid, string(model.IntentHighIntent), ""
		}
		return classSlotValid, string(model.IntentHighIntent), value
	}

	label := model.IntentUnknown
	err := o.withRetry(ctx, "classifier", o.cfg.Timeouts.ClassifierTimeout(), func(ctx context.Context) error {
		raw, cerr := o.classifier.Classify(ctx, message, o.windower.Recent(sess.History))
		if cerr != nil {
			return cerr
		}
		label = parsers.NormalizeIntentLabel(string(raw))
		return nil
	})
	if err != nil {
		// classification failures are never surfaced; the turn degrades to a
		// clarifying reply
		o.log.Warn().Err(err).Str("thread_id", sess.ThreadID).Msg("classification degraded to unknown")
		label = model.IntentUnknown
	}
	return inputClass(label), string(label), ""
}

// execute runs the action for a transition and returns the reply text. The
// session's next state is tr.next unless the action lands elsewhere (tool
// failure, exhausted retries).
func (o *Orchestrator) execute(ctx context.Context, sess *model.Session, tr transition, message, slotValue string) string {
	switch tr.act {
	case actWelcome:
		sess.State = tr.next
		return o.welcomeReply()

	case actClarify:
		sess.State = tr.next
		return o.clarifyReply()

	case actStartEpisode:
		// a fresh episode always starts from an empty lead, even from COMPLETE
		sess.Lead = model.Lead{}
		sess.RetryCount = 0
		sess.State = tr.next
		o.metrics.ActiveEpisodes.Inc()
		return o.askNameReply()

	case actAnswerInquiry:
		sess.State = tr.next
		return o.answerInquiry(ctx, sess, message)

	case actAcceptSlot:
		return o.acceptSlot(ctx, sess, tr, slotValue)

	case actRepromptSlot:
		return o.repromptSlot(sess)
	}

	sess.State = tr.next
	return o.clarifyReply()
}

// answerInquiry runs retrieval-augmented generation. Retrieval failures and
// empty results degrade to generation without context; generation failures
// degrade to the fallback reply. The turn always completes.
func (o *Orchestrator) answerInquiry(ctx context.Context, sess *model.Session, message string) string {
	var passages []model.Passage
	err := o.withRetry(ctx, "retriever", o.cfg.Timeouts.RetrieverTimeout(), func(ctx context.Context) error {
		var rerr error
		passages, rerr = o.retriever.Retrieve(ctx, message, o.cfg.RetrievalK)
		return rerr
	})
	if err != nil {
		o.log.Warn().Err(err).Str("thread_id", sess.ThreadID).Msg("retrieval failed, answering without context")
		passages = nil
	}

	req := model.GenerateRequest{
		System:  prompts.RenderResponseSystem(o.business, passages),
		History: o.windower.Recent(sess.History),
		Message: message,
	}

	var text string
	err = o.withRetry(ctx, "generator", o.cfg.Timeouts.GeneratorTimeout(), func(ctx context.Context) error {
		var gerr error
		text, gerr = o.generator.Generate(ctx, req)
		return gerr
	})
	if err != nil || strings.TrimSpace(text) == "" {
		return o.generationFallbackReply()
	}
	return text
}

// acceptSlot writes the validated value into the lead and advances. Filling
// the platform slot additionally invokes the lead-capture tool; that is the
// only call site, so the tool runs at most once per episode.
func (o *Orchestrator) acceptSlot(ctx context.Context, sess *model.Session, tr transition, value string) string {
	switch sess.State {
	case model.StateAwaitingName:
		sess.Lead.Name = value
		sess.RetryCount = 0
		sess.State = tr.next
		return o.askEmailReply(value)

	case model.StateAwaitingEmail:
		sess.Lead.Email = value
		sess.RetryCount = 0
		sess.State = tr.next
		return o.askPlatformReply()

	case model.StateAwaitingPlatform:
		sess.Lead.Platform = value
		sess.RetryCount = 0

		err := o.once(ctx, "lead_capture", o.cfg.Timeouts.ToolTimeout(), func(ctx context.Context) error {
			return o.tool.Capture(ctx, sess.Lead)
		})
		if err != nil {
			// keep the prior fields so the user only resubmits the last slot;
			// clearing platform preserves the AWAITING_PLATFORM invariant
			sess.Lead.Platform = ""
			o.log.Warn().Err(err).Str("thread_id", sess.ThreadID).Msg("lead capture failed")
			return o.captureFailedReply()
		}

		sess.State = tr.next
		o.metrics.LeadsCaptured.Inc()
		o.metrics.ActiveEpisodes.Dec()
		o.log.Info().
			Str("thread_id", sess.ThreadID).
			Str("platform", sess.Lead.Platform).
			Msg("lead captured")
		return o.confirmationReply(sess.Lead)
	}

	sess.State = tr.next
	return o.clarifyReply()
}

// repromptSlot handles an invalid slot value: bump the retry counter and ask
// again, or abandon the episode entirely once the configured maximum is hit.
func (o *Orchestrator) repromptSlot(sess *model.Session) string {
	slot := slotName(sess.State)
	sess.RetryCount++
	o.metrics.SlotRejections.WithLabelValues(slot).Inc()

	if sess.RetryCount >= o.cfg.MaxSlotRetries {
		o.log.Info().
			Str("thread_id", sess.ThreadID).
			Str("slot", slot).
			Int("retries", sess.RetryCount).
			Msg("lead episode abandoned")
		sess.ResetEpisode()
		o.metrics.LeadsAbandoned.Inc()
		o.metrics.ActiveEpisodes.Dec()
		return o.abandonReply()
	}

	return o.repromptReply(sess.State)
}

// ResetThread returns a session to the resting state, wiping any partial
// lead. History is preserved; sessions are never deleted in this design.
func (o *Orchestrator) ResetThread(ctx context.Context, threadID string) error {
	threadID = strings.TrimSpace(threadID)
	if threadID == "" {
		return errx.NewInput(errors.New("missing thread_id"), "thread_id is required")
	}

	unlock := o.repo.Lock(threadID)
	defer unlock()

	sess, err := o.repo.GetOrCreate(ctx, threadID)
	if err != nil {
		return err
	}
	if sess.State.AwaitingSlot() {
		o.metrics.ActiveEpisodes.Dec()
	}
	sess.ResetEpisode()
	return o.repo.Commit(ctx, threadID, sess)
}
