package contact

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/karkencompany/website/pkg/email"
	"github.com/karkencompany/website/pkg/i18n"
	"github.com/karkencompany/website/pkg/logger"
	"github.com/karkencompany/website/pkg/statemachine"
	"github.com/karkencompany/website/pkg/validator"
)

type State = statemachine.StringState

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateInvalid    State = "invalid"
	StateSubmitting State = "submitting"
	StateSubmitted  State = "submitted"
	StateFailed     State = "failed"
)

const (
	eventSubmit        = statemachine.StringEvent("submit")
	eventReject        = statemachine.StringEvent("reject")
	eventAccept        = statemachine.StringEvent("accept")
	eventMisconfigured = statemachine.StringEvent("misconfigured")
	eventSent          = statemachine.StringEvent("sent")
	eventFail          = statemachine.StringEvent("fail")
	eventEdit          = statemachine.StringEvent("edit")
	eventReset         = statemachine.StringEvent("reset")
)

// Reason explains why a submission ended in StateFailed.
type Reason string

const (
	ReasonNone          Reason = ""
	ReasonNotConfigured Reason = "not_configured"
	ReasonTransport     Reason = "transport"
	ReasonTimeout       Reason = "timeout"
)

// Placeholders sent for optional fields left empty.
const (
	NotProvided  = "Not provided"
	NotSpecified = "Not specified"
)

const DefaultSendTimeout = 15 * time.Second

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// Notice is the transient message shown after a submit attempt.
// Title and text are translation keys.
type Notice struct {
	Kind     NoticeKind `json:"kind"`
	TitleKey string     `json:"title"`
	TextKey  string     `json:"text"`
}

func noticeFor(key string, kind NoticeKind) *Notice {
	return &Notice{Kind: kind, TitleKey: key + ".title", TextKey: key + ".text"}
}

var (
	noticeSent          = noticeFor("contact.toast.sent", NoticeSuccess)
	noticeInvalid       = noticeFor("contact.toast.invalid", NoticeWarning)
	noticeNotConfigured = noticeFor("contact.toast.notConfigured", NoticeError)
	noticeFailed        = noticeFor("contact.toast.failed", NoticeError)
	noticeTimeout       = noticeFor("contact.toast.timeout", NoticeError)
	noticeRateLimited   = noticeFor("contact.toast.rateLimited", NoticeWarning)
)

// Controller owns one contact form: its values, field errors and
// submission state. A Controller is safe for concurrent use, but it models
// a single visitor's form.
type Controller struct {
	mu      sync.Mutex
	form    Form
	errs    validator.ValidationErrors
	notice  *Notice
	reason  Reason
	machine *statemachine.Machine

	transport email.Transport
	creds     email.Credentials
	loc       *i18n.Localizer
	timeout   time.Duration
	log       *slog.Logger
	observers []func(from, to State)
}

type Option func(*Controller)

// WithLocalizer sets the language used for the interest label sent by email.
func WithLocalizer(l *i18n.Localizer) Option {
	return func(c *Controller) { c.loc = l }
}

// WithTimeout bounds the transport call. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithStateObserver is called after every state change. fn must not call
// back into the Controller.
func WithStateObserver(fn func(from, to State)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.observers = append(c.observers, fn)
		}
	}
}

// NewController returns an empty form in StateIdle.
func NewController(transport email.Transport, creds email.Credentials, opts ...Option) *Controller {
	c := &Controller{
		transport: transport,
		creds:     creds,
		timeout:   DefaultSendTimeout,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(logger.Component("contact"))

	editable := []statemachine.State{StateIdle, StateInvalid, StateFailed}
	c.machine = statemachine.MustNew(StateIdle,
		statemachine.WithTransitionFrom(editable, StateValidating, eventSubmit),
		statemachine.WithTransition(StateValidating, StateInvalid, eventReject),
		statemachine.WithTransition(StateValidating, StateSubmitting, eventAccept),
		statemachine.WithTransition(StateValidating, StateFailed, eventMisconfigured),
		statemachine.WithTransition(StateSubmitting, StateSubmitted, eventSent),
		statemachine.WithTransition(StateSubmitting, StateFailed, eventFail),
		statemachine.WithTransitionFrom(editable, StateIdle, eventEdit),
		statemachine.WithTransition(StateSubmitted, StateIdle, eventReset),
		statemachine.WithObserver(func(_ context.Context, from, to statemachine.State, _ statemachine.Event) {
			for _, fn := range c.observers {
				fn(State(from.Name()), State(to.Name()))
			}
		}),
	)
	return c
}

// State returns the current submission state.
func (c *Controller) State() State {
	return State(c.machine.Current().Name())
}

// Form returns the current field values.
func (c *Controller) Form() Form {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Errors returns the field errors of the last validation that are still
// attached to a field.
func (c *Controller) Errors() validator.ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append(validator.ValidationErrors(nil), c.errs...)
}

// Notice returns the notice of the last submit attempt, if any.
func (c *Controller) Notice() (Notice, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notice == nil {
		return Notice{}, false
	}
	return *c.notice, true
}

// Reason returns why the last attempt failed.
func (c *Controller) Reason() Reason {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reason
}

// SetField updates one value and clears that field's error only.
// The state returns to StateIdle.
func (c *Controller) SetField(ctx context.Context, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.State() {
	case StateValidating, StateSubmitting, StateSubmitted:
		return ErrLocked
	}
	if !c.form.Set(field, value) {
		return ErrUnknownField
	}
	c.errs = dropField(c.errs, field)
	c.notice = nil
	c.reason = ReasonNone
	return c.machine.Fire(ctx, eventEdit, nil)
}

// Submit validates the form and, when it is valid, sends it once.
// It never returns an error: the outcome is the returned state, together
// with Errors, Notice and Reason.
func (c *Controller) Submit(ctx context.Context) State {
	c.mu.Lock()
	if err := c.machine.Fire(ctx, eventSubmit, nil); err != nil {
		c.mu.Unlock()
		c.log.DebugContext(ctx, "submit ignored", slog.String("state", c.State().Name()), logger.Error(err))
		return c.State()
	}

	form := c.form.Sanitized()
	if err := form.Validate(); err != nil {
		c.errs = validator.ExtractValidationErrors(err)
		c.notice = noticeInvalid
		c.reason = ReasonNone
		c.fire(ctx, eventReject)
		c.mu.Unlock()
		return StateInvalid
	}
	c.errs = nil

	if !c.creds.Configured() {
		c.notice = noticeNotConfigured
		c.reason = ReasonNotConfigured
		c.fire(ctx, eventMisconfigured)
		c.mu.Unlock()
		c.log.WarnContext(ctx, "email delivery is not configured",
			logger.Event("contact.not_configured"))
		return StateFailed
	}

	c.fire(ctx, eventAccept)
	msg := c.creds.Message(c.params(form))
	c.mu.Unlock()

	// Edits are rejected while submitting, so the lock is not held over I/O.
	start := time.Now()
	sendCtx, cancel := context.WithTimeout(ctx, c.timeout)
	err := c.transport.Send(sendCtx, msg)
	timedOut := errors.Is(err, context.DeadlineExceeded) || errors.Is(sendCtx.Err(), context.DeadlineExceeded)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.reason = ReasonTransport
		c.notice = noticeFailed
		switch {
		case errors.Is(err, email.ErrNotConfigured):
			c.reason, c.notice = ReasonNotConfigured, noticeNotConfigured
		case timedOut:
			c.reason, c.notice = ReasonTimeout, noticeTimeout
		}
		c.fire(ctx, eventFail)
		c.log.ErrorContext(ctx, "failed to send contact inquiry",
			logger.Error(err),
			logger.Event("contact.send_failed"),
			slog.String("reason", string(c.reason)),
			logger.Duration(time.Since(start)),
		)
		return StateFailed
	}

	c.form = Form{}
	c.notice = noticeSent
	c.reason = ReasonNone
	c.fire(ctx, eventSent)
	c.log.InfoContext(ctx, "contact inquiry sent",
		logger.Event("contact.sent"),
		logger.Duration(time.Since(start)),
	)
	return StateSubmitted
}

// Reset clears a sent form so a new message can be written.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.machine.Fire(ctx, eventReset, nil); err != nil {
		return err
	}
	c.form = Form{}
	c.errs = nil
	c.notice = nil
	c.reason = ReasonNone
	return nil
}

// fire applies a transition that the table guarantees to exist.
func (c *Controller) fire(ctx context.Context, evt statemachine.Event) {
	if err := c.machine.Fire(ctx, evt, nil); err != nil {
		c.log.ErrorContext(ctx, "unexpected state transition", logger.Error(err))
	}
}

// params maps the form onto the template parameters of the email service.
func (c *Controller) params(f Form) map[string]string {
	p := map[string]string{
		"from_name":  f.Name,
		"from_email": f.Email,
		"company":    orDefault(f.Company, NotProvided),
		"phone":      orDefault(f.Phone, NotProvided),
		"interest":   NotSpecified,
		"message":    f.Message,
	}
	if validInterest(f.Interest) {
		p["interest"] = f.Interest
		if c.loc != nil {
			p["interest"] = c.loc.Text(InterestLabelKey(f.Interest))
		}
	}
	return p
}

// InterestLabelKey is the translation key of an interest label.
func InterestLabelKey(interest string) string {
	return "contact.form.interestLabels." + interest
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func dropField(errs validator.ValidationErrors, field string) validator.ValidationErrors {
	out := errs[:0:0]
	for _, e := range errs {
		if e.Field != field {
			out = append(out, e)
		}
	}
	return out
}
