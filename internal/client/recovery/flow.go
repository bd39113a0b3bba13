// Package recovery implements the password-reset journey: the user submits
// an email, enters the one-time code that was sent to it and chooses a new
// password. Flow owns the journey state; each stage is a small component
// that gets its inputs from the flow and reports completion back through a
// callback.
package recovery

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/authflow/internal/client/notify"
	"github.com/dmitrijs2005/authflow/internal/client/routepath"
	"github.com/dmitrijs2005/authflow/internal/logging"
)

var (
	ErrStepOrder     = errors.New("recovery step out of order")
	ErrIncompleteOTP = errors.New("please enter all 6 digits")
)

// Notice texts.
const (
	MsgCodeSent      = "Password Reset OTP send Successfully"
	MsgPasswordReset = "Password Reset Successfully"
)

type Step int

const (
	StepEmailEntry Step = iota
	StepOTPEntry
	StepNewPassword
)

func (s Step) String() string {
	switch s {
	case StepEmailEntry:
		return "email"
	case StepOTPEntry:
		return "otp"
	case StepNewPassword:
		return "new-password"
	default:
		return "unknown"
	}
}

// API is the set of backend calls the journey needs.
type API interface {
	SendResetOTP(ctx context.Context, email string) error
	VerifyResetOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, otp string, newPassword []byte) error
}

// State is the journey data. It is never persisted.
type State struct {
	Email string
	OTP   string
	Step  Step
}

type Option func(*Flow)

// WithServerOTPCheck makes the code stage ask the backend to validate the
// code before moving on. Without it any six digits are accepted and only
// the final reset call checks the code.
func WithServerOTPCheck(enabled bool) Option {
	return func(f *Flow) { f.verifyOTP = enabled }
}

func WithLogger(l logging.Logger) Option {
	return func(f *Flow) { f.logger = l }
}

type Flow struct {
	api       API
	notifier  notify.Notifier
	logger    logging.Logger
	verifyOTP bool

	mu    sync.Mutex
	state State
	done  bool
}

func NewFlow(api API, notifier notify.Notifier, opts ...Option) *Flow {
	f := &Flow{api: api, notifier: notifier, logger: logging.Discard()}
	if f.notifier == nil {
		f.notifier = notify.Discard{}
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Done reports whether the password was reset. The state is gone by then.
func (f *Flow) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Redirect is the page to show once the journey is over, or "" while it
// runs.
func (f *Flow) Redirect() string {
	if f.Done() {
		return routepath.Login
	}
	return ""
}

// Abandon discards the state. Nothing is sent to the backend.
func (f *Flow) Abandon() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.Step != StepEmailEntry {
		f.logger.Debug(context.Background(), "recovery abandoned", "step", f.state.Step.String())
	}
	f.state = State{}
	f.done = false
}

// advance moves exactly one step forward and applies update to the state.
func (f *Flow) advance(to Step, update func(*State)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done || to != f.state.Step+1 {
		return ErrStepOrder
	}
	update(&f.state)
	f.state.Step = to
	return nil
}

func (f *Flow) finish() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done || f.state.Step != StepNewPassword {
		return ErrStepOrder
	}
	f.state = State{}
	f.done = true
	return nil
}

func (f *Flow) at(step Step) (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.done || f.state.Step != step {
		return State{}, ErrStepOrder
	}
	return f.state, nil
}

// EmailEntry returns the first stage.
func (f *Flow) EmailEntry() (*EmailEntry, error) {
	if _, err := f.at(StepEmailEntry); err != nil {
		return nil, err
	}
	return &EmailEntry{
		api:      f.api,
		notifier: f.notifier,
		onSent: func(email string) error {
			return f.advance(StepOTPEntry, func(s *State) { s.Email = email })
		},
	}, nil
}

// OTPEntry returns the code stage for the submitted email.
func (f *Flow) OTPEntry() (*OTPEntry, error) {
	st, err := f.at(StepOTPEntry)
	if err != nil {
		return nil, err
	}
	return &OTPEntry{
		email:    st.Email,
		verify:   f.verifyOTP,
		api:      f.api,
		notifier: f.notifier,
		onVerified: func(code string) error {
			return f.advance(StepNewPassword, func(s *State) { s.OTP = code })
		},
	}, nil
}

// NewPassword returns the last stage.
func (f *Flow) NewPassword() (*NewPassword, error) {
	st, err := f.at(StepNewPassword)
	if err != nil {
		return nil, err
	}
	return &NewPassword{
		email:    st.Email,
		otp:      st.OTP,
		api:      f.api,
		notifier: f.notifier,
		onReset:  f.finish,
	}, nil
}
