package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/DeprecatedLuar/avosig/internal/auth"
	"github.com/DeprecatedLuar/avosig/internal/config"
	"github.com/DeprecatedLuar/avosig/internal/transport"
	"github.com/DeprecatedLuar/avosig/internal/ui"
	"github.com/DeprecatedLuar/avosig/internal/verify"
)

// State is a step of a signature run.
type State int

const (
	StateCollecting State = iota
	StateLoggingIn
	StateDeriving
	StateVerifying
	StateSuccess
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "COLLECTING"
	case StateLoggingIn:
		return "LOGGING_IN"
	case StateDeriving:
		return "DERIVING"
	case StateVerifying:
		return "VERIFYING"
	case StateSuccess:
		return "SUCCESS"
	case StateFailed:
		return "FAILED"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// SuccessBanner precedes the signature on the status stream.
const SuccessBanner = "SUCCESS.\n\nBelow is your Avocado API signature:"

// Runner drives one collect, login, derive, verify, print sequence.
type Runner struct {
	Config   *config.Config
	Prompter ui.Prompter
	Doer     transport.Doer
	Log      hclog.Logger

	// Out receives the signature or the failure message; Status the banner.
	Out    io.Writer
	Status io.Writer

	// SkipVerify prints the derived signature without calling the couple endpoint.
	SkipVerify bool
}

// Run executes the workflow and returns the terminal state. The error is
// non-nil only for input problems (bad developer id, unreadable prompt),
// which abort before anything is sent.
func (r *Runner) Run(ctx context.Context) (State, error) {
	r.defaults()

	state := StateCollecting
	r.transition(state)

	creds, err := CollectCredentials(r.Prompter)
	if err != nil {
		return state, err
	}

	state = StateLoggingIn
	r.transition(state)

	client := auth.NewClient(r.Config, r.Doer, creds, r.Log)
	cookie, err := client.Login(ctx)
	if err != nil {
		r.Log.Debug("no signature produced", "error", err)
		return r.fail(), nil
	}

	state = StateDeriving
	r.transition(state)

	session := client.Sign(cookie)
	if !session.Valid() {
		return r.fail(), nil
	}

	if r.SkipVerify {
		r.Log.Warn("skipping verification, signature is untested")
		return r.succeed(session.Signature), nil
	}

	state = StateVerifying
	r.transition(state)

	resp, err := verify.New(r.Config, r.Doer, r.Log).Verify(ctx, session.Signature, session.CookieValue)
	if err != nil || resp == nil {
		return r.fail(), nil
	}

	return r.succeed(session.Signature), nil
}

func (r *Runner) defaults() {
	if r.Config == nil {
		r.Config = config.Default()
	}
	if r.Prompter == nil {
		r.Prompter = ui.NewTerminal()
	}
	if r.Doer == nil {
		r.Doer = transport.NewHTTPClient(nil)
	}
	if r.Log == nil {
		r.Log = hclog.NewNullLogger()
	}
	if r.Out == nil {
		r.Out = os.Stdout
	}
	if r.Status == nil {
		r.Status = os.Stderr
	}
}

func (r *Runner) transition(s State) {
	r.Log.Debug("state", "state", s.String())
}

func (r *Runner) fail() State {
	r.transition(StateFailed)
	fmt.Fprintln(r.Out, config.FailureMessage)
	return StateFailed
}

func (r *Runner) succeed(signature string) State {
	r.transition(StateSuccess)
	fmt.Fprintln(r.Status, SuccessBanner)
	fmt.Fprintln(r.Out, signature)
	return StateSuccess
}
