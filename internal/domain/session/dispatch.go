package session

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/deskd/internal/domain/app"
	"github.com/GriffinCanCode/deskd/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/deskd/internal/shared/types"
)

// Dispatch results
const (
	ResultApplied = "applied"
	ResultIgnored = "ignored"
	ResultError   = "error"
)

// Result describes what a dispatch did
type Result struct {
	Applied bool   `json:"applied"`
	Kind    string `json:"kind"`
	Reason  string `json:"reason,omitempty"`
}

// Dispatch applies an intent to the session
func (m *Manager) Dispatch(ctx context.Context, in types.Intent) (Result, error) {
	return m.dispatch(ctx, in, false)
}

// DispatchFromMenu applies an intent fired by a menu item and closes the
// menu afterwards, whatever the intent did.
func (m *Manager) DispatchFromMenu(ctx context.Context, in types.Intent) (Result, error) {
	return m.dispatch(ctx, in, true)
}

func (m *Manager) dispatch(ctx context.Context, in types.Intent, fromMenu bool) (Result, error) {
	cmd := Parse(in)
	timer := monitoring.NewTimer(m.metrics, cmd.Kind.String())

	m.mu.Lock()
	res, err := m.apply(ctx, cmd)
	if fromMenu && m.menus.Hide() {
		res.Applied = true
	}
	var snap Snapshot
	if res.Applied {
		m.seq++
		snap = m.snapshot()
	}
	m.mu.Unlock()

	status := ResultIgnored
	switch {
	case err != nil:
		status = ResultError
	case res.Applied:
		status = ResultApplied
	}
	duration := timer.Stop(status)

	m.logger.Debug("Intent dispatched",
		zap.String("type", in.Type),
		zap.String("kind", res.Kind),
		zap.String("result", status),
		zap.String("reason", res.Reason),
		zap.Bool("menu", fromMenu),
		zap.Duration("duration", duration),
		zap.Error(err))

	if res.Applied {
		m.publish(snap)
	}
	return res, err
}

// apply runs a parsed command. Must hold lock.
func (m *Manager) apply(ctx context.Context, cmd Command) (Result, error) {
	res := Result{Kind: cmd.Kind.String(), Reason: cmd.Reason}

	switch cmd.Kind {
	case KindAction:
		if r, ok := m.reducers[cmd.Action]; ok {
			changed, err := r(ctx, cmd.Payload)
			res.Applied = changed
			return res, err
		}
		if m.apps.Launch(cmd.Action, cmd.Payload) {
			res.Applied = true
			return res, nil
		}
		res.Reason = "unknown action"
		return res, nil

	case KindHandler:
		h := m.handlers[cmd.Handler]
		ms, _ := m.menus.Session()
		changed, err := h(ctx, cmd.Payload, ms)
		res.Applied = changed
		return res, err
	}

	return res, nil
}

// ignorable reports errors that a handler treats as a no-op
func ignorable(err error) bool {
	return errors.Is(err, app.ErrAppNotFound) || errors.Is(err, app.ErrNotInstalled)
}
