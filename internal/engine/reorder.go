package engine

import (
	"errors"
	"fmt"

	"vlist/internal/model"
)

// ErrStaleIntent is returned for a reorder intent that no longer applies to what is on screen.
var ErrStaleIntent = errors.New("stale reorder intent")

// NotVisibleError reports an intent naming an identity outside the materialized window.
type NotVisibleError struct {
	Identity model.Identity
}

func (e *NotVisibleError) Error() string {
	return fmt.Sprintf("row %d is not in the visible window", e.Identity)
}

func (e *NotVisibleError) Unwrap() error { return ErrStaleIntent }

// Controller applies drag-and-drop intents to an engine.
type Controller struct {
	e *Engine
}

func (e *Engine) Controller() *Controller { return &Controller{e: e} }

// Apply moves intent.Moved into intent.Target's slot. An intent is rejected (and nothing changes)
// when both sides name the same row or either row is not in the current window.
func (c *Controller) Apply(intent model.ReorderIntent) error {
	e := c.e
	if err := c.check(intent); err != nil {
		e.log.Debug("reorder rejected", "moved", intent.Moved, "target", intent.Target, "err", err)
		return err
	}
	if err := e.index.MoveTo(intent.Moved, intent.Target); err != nil {
		e.log.Debug("reorder rejected", "moved", intent.Moved, "target", intent.Target, "err", err)
		return err
	}
	e.log.Debug("reorder applied", "moved", intent.Moved, "target", intent.Target, "overrides", e.index.Len())
	e.afterReorder()
	return nil
}

func (c *Controller) check(intent model.ReorderIntent) error {
	if intent.Moved == intent.Target {
		return fmt.Errorf("%w: row %d dropped onto itself", ErrStaleIntent, intent.Moved)
	}
	for _, id := range []model.Identity{intent.Moved, intent.Target} {
		if !c.e.inWindow(id) {
			return &NotVisibleError{Identity: id}
		}
	}
	return nil
}

// Reorder is shorthand for e.Controller().Apply(intent).
func (e *Engine) Reorder(intent model.ReorderIntent) error {
	return e.Controller().Apply(intent)
}
