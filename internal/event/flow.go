package event

import "reflect"

// Controller is the wizard flow state machine: current step, the draft,
// and the per-step error map. It owns navigation policy (forward moves
// are gated on validation, backward moves never are) but no rendering
// and no I/O, so the whole flow is testable without a terminal.
type Controller struct {
	step      int
	draft     DraftEvent
	errs      map[int]string
	submitted bool
}

// New builds a controller positioned on the first step. The draft may be
// empty (create mode) or hydrated from a fetched event (edit mode); it
// is normalized either way.
func New(draft DraftEvent) *Controller {
	return &Controller{
		step:  StepBasicInfo,
		draft: draft.Normalize(),
		errs:  make(map[int]string),
	}
}

// Step returns the current step number (1-based).
func (c *Controller) Step() int { return c.step }

// Draft returns a copy of the current draft.
func (c *Controller) Draft() DraftEvent { return c.draft.Clone() }

// Err returns the recorded validation message for a step, or "".
func (c *Controller) Err(step int) string { return c.errs[step] }

// Apply merges a field-editor patch into the draft. A patch that
// actually changes the draft clears the current step's recorded error;
// the stale message would otherwise sit next to a field the user just
// fixed. A no-op patch (navigation flushing unchanged widget state)
// keeps both the draft and the error as they are, so backing out of a
// failed step never wipes its message.
func (c *Controller) Apply(p Patch) {
	next := p.Apply(c.draft)
	if reflect.DeepEqual(next, c.draft) {
		return
	}
	c.draft = next
	delete(c.errs, c.step)
}

// Next validates the current step and advances on success. On failure
// the error is recorded for the step and the position does not move.
// Returns whether the move happened.
func (c *Controller) Next() bool {
	if !c.check(c.step) {
		return false
	}
	if c.step < StepCount {
		c.step++
	}
	return true
}

// Prev moves one step back without validating. Partial input on the
// current step is kept in the draft.
func (c *Controller) Prev() bool {
	if c.step <= StepBasicInfo {
		return false
	}
	c.step--
	return true
}

// JumpTo moves directly to target. Backward jumps always succeed.
// Forward jumps validate every step from the current one up to but not
// including target; on the first failure the controller lands on that
// failing step with its error recorded, so the user can never skip past
// an incomplete step.
func (c *Controller) JumpTo(target int) bool {
	if target < StepBasicInfo || target > StepCount {
		return false
	}
	if target <= c.step {
		c.step = target
		return true
	}
	for s := c.step; s < target; s++ {
		if !c.check(s) {
			c.step = s
			return false
		}
	}
	c.step = target
	return true
}

// Submit validates the final step. Earlier steps were each validated on
// the way forward, so a passing last step means the whole draft is
// complete. Returns whether the draft is ready to send.
func (c *Controller) Submit() bool {
	return c.check(c.step)
}

// MarkSubmitted records a successful submission. The wizard uses it to
// stop accepting input once the event exists server-side.
func (c *Controller) MarkSubmitted() { c.submitted = true }

// Submitted reports whether the draft was successfully sent.
func (c *Controller) Submitted() bool { return c.submitted }

func (c *Controller) check(step int) bool {
	if err := Validate(step, c.draft); err != nil {
		c.errs[step] = err.Error()
		return false
	}
	delete(c.errs, step)
	return true
}
