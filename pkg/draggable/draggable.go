package draggable

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/neophoriac/SimpleDraggable/pkg/errors"
	"github.com/neophoriac/SimpleDraggable/pkg/geometry"
	"github.com/neophoriac/SimpleDraggable/pkg/observability"
	"github.com/neophoriac/SimpleDraggable/pkg/store"
)

// Config configures a Draggable instance.
type Config struct {
	// Target is the element being repositioned. Required.
	Target Element

	// Handle is the element whose press starts a drag session.
	// Defaults to Target.
	Handle Element

	// ID is the non-empty instance identifier used as the persistence key.
	// Instances sharing a store must use distinct IDs.
	ID string

	// Env answers viewport/document geometry queries. Required.
	Env Environment

	// Events wires pointer input. Required.
	Events Events

	// Store is the persistence collaborator. Optional; nil behaves like a
	// disabled store.
	Store store.Store

	// Persist controls whether offsets are written to (and restored from)
	// Store. When false and Store is present, any stale value for ID is
	// removed at enable time and nothing is ever written.
	Persist bool

	// Logger is optional. Defaults to a discard logger.
	Logger *log.Logger
}

// Draggable repositions a target element by dragging a handle, keeps the
// resulting offset within the legal range for the current container, and
// persists it across views.
//
// All methods and event handlers are serialized by an internal mutex; a
// change notification arriving during an active drag session updates only the
// recorded and rendered offset, never the session's pointer bookkeeping. A
// subsequent pointer move therefore resumes from pre-notification numbers and
// may jump visibly. This race is inherited from the design and intentionally
// not serialized away.
type Draggable struct {
	mu sync.Mutex

	target  Element
	handle  Element
	id      string
	env     Environment
	events  Events
	st      store.Store
	persist bool
	log     *log.Logger

	enabled bool
	closed  bool

	// ctx scopes store operations issued from event handlers. Set at Enable.
	ctx context.Context

	// offset is the last recorded translation offset.
	offset geometry.Offset

	// Live session state, valid only while dragging.
	dragging bool
	last     Point
	base     Point // pre-drag pixel position: box position minus translation
	rng      geometry.Range
	started  time.Time

	// Handlers are created once at construction and reused for every attach,
	// so a detach always removes the listener that was added.
	pressFn   PointerHandler
	moveFn    PointerHandler
	releaseFn PointerHandler

	cancelPress   func()
	cancelMove    func()
	cancelRelease func()
	cancelSub     func()
}

// New validates the configuration and creates a disabled instance. Call
// Enable to attach input handling and restore any persisted offset.
//
// Configuration errors are fatal and signal programmer error: a missing
// target, a missing environment or event source, or an invalid identifier.
func New(cfg Config) (*Draggable, error) {
	if cfg.Target == nil {
		return nil, errors.New(errors.ErrCodeInvalidTarget, "target element is required")
	}
	if cfg.Handle == nil {
		cfg.Handle = cfg.Target
	}
	if err := errors.ValidateIdentifier(cfg.ID); err != nil {
		return nil, err
	}
	if cfg.Env == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "environment is required")
	}
	if cfg.Events == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "event source is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	d := &Draggable{
		target:  cfg.Target,
		handle:  cfg.Handle,
		id:      cfg.ID,
		env:     cfg.Env,
		events:  cfg.Events,
		st:      cfg.Store,
		persist: cfg.Persist && cfg.Store != nil,
		log:     cfg.Logger.With("draggable", cfg.ID),
	}
	d.pressFn = d.handlePress
	d.moveFn = d.handleMove
	d.releaseFn = d.handleRelease
	return d, nil
}

// ID returns the instance identifier.
func (d *Draggable) ID() string { return d.id }

// Offset returns the last recorded translation offset.
func (d *Draggable) Offset() geometry.Offset {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.offset
}

// Enabled reports whether drag input is currently accepted.
func (d *Draggable) Enabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// Enable attaches input handling, recomputes geometry, and restores the
// persisted offset. It fails if the target's effective position mode is
// neither fixed nor absolute: dragging requires the element to be taken out
// of normal flow.
//
// The store subscription is established once, on the first Enable, and lives
// until Close; Disable leaves it in place and notifications are ignored
// while disabled.
func (d *Draggable) Enable(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return errors.New(errors.ErrCodeClosed, "draggable %q is closed", d.id)
	}
	if d.enabled {
		return nil
	}

	if mode := d.target.Mode(); !mode.Supported() {
		return errors.New(errors.ErrCodeUnsupportedPosition,
			"position mode %q: draggable requires fixed or absolute", mode)
	}

	d.ctx = ctx
	d.cancelPress = d.events.OnPress(d.handle, d.pressFn)

	if d.cancelSub == nil && d.persist {
		cancel, err := d.st.Subscribe(ctx, d.handleStoreEvent)
		if err != nil {
			d.cancelPress()
			d.cancelPress = nil
			return errors.Wrap(errors.ErrCodeStore, err, "subscribe %q", d.id)
		}
		d.cancelSub = cancel
	}

	// Persistence off: clear any stale stored value so other views do not
	// keep replaying it.
	if !d.persist && d.st != nil {
		if err := d.st.Delete(ctx, d.id); err != nil {
			d.log.Warn("clear stale offset", "err", err)
		} else {
			observability.Store().OnDelete(d.id)
		}
	}

	stored := d.readStored(ctx)
	applied := d.reconcile(stored)
	observability.Sync().OnRestore(d.id, stored.X, stored.Y, applied.X, applied.Y)

	d.enabled = true
	d.log.Debug("enabled", "offset", applied)
	return nil
}

// Disable detaches input handling and resets the visual offset to zero.
// Persisted data is kept; a later Enable restores it.
func (d *Draggable) Disable() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.enabled {
		return
	}
	d.detachInputLocked()
	d.enabled = false
	d.target.SetTranslation(geometry.Offset{})
	d.log.Debug("disabled")
}

// Close permanently detaches all listeners and the store subscription.
// The instance cannot be re-enabled afterwards.
func (d *Draggable) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.detachInputLocked()
	if d.cancelSub != nil {
		d.cancelSub()
		d.cancelSub = nil
	}
	d.enabled = false
	d.closed = true
	return nil
}

// detachInputLocked cancels all input listeners and abandons any live
// session. Callers hold d.mu.
func (d *Draggable) detachInputLocked() {
	if d.cancelPress != nil {
		d.cancelPress()
		d.cancelPress = nil
	}
	if d.cancelMove != nil {
		d.cancelMove()
		d.cancelMove = nil
	}
	if d.cancelRelease != nil {
		d.cancelRelease()
		d.cancelRelease = nil
	}
	d.dragging = false
}

// overrideDisabled reports whether external code flagged the target
// non-draggable via the AttrDraggable annotation.
func (d *Draggable) overrideDisabled() bool {
	v, ok := d.target.Attr(AttrDraggable)
	return ok && (v == "false" || v == "0")
}

// containerSize selects the bounding container for the target's position
// mode: the viewport for fixed, the scrollable document for absolute. The
// mode was validated at Enable; anything else falls back to the viewport.
func (d *Draggable) containerSize() geometry.Size {
	if d.target.Mode() == geometry.ModeAbsolute {
		return d.env.DocumentSize()
	}
	return d.env.ViewportSize()
}

// handlePress transitions Idle -> Dragging on a primary-button press on the
// handle. Presses while a session is live are impossible by construction:
// the move and release listeners exist only while dragging, and a second
// press is swallowed by the dragging check.
func (d *Draggable) handlePress(ev PointerEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.enabled || d.dragging {
		return
	}
	if ev.Button != ButtonPrimary {
		return
	}
	if d.overrideDisabled() {
		return
	}

	// Geometry may have changed since setup or the last drag: re-measure
	// everything at session start.
	box := d.target.Bounds()
	attr, _ := d.target.Attr(AttrOffset)
	d.offset = geometry.DecodeOffset([]byte(attr))

	d.last = ev.Pos
	// Pre-drag pixel position: where the element would sit with no
	// translation applied. Lets the session compute absolute positions
	// independent of the offset already rendered.
	d.base = Point{X: box.Left - d.offset.X, Y: box.Top - d.offset.Y}
	d.rng = geometry.ThresholdRange(d.containerSize(), box.Size, d.target.Borders())
	d.started = time.Now()
	d.dragging = true

	d.cancelMove = d.events.OnMove(d.moveFn)
	d.cancelRelease = d.events.OnRelease(d.releaseFn)

	observability.Drag().OnSessionStart(d.id, d.offset.X, d.offset.Y)
	d.log.Debug("drag start", "offset", d.offset, "range", d.rng)
}

// handleMove accumulates one pointer delta into the running translation,
// clamps it, and renders the corrected offset immediately.
func (d *Draggable) handleMove(ev PointerEvent) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.dragging {
		return
	}

	dx := ev.Pos.X - d.last.X
	dy := ev.Pos.Y - d.last.Y
	d.last = ev.Pos

	d.offset = d.offset.Shift(dx, dy)
	corr := geometry.Clamp(d.base.X+d.offset.X, d.base.Y+d.offset.Y, d.rng)
	d.offset = d.offset.Add(corr)
	d.target.SetTranslation(d.offset)

	observability.Drag().OnSessionMove(d.id, d.offset.X, d.offset.Y, !corr.IsZero())
}

// handleRelease ends the session on a release anywhere (the listener is
// one-shot and global) and externalizes the final offset. A session with no
// movement still externalizes its unchanged offset.
//
// The store write happens outside the instance lock: backends notify
// subscribers synchronously, and the write's own change notification must be
// free to re-enter handleStoreEvent.
func (d *Draggable) handleRelease(ev PointerEvent) {
	d.mu.Lock()
	if !d.dragging {
		d.mu.Unlock()
		return
	}
	d.dragging = false
	if d.cancelMove != nil {
		d.cancelMove()
		d.cancelMove = nil
	}
	d.cancelRelease = nil

	final := d.offset
	elapsed := time.Since(d.started)
	payload := geometry.EncodeOffset(final)
	d.target.SetAttr(AttrOffset, string(payload))
	persist := d.persist
	ctx := d.ctx
	d.mu.Unlock()

	if persist {
		if err := d.st.Set(ctx, d.id, payload); err != nil {
			d.log.Warn("persist offset", "err", err)
		} else {
			observability.Store().OnSet(d.id, len(payload))
		}
	}

	observability.Drag().OnSessionEnd(d.id, final.X, final.Y, elapsed)
	d.log.Debug("drag end", "offset", final)
}

// handleStoreEvent processes a change notification from another view.
// Disabled instances and override-flagged targets ignore notifications;
// payload-less events (deletions) are skipped rather than zeroing state.
func (d *Draggable) handleStoreEvent(ev store.Event) {
	if ev.Key != d.id {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.enabled || d.closed {
		return
	}
	if d.overrideDisabled() {
		return
	}
	if len(ev.Value) == 0 {
		return
	}

	applied := d.reconcile(geometry.DecodeOffset(ev.Value))
	observability.Sync().OnNotify(d.id, applied.X, applied.Y)
	d.log.Debug("synced", "offset", applied)
}

// readStored fetches this instance's persisted offset, tolerating absent or
// malformed values as the zero offset.
func (d *Draggable) readStored(ctx context.Context) geometry.Offset {
	if !d.persist {
		return geometry.Offset{}
	}
	data, found, err := d.st.Get(ctx, d.id)
	if err != nil {
		d.log.Warn("read stored offset", "err", err)
		return geometry.Offset{}
	}
	observability.Store().OnGet(d.id, found)
	if !found {
		return geometry.Offset{}
	}
	return geometry.DecodeOffset(data)
}

// reconcile reapplies a known offset against current geometry. A stored
// offset computed for one viewport size must not be blindly replayed into a
// different-sized container, so it goes through the same clamp a live drag
// would get. The result is written as both the recorded annotation and the
// rendered transform. Session pointer bookkeeping is deliberately left
// untouched. Callers hold d.mu.
func (d *Draggable) reconcile(parsed geometry.Offset) geometry.Offset {
	box := d.target.Bounds()
	rng := geometry.ThresholdRange(d.containerSize(), box.Size, d.target.Borders())

	// Reconstruct the pre-drag pixel position from the parsed offset, then
	// correct the would-be absolute position exactly as a live drag move.
	baseLeft := box.Left - parsed.X
	baseTop := box.Top - parsed.Y
	corr := geometry.Clamp(baseLeft+parsed.X, baseTop+parsed.Y, rng)
	final := parsed.Add(corr)

	d.offset = final
	d.target.SetAttr(AttrOffset, string(geometry.EncodeOffset(final)))
	d.target.SetTranslation(final)
	return final
}
