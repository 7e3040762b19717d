// Package companion is the real-time companion mini-game: entity pools,
// collision and scoring, the game session state machine and the per-frame
// simulation loop that ties gestures, orientation and feedback together.
package companion

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/companion/internal/avatar"
	"github.com/vovakirdan/companion/internal/capability"
	"github.com/vovakirdan/companion/internal/config"
	"github.com/vovakirdan/companion/internal/core"
	"github.com/vovakirdan/companion/internal/feedback"
	"github.com/vovakirdan/companion/internal/gesture"
	"github.com/vovakirdan/companion/internal/orientation"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithScheduler binds the engine to a frame source.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithRecorder receives a RunResult for every finished session.
func WithRecorder(r RunRecorder) Option {
	return func(e *Engine) { e.recorder = r }
}

// WithSeed makes spawns and dialogue picks reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithAccessoryGlyph sets how equipped accessories are drawn by Render.
func WithAccessoryGlyph(g AccessoryGlyph) Option {
	return func(e *Engine) { e.glyph = g }
}

// Engine runs the companion while the feature is open.
// All methods must be called from the goroutine that drives the scheduler.
type Engine struct {
	cfg      config.CompanionConfig
	caps     *capability.Set
	sink     ProgressSink
	recorder RunRecorder
	logger   *log.Logger
	sched    Scheduler
	seed     int64
	rng      *core.RNG
	glyph    AccessoryGlyph

	open     bool
	frame    FrameID
	now      time.Duration
	tick     uint64
	backdrop Backdrop

	profile  avatar.Profile
	base     core.Vec
	anchor   avatar.Anchor
	gestures *gesture.Recognizer
	orient   *orientation.Monitor
	feedback *feedback.Dispatcher

	pools   Pools
	session Session
	timers  timers
	intents []intent
}

// NewEngine creates a closed engine. caps and sink may be nil.
func NewEngine(cfg config.CompanionConfig, caps *capability.Set, sink ProgressSink, opts ...Option) *Engine {
	e := &Engine{
		cfg:  cfg,
		caps: caps,
		sink: sink,
		seed: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sink == nil {
		e.sink = discardSink{}
	}
	if e.recorder == nil {
		e.recorder = discardSink{}
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.sched == nil {
		e.sched = NewFrameScheduler()
	}
	e.rng = core.NewRNG(e.seed)

	e.base = core.V(cfg.Playfield.Width/2, cfg.Playfield.Height*cfg.Avatar.CenterYRatio)
	e.anchor = avatar.NewAnchor(cfg.Avatar.MinScale, cfg.Avatar.MaxScale)
	e.gestures = gesture.NewRecognizer(gesture.Config{
		DragDamping:     cfg.Gesture.DragDamping,
		TapSlop:         cfg.Gesture.TapSlop,
		DoubleTapWindow: cfg.Gesture.DoubleTapWindow,
		MinScale:        cfg.Avatar.MinScale,
		MaxScale:        cfg.Avatar.MaxScale,
	})
	e.orient = orientation.NewMonitor(orientation.Config{
		ShakeThreshold: cfg.Orientation.ShakeThreshold,
		ShakeDebounce:  cfg.Orientation.ShakeDebounce,
		NudgeThreshold: cfg.Orientation.NudgeThreshold,
		NudgeGain:      cfg.Orientation.NudgeGain,
		NudgeClamp:     cfg.Orientation.NudgeClamp,
		NudgeSmoothing: cfg.Orientation.NudgeSmoothing,
	})
	e.feedback = feedback.NewDispatcher(cfg.Feedback, e.rng, caps)
	e.pools = NewPools(cfg.Playfield, cfg.Physics, cfg.Particles)
	e.session = NewSession(cfg.Session)
	return e
}

// Open starts the feature for profile: pools start empty, the avatar is at
// rest, capabilities are probed and the first frame is requested.
// Opening an open engine only updates the profile.
func (e *Engine) Open(profile avatar.Profile) {
	e.profile = profile
	if e.open {
		return
	}
	e.open = true
	e.now = e.sched.Now()

	e.pools.Clear()
	e.session.Dismiss()
	e.timers.cancelAll()
	e.intents = nil
	e.anchor.Reset()
	e.gestures.Reset()
	e.feedback.Clear()

	e.orient.Reset()
	e.orient.Enable()
	if !e.caps.StartMotion(e.Orientation) {
		e.orient.Disable()
	}
	e.backdrop = BackdropFantasy
	if e.caps.OpenCamera() {
		e.backdrop = BackdropCamera
	}

	switch profile.Mood(e.cfg.Feedback.MoodLow, e.cfg.Feedback.MoodHigh) {
	case avatar.MoodLow:
		e.say(feedback.LowState)
	case avatar.MoodHigh:
		e.say(feedback.HighState)
	default:
		e.say(feedback.Greeting)
	}

	e.frame = e.sched.RequestTick(e.onFrame)
	e.logger.Info("companion opened",
		"name", profile.Name,
		"energy", profile.Energy,
		"backdrop", e.backdrop.String(),
		"motion", !e.orient.Disabled(),
		"haptics", e.caps.Enabled(capability.KindHaptics),
		"tone", e.caps.Enabled(capability.KindTone))
}

// Close tears everything down. No frame or timer runs afterwards.
func (e *Engine) Close() {
	if !e.open {
		return
	}
	e.open = false
	e.sched.Cancel(e.frame)
	e.frame = 0

	if n := e.timers.len() + len(e.intents); n > 0 {
		e.logger.Debug("dropping pending work on close", "count", n)
	}
	e.timers.cancelAll()
	e.intents = nil

	e.caps.Close()

	e.pools.Clear()
	e.session.Dismiss()
	e.gestures.Reset()
	e.feedback.Clear()
	e.logger.Info("companion closed")
}

// IsOpen reports whether the feature is open.
func (e *Engine) IsOpen() bool { return e.open }

// Backdrop returns the backdrop chosen at open.
func (e *Engine) Backdrop() Backdrop { return e.backdrop }

// Session returns the current game state.
func (e *Engine) Session() SessionState { return e.session.State() }

// Profile returns the profile the engine was opened with.
func (e *Engine) Profile() avatar.Profile { return e.profile }

// SetProfile replaces the read-only profile, e.g. after an accessory change.
func (e *Engine) SetProfile(p avatar.Profile) { e.profile = p }

func (e *Engine) onFrame(now time.Duration) {
	if !e.open {
		return
	}
	e.Frame(now)
	if e.open {
		e.frame = e.sched.RequestTick(e.onFrame)
	}
}

// Frame runs one simulation tick: apply queued intents, settle the avatar,
// advance every pool, resolve catches, then prune what left the field.
// Advancing before colliding and colliding before pruning means an entity
// that is both in reach and out of bounds is caught.
func (e *Engine) Frame(now time.Duration) {
	if !e.open {
		return
	}
	e.now = now
	e.tick++

	e.intents = append(e.intents, e.timers.fire(now)...)
	pending := e.intents
	e.intents = nil
	for _, in := range pending {
		e.apply(in)
	}

	if !e.gestures.Active() {
		e.anchor.Settle(e.cfg.Avatar.SpringDecay, e.cfg.Avatar.SnapDistance)
	}
	e.anchor.Animate()
	center := e.center()

	e.pools.Advance()
	for _, caught := range e.pools.Collide(center, e.cfg.Avatar.HitRadius) {
		e.onCatch(caught)
	}
	for range e.pools.Prune() {
		e.onMiss()
	}
}

func (e *Engine) center() core.Vec {
	return e.anchor.Center(e.base)
}

func (e *Engine) enqueue(in intent) {
	if !e.open {
		e.logger.Debug("intent dropped, companion closed")
		return
	}
	e.intents = append(e.intents, in)
}

func (e *Engine) apply(in intent) {
	switch in := in.(type) {
	case startGameIntent:
		e.startGame()
	case endGameIntent:
		e.endGame()
	case countdownIntent:
		if e.session.Countdown(e.now) {
			e.finishSession()
		}
	case spawnIntent:
		if e.session.Active() {
			e.pools.SpawnObject(e.rng, RollVariant(e.rng, e.cfg.Scoring))
		}
	case clearDialogueIntent:
		e.feedback.Clear()
	case throwOrbIntent:
		e.pools.SpawnOrb(e.rng, e.center())
	case feedTreatIntent:
		e.pools.SpawnTreat(e.rng, e.center().X)
	case trickIntent:
		e.performTrick(in.trick)
	case sparkleIntent:
		e.sparkle()
	}
}

func (e *Engine) startGame() {
	if !e.session.Start(e.now) {
		return
	}
	e.pools.ClearObjects()
	e.timers.every(timerCountdown, e.now, e.cfg.Session.CountdownStep, countdownIntent{})
	e.timers.every(timerSpawn, e.now, e.cfg.Session.SpawnInterval, spawnIntent{})
	// Tilt nudging pauses during a game; let any nudge offset spring home.
	if !e.gestures.Active() {
		e.anchor.Release()
	}
	e.emit(feedback.GameStart)
	e.logger.Info("game started",
		"duration", e.cfg.Session.Duration,
		"spawn_interval", e.cfg.Session.SpawnInterval,
		"miss_limit", e.cfg.Session.MissLimit)
}

func (e *Engine) endGame() {
	if e.session.Quit(e.now) {
		e.finishSession()
	}
	e.session.Dismiss()
	e.pools.ClearObjects()
}

// finishSession runs once on every Active -> Ended transition.
func (e *Engine) finishSession() {
	e.timers.cancel(timerCountdown)
	e.timers.cancel(timerSpawn)
	e.pools.ClearObjects()

	st := e.session.State()
	e.emit(feedback.GameWin)
	if st.Score > 0 {
		e.sink.AddProgress(CategoryGame, 1)
	}
	e.recorder.RecordRun(RunResult{
		Score:     st.Score,
		Caught:    st.Caught,
		Misses:    st.MissCount,
		BestCombo: st.BestCombo,
		Reason:    st.Reason,
		Duration:  st.Elapsed(e.now),
	})
	e.logger.Info("game ended",
		"reason", st.Reason.String(),
		"score", st.Score,
		"caught", st.Caught,
		"misses", st.MissCount)
}

func (e *Engine) onCatch(ent MovingEntity) {
	e.session.Catch(Points(e.cfg.Scoring, ent.Kind))
	e.logger.Debug("caught", "kind", KindName(ent.Kind), "id", ent.ID)
	e.sink.AddProgress(ProgressCategory(ent.Kind), 1)

	cat, cue := catchFeedback(ent.Kind)
	e.feedback.Cue(cue)
	if cat != "" {
		e.say(cat)
	}
	e.pools.Burst(e.rng, ent.Pos, e.cfg.Particles.CatchBurst, ent.Color, core.ColorWhite)
}

func (e *Engine) onMiss() {
	if !e.session.Active() {
		return
	}
	e.feedback.Cue(feedback.CueMiss)
	if e.session.Miss(e.now) {
		e.finishSession()
	}
}

func (e *Engine) performTrick(t avatar.Trick) {
	e.anchor.StartTrick(t)
	switch t {
	case avatar.TrickHop:
		e.emit(feedback.Tap)
	case avatar.TrickSpin:
		e.emit(feedback.Spin)
	}
	e.sink.AddProgress(CategoryTrick, 1)
}

func (e *Engine) sparkle() {
	e.pools.Burst(e.rng, e.center(), e.cfg.Particles.SparkleBurst,
		core.ColorBrightMagenta, core.ColorBrightCyan, core.ColorBrightYellow)
	e.emit(feedback.Sparkle)
	e.sink.AddProgress(CategoryTrick, 1)
}

// emit cues cat and shows a line for it.
func (e *Engine) emit(cat feedback.Category) {
	if e.feedback.Emit(cat, e.now, e.dragging()) {
		e.armDialogueClear()
	}
}

// say shows a line without a cue.
func (e *Engine) say(cat feedback.Category) {
	if e.feedback.Say(cat, e.now, e.dragging()) {
		e.armDialogueClear()
	}
}

func (e *Engine) dragging() bool { return e.gestures.Mode() == gesture.ModeDrag }

func (e *Engine) armDialogueClear() {
	e.timers.after(timerDialogue, e.now, e.feedback.Duration(), clearDialogueIntent{})
}
