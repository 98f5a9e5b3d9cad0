package shapz

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/zoobzio/hookz"
	"github.com/zoobzio/metricz"
	"github.com/zoobzio/tracez"
)

// Name identifies Reshape plans and their steps in errors, metrics, and
// events.
type Name = string

// Observability constants for the Reshape plan.
const (
	// Metrics.
	ReshapeProcessedTotal = metricz.Key("reshape.processed.total")
	ReshapeSuccessesTotal = metricz.Key("reshape.successes.total")
	ReshapeFailuresTotal  = metricz.Key("reshape.failures.total")
	ReshapeStepsCompleted = metricz.Key("reshape.steps.completed")
	ReshapeStepsTotal     = metricz.Key("reshape.steps.total")
	ReshapeDurationMs     = metricz.Key("reshape.duration.ms")

	// Spans.
	ReshapeProcessSpan = tracez.Key("reshape.process")
	ReshapeStepSpan    = tracez.Key("reshape.step")

	// Tags.
	ReshapeTagStepCount  = tracez.Tag("reshape.step_count")
	ReshapeTagStepNumber = tracez.Tag("reshape.step_number")
	ReshapeTagStepName   = tracez.Tag("reshape.step_name")
	ReshapeTagSuccess    = tracez.Tag("reshape.success")
	ReshapeTagError      = tracez.Tag("reshape.error")

	// Hook event keys.
	ReshapeEventStepComplete = hookz.Key("reshape.step_complete")
	ReshapeEventAllComplete  = hookz.Key("reshape.all_complete")
)

// ReshapeEvent is emitted via hooks as individual steps complete and when
// the whole plan finishes, giving external systems visibility into plan
// progress.
type ReshapeEvent struct {
	Name           Name          // Plan name
	StepName       Name          // Name of the step
	StepNumber     int           // Current step number (1-based)
	TotalSteps     int           // Total number of steps
	Success        bool          // Whether the step succeeded
	Error          error         // Error if the step failed
	Duration       time.Duration // How long this step took
	CompletedSteps int           // Steps completed (for all_complete)
	TotalDuration  time.Duration // Total plan time (for all_complete)
	Timestamp      time.Time     // When the event occurred
}

// ReshapeError reports a failed or interrupted plan execution, carrying the
// plan name, the step that failed, and the wrapped cause.
type ReshapeError struct {
	Timestamp time.Time
	Err       error
	Plan      Name
	Step      Name
	StepIndex int
	Canceled  bool
}

// Error implements the error interface.
func (e *ReshapeError) Error() string {
	location := fmt.Sprintf("reshape %q step %q (%d)", e.Plan, e.Step, e.StepIndex)
	if e.Canceled {
		return fmt.Sprintf("%s canceled: %v", location, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", location, e.Err)
}

// Unwrap returns the underlying error, supporting errors.Is and errors.As.
func (e *ReshapeError) Unwrap() error {
	return e.Err
}

// IsCanceled reports whether the plan stopped due to context cancellation.
func (e *ReshapeError) IsCanceled() bool {
	return e.Canceled || errors.Is(e.Err, context.Canceled)
}

// Step is one named shaping operation in a Reshape plan. Steps are built
// with the *Step constructors; the interface is sealed.
type Step interface {
	// Name returns the step's name as used in errors, spans, and events.
	Name() Name

	apply(*Mapping) (*Mapping, error)
}

type step struct {
	fn   func(*Mapping) (*Mapping, error)
	name Name
}

func (s step) Name() Name { return s.name }

func (s step) apply(m *Mapping) (*Mapping, error) { return s.fn(m) }

// AssignWithinStep copies the declared fields from source into the plan's
// target, with AssignWithin semantics.
func AssignWithinStep(name Name, source *Mapping, fields []Field) Step {
	return step{name: name, fn: func(target *Mapping) (*Mapping, error) {
		return AssignWithin(target, source, fields)
	}}
}

// AssignWithoutStep copies every enumerable field of source except the
// excluded keys into the plan's target, with AssignWithout semantics.
func AssignWithoutStep(name Name, source *Mapping, excluded []Key) Step {
	return step{name: name, fn: func(target *Mapping) (*Mapping, error) {
		return AssignWithout(target, source, excluded)
	}}
}

// ConvertStep applies the conversion instructions to the plan's target in
// place, with Convert semantics.
func ConvertStep(name Name, convs []Conversion) Step {
	return step{name: name, fn: func(target *Mapping) (*Mapping, error) {
		return Convert(target, convs), nil
	}}
}

// DeundefinedStep removes every key of the plan's target whose value is
// Undefined.
func DeundefinedStep(name Name) Step {
	return step{name: name, fn: func(target *Mapping) (*Mapping, error) {
		return Deundefined(target), nil
	}}
}

// DeemptyStep removes every key of the plan's target holding an empty
// nested Mapping.
func DeemptyStep(name Name) Step {
	return step{name: name, fn: func(target *Mapping) (*Mapping, error) {
		return Deempty(target), nil
	}}
}

// Reshape is a named, reusable plan of shaping steps applied to a target
// Mapping. Steps run in order, fail-fast, with the context checked between
// steps. The plan itself is thread-safe: the step list may be modified
// concurrently with Process calls. The caller's Mapping is never
// synchronized — it stays single-owner like everywhere else in the library.
//
// # Observability
//
// Reshape provides metrics, tracing, and events:
//
// Metrics:
//   - reshape.processed.total: Counter of plan executions
//   - reshape.successes.total: Counter of successful completions
//   - reshape.failures.total: Counter of failed executions
//   - reshape.steps.completed: Gauge of steps completed in the last run
//   - reshape.steps.total: Gauge of steps in the plan
//   - reshape.duration.ms: Gauge of total plan duration
//
// Traces:
//   - reshape.process: Parent span for the whole plan
//   - reshape.step: Child span per step
//
// Events (via hooks):
//   - reshape.step_complete: Fired as each step completes
//   - reshape.all_complete: Fired when every step succeeds
//
// Example:
//
//	plan := shapz.NewReshape("normalize",
//	    shapz.AssignWithinStep("pick", raw, fields),
//	    shapz.ConvertStep("coerce", convs),
//	    shapz.DeundefinedStep("scrub"),
//	)
//	defer plan.Close()
//
//	plan.OnStepComplete(func(_ context.Context, event shapz.ReshapeEvent) error {
//	    log.Printf("step %d/%d %s (%v)", event.StepNumber, event.TotalSteps,
//	        event.StepName, event.Duration)
//	    return nil
//	})
//
//	out, err := plan.Process(ctx, shapz.NewMapping())
type Reshape struct {
	name    Name
	steps   []Step
	mu      sync.RWMutex
	metrics *metricz.Registry
	tracer  *tracez.Tracer
	hooks   *hookz.Hooks[ReshapeEvent]
}

// NewReshape creates a Reshape plan with optional initial steps. The plan is
// ready to use immediately; more steps can be added with Register.
func NewReshape(name Name, steps ...Step) *Reshape {
	metrics := metricz.New()
	metrics.Counter(ReshapeProcessedTotal)
	metrics.Counter(ReshapeSuccessesTotal)
	metrics.Counter(ReshapeFailuresTotal)
	metrics.Gauge(ReshapeStepsCompleted)
	metrics.Gauge(ReshapeStepsTotal)
	metrics.Gauge(ReshapeDurationMs)

	return &Reshape{
		name:    name,
		steps:   slices.Clone(steps),
		metrics: metrics,
		tracer:  tracez.New(),
		hooks:   hookz.New[ReshapeEvent](),
	}
}

// Process executes every step of the plan against target, in order. Each
// step receives the mapping returned by the previous one (always the same
// pointer for the built-in steps). Execution stops at the first step error,
// wrapped in a *ReshapeError. The context is checked before each step;
// cancellation surfaces as a *ReshapeError with Canceled set.
//
// A panic inside a step (for example a converter function indexing past the
// end of a slice) is recovered and reported as a step failure rather than
// crashing the caller.
func (r *Reshape) Process(ctx context.Context, target *Mapping) (result *Mapping, err error) {
	r.mu.RLock()
	steps := slices.Clone(r.steps)
	r.mu.RUnlock()

	if ctx == nil {
		ctx = context.Background()
	}

	r.metrics.Counter(ReshapeProcessedTotal).Inc()
	r.metrics.Gauge(ReshapeStepsTotal).Set(float64(len(steps)))
	start := time.Now()

	ctx, span := r.tracer.StartSpan(ctx, ReshapeProcessSpan)
	span.SetTag(ReshapeTagStepCount, fmt.Sprintf("%d", len(steps)))
	defer func() {
		r.metrics.Gauge(ReshapeDurationMs).Set(float64(time.Since(start).Milliseconds()))
		if err == nil {
			span.SetTag(ReshapeTagSuccess, "true")
			r.metrics.Counter(ReshapeSuccessesTotal).Inc()
		} else {
			span.SetTag(ReshapeTagSuccess, "false")
			span.SetTag(ReshapeTagError, err.Error())
			r.metrics.Counter(ReshapeFailuresTotal).Inc()
		}
		span.Finish()
	}()

	result = target
	completed := 0
	r.metrics.Gauge(ReshapeStepsCompleted).Set(0)

	for i, st := range steps {
		select {
		case <-ctx.Done():
			err = &ReshapeError{
				Err:       ctx.Err(),
				Plan:      r.name,
				Step:      st.Name(),
				StepIndex: i,
				Canceled:  errors.Is(ctx.Err(), context.Canceled),
				Timestamp: time.Now(),
			}
			return result, err
		default:
		}

		_, stepSpan := r.tracer.StartSpan(ctx, ReshapeStepSpan)
		stepSpan.SetTag(ReshapeTagStepNumber, fmt.Sprintf("%d", i+1))
		stepSpan.SetTag(ReshapeTagStepName, string(st.Name()))

		stepStart := time.Now()
		result, err = applyStep(st, result)
		stepDuration := time.Since(stepStart)
		stepSpan.Finish()

		if err != nil {
			_ = r.hooks.Emit(ctx, ReshapeEventStepComplete, ReshapeEvent{ //nolint:errcheck
				Name:       r.name,
				StepName:   st.Name(),
				StepNumber: i + 1,
				TotalSteps: len(steps),
				Success:    false,
				Error:      err,
				Duration:   stepDuration,
				Timestamp:  time.Now(),
			})
			err = &ReshapeError{
				Err:       err,
				Plan:      r.name,
				Step:      st.Name(),
				StepIndex: i,
				Timestamp: time.Now(),
			}
			return result, err
		}

		completed++
		r.metrics.Gauge(ReshapeStepsCompleted).Set(float64(completed))

		_ = r.hooks.Emit(ctx, ReshapeEventStepComplete, ReshapeEvent{ //nolint:errcheck
			Name:       r.name,
			StepName:   st.Name(),
			StepNumber: i + 1,
			TotalSteps: len(steps),
			Success:    true,
			Duration:   stepDuration,
			Timestamp:  time.Now(),
		})
	}

	_ = r.hooks.Emit(ctx, ReshapeEventAllComplete, ReshapeEvent{ //nolint:errcheck
		Name:           r.name,
		TotalSteps:     len(steps),
		Success:        true,
		CompletedSteps: completed,
		TotalDuration:  time.Since(start),
		Timestamp:      time.Now(),
	})

	return result, nil
}

// applyStep runs one step, converting a panic inside it into an error.
func applyStep(st Step, m *Mapping) (result *Mapping, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = m
			err = fmt.Errorf("step panicked: %v", r)
		}
	}()
	return st.apply(m)
}

// Register appends steps to the plan. Thread-safe.
func (r *Reshape) Register(steps ...Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, steps...)
}

// SetSteps replaces the plan's steps. Thread-safe.
func (r *Reshape) SetSteps(steps ...Step) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = slices.Clone(steps)
}

// Steps returns a copy of the plan's current steps.
func (r *Reshape) Steps() []Step {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.steps)
}

// Names returns the names of the plan's current steps, in order.
func (r *Reshape) Names() []Name {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]Name, len(r.steps))
	for i, st := range r.steps {
		names[i] = st.Name()
	}
	return names
}

// Len returns the number of steps in the plan.
func (r *Reshape) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.steps)
}

// Name returns the name of this plan.
func (r *Reshape) Name() Name {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.name
}

// Metrics returns the metrics registry for this plan.
func (r *Reshape) Metrics() *metricz.Registry {
	return r.metrics
}

// Tracer returns the tracer for this plan.
func (r *Reshape) Tracer() *tracez.Tracer {
	return r.tracer
}

// Close gracefully shuts down the plan's observability components.
func (r *Reshape) Close() error {
	if r.tracer != nil {
		r.tracer.Close()
	}
	r.hooks.Close()
	return nil
}

// OnStepComplete registers a handler called asynchronously as each step
// completes, whether it succeeded or failed.
func (r *Reshape) OnStepComplete(handler func(context.Context, ReshapeEvent) error) error {
	_, err := r.hooks.Hook(ReshapeEventStepComplete, handler)
	return err
}

// OnAllComplete registers a handler called asynchronously when every step of
// a plan execution has succeeded.
func (r *Reshape) OnAllComplete(handler func(context.Context, ReshapeEvent) error) error {
	_, err := r.hooks.Hook(ReshapeEventAllComplete, handler)
	return err
}
