// Package hooks runs preparation steps in front of the standard packaging
// actions.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"

	"github.com/unicorn-engine/unipkg/pkg/command"
)

// ErrUnknownVerb indicates no standard action is registered for a verb
var ErrUnknownVerb = errors.New("unknown lifecycle verb")

// Action handles one invocation
type Action func(ctx context.Context, cmd command.Command) error

// Step is a named pre-action
type Step struct {
	Name string
	Run  Action
}

// Registry maps each verb to its ordered pre-steps and its standard action
type Registry struct {
	steps    map[string][]Step
	standard map[string]Action
	logger   *log.Logger
}

// New creates an empty registry
func New(logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Registry{
		steps:    make(map[string][]Step),
		standard: make(map[string]Action),
		logger:   logger,
	}
}

// Handle registers the standard action of verb
func (r *Registry) Handle(verb string, action Action) {
	r.standard[verb] = action
}

// Before appends steps that run ahead of verb's standard action
func (r *Registry) Before(verb string, steps ...Step) {
	r.steps[verb] = append(r.steps[verb], steps...)
}

// Steps returns a copy of the pre-steps registered for verb
func (r *Registry) Steps(verb string) []Step {
	return append([]Step(nil), r.steps[verb]...)
}

// Verbs lists the verbs that have a standard action
func (r *Registry) Verbs() []string {
	verbs := make([]string, 0, len(r.standard))
	for verb := range r.standard {
		verbs = append(verbs, verb)
	}
	sort.Strings(verbs)
	return verbs
}

// Dispatch runs the pre-steps of cmd.Verb in order, then its standard
// action. The first failing step stops the invocation.
func (r *Registry) Dispatch(ctx context.Context, cmd command.Command) error {
	action, ok := r.standard[cmd.Verb]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownVerb, cmd.Verb)
	}

	for _, step := range r.steps[cmd.Verb] {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.logger.Printf("%s: running %s", cmd.Verb, step.Name)
		if err := step.Run(ctx, cmd); err != nil {
			return fmt.Errorf("%s: %s: %w", cmd.Verb, step.Name, err)
		}
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	r.logger.Printf("%s: running standard action", cmd.Verb)
	return action(ctx, cmd)
}

// RunVerb returns a step that dispatches another verb with no arguments,
// for verbs that build on top of "build".
func (r *Registry) RunVerb(verb string) Step {
	return Step{
		Name: "run " + verb,
		Run: func(ctx context.Context, _ command.Command) error {
			return r.Dispatch(ctx, command.Command{Verb: verb})
		},
	}
}
