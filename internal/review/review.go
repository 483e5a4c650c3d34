// Copyright (c) 2026 PathoGUI Team
// Pathograde - pathology slide grading tool
// This source code is licensed under the MIT license found in the LICENSE file.

// Package review holds the state of a grading session independently of any
// UI toolkit. Front ends forward user intent as named actions and read the
// resulting state back through accessors.
package review

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/pathogui/pathograde/internal/gradelog"
	"github.com/pathogui/pathograde/internal/logging"
)

// Action names a user command.
type Action string

// Built-in actions.
const (
	ActionSave     Action = "save"
	ActionNext     Action = "next"
	ActionPrevious Action = "previous"
	ActionClear    Action = "clear"
)

var (
	// ErrUnknownAction is returned by Dispatch for unregistered names.
	ErrUnknownAction = errors.New("unknown action")
	// ErrNoImages is returned by actions that need a current image.
	ErrNoImages = errors.New("no images to review")
)

// Appender persists a grading record.
type Appender interface {
	Append(rec gradelog.Record) error
}

// Clock provides an abstraction over time.Now for testability.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// originOffset is the pixel-edge origin of a displayed image; coordinates
// start there whenever an image is loaded.
const originOffset = -0.5

// FormatCoordinate renders a viewport coordinate with three decimals.
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// Draft is the judgment being edited for the current image.
type Draft struct {
	Primary   gradelog.Grade
	Secondary gradelog.Grade
	X         string
	Y         string
	Comment   string
}

// Presenter drives one reviewer's session over a fixed list of images.
// It is not safe for concurrent use.
type Presenter struct {
	user   string
	images []string
	index  int
	draft  Draft
	status string

	log   Appender
	clock Clock

	actions map[Action]func(context.Context) error
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithClock sets the clock used to timestamp saved records.
func WithClock(c Clock) Option {
	return func(p *Presenter) { p.clock = c }
}

// New creates a presenter for user over images, starting at the first one.
func New(user string, images []string, log Appender, opts ...Option) *Presenter {
	p := &Presenter{
		user:   user,
		images: append([]string(nil), images...),
		log:    log,
		clock:  systemClock{},
	}
	for _, o := range opts {
		o(p)
	}
	p.resetCoordinates()
	p.actions = map[Action]func(context.Context) error{
		ActionSave:     p.save,
		ActionNext:     p.next,
		ActionPrevious: p.previous,
		ActionClear:    p.clear,
	}
	return p
}

// Dispatch runs the handler registered for a.
func (p *Presenter) Dispatch(ctx context.Context, a Action) error {
	h, ok := p.actions[a]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	return h(ctx)
}

// Actions lists the registered action names.
func (p *Presenter) Actions() []Action {
	out := make([]Action, 0, len(p.actions))
	for a := range p.actions {
		out = append(out, a)
	}
	return out
}

func (p *Presenter) save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(p.images) == 0 {
		p.status = ErrNoImages.Error()
		return ErrNoImages
	}
	rec := gradelog.Record{
		Timestamp: p.clock.Now(),
		Username:  p.user,
		Image:     p.images[p.index],
		Primary:   p.draft.Primary,
		Secondary: p.draft.Secondary,
		X:         p.draft.X,
		Y:         p.draft.Y,
		Comment:   p.draft.Comment,
	}
	if err := p.log.Append(rec); err != nil {
		p.status = "save failed: " + err.Error()
		logging.Errorf("saving grading of %s: %v", rec.Image, err)
		return fmt.Errorf("save %s: %w", rec.Image, err)
	}
	p.status = "saved " + rec.Image
	return nil
}

func (p *Presenter) next(context.Context) error {
	p.resetDraft()
	if p.index+1 < len(p.images) {
		p.index++
		p.resetCoordinates()
	}
	return nil
}

func (p *Presenter) previous(context.Context) error {
	p.resetDraft()
	if p.index > 0 {
		p.index--
		p.resetCoordinates()
	}
	return nil
}

func (p *Presenter) clear(context.Context) error {
	p.resetDraft()
	return nil
}

// resetDraft drops the judgment but keeps the viewport coordinates.
func (p *Presenter) resetDraft() {
	p.draft.Primary = gradelog.GradeUnset
	p.draft.Secondary = gradelog.GradeUnset
	p.draft.Comment = ""
	p.status = ""
}

func (p *Presenter) resetCoordinates() {
	p.draft.X = FormatCoordinate(originOffset)
	p.draft.Y = FormatCoordinate(originOffset)
}

func (p *Presenter) SetPrimary(g gradelog.Grade)   { p.draft.Primary = g }
func (p *Presenter) SetSecondary(g gradelog.Grade) { p.draft.Secondary = g }
func (p *Presenter) CyclePrimary()                 { p.draft.Primary = p.draft.Primary.Next() }
func (p *Presenter) CycleSecondary()               { p.draft.Secondary = p.draft.Secondary.Next() }
func (p *Presenter) SetComment(c string)           { p.draft.Comment = c }

// SetCoordinates records the viewport position shown to the reviewer.
func (p *Presenter) SetCoordinates(x, y string) {
	p.draft.X, p.draft.Y = x, y
}

// Current returns the name of the image under review, or "" when empty.
func (p *Presenter) Current() string {
	if len(p.images) == 0 {
		return ""
	}
	return p.images[p.index]
}

func (p *Presenter) Index() int     { return p.index }
func (p *Presenter) Len() int       { return len(p.images) }
func (p *Presenter) Draft() Draft   { return p.draft }
func (p *Presenter) User() string   { return p.user }
func (p *Presenter) Status() string { return p.status }
