package event

import (
	"errors"
	"fmt"
)

// ErrInvalidEvent is wrapped by every validation failure in this package.
var ErrInvalidEvent = errors.New("invalid event")

// Idea is a named unit of work that needs a fixed number of packages to build.
type Idea struct {
	Name             string `json:"name"`
	PackagesRequired int    `json:"packages_required"`
}

// Package is a named resource consumed by exactly one build.
type Package struct {
	Name string `json:"name"`
}

// Kind identifies which variant an Event carries.
type Kind string

const (
	// KindNewIdea carries an Idea waiting to be adopted
	KindNewIdea Kind = "new_idea"

	// KindPackageReady carries a Package waiting to be collected
	KindPackageReady Kind = "package_ready"

	// KindWorkDone is the termination sentinel
	KindWorkDone Kind = "work_done"
)

// Event is a closed tagged union over Kind. Exactly the payload matching Kind
// is set. Build events with NewIdea, PackageReady or WorkDone.
type Event struct {
	Kind    Kind     `json:"kind"`
	Idea    *Idea    `json:"idea,omitempty"`
	Package *Package `json:"package,omitempty"`
}

// NewIdea wraps an idea in an event.
func NewIdea(idea Idea) Event {
	return Event{Kind: KindNewIdea, Idea: &idea}
}

// PackageReady wraps a package in an event.
func PackageReady(pkg Package) Event {
	return Event{Kind: KindPackageReady, Package: &pkg}
}

// WorkDone returns a termination sentinel.
func WorkDone() Event {
	return Event{Kind: KindWorkDone}
}

// String is used in log lines.
func (e Event) String() string {
	switch e.Kind {
	case KindNewIdea:
		if e.Idea != nil {
			return fmt.Sprintf("NewIdea(%q, %d)", e.Idea.Name, e.Idea.PackagesRequired)
		}
	case KindPackageReady:
		if e.Package != nil {
			return fmt.Sprintf("PackageReady(%q)", e.Package.Name)
		}
	case KindWorkDone:
		return "WorkDone"
	}
	return fmt.Sprintf("Event(%s)", string(e.Kind))
}

// Validate checks that the Kind is known and that exactly its payload is present.
func (e Event) Validate() error {
	if err := e.Kind.Validate(); err != nil {
		return err
	}

	switch e.Kind {
	case KindNewIdea:
		if e.Idea == nil {
			return fmt.Errorf("%w: new_idea without idea", ErrInvalidEvent)
		}
		if e.Package != nil {
			return fmt.Errorf("%w: new_idea must not carry a package", ErrInvalidEvent)
		}
		return e.Idea.Validate()

	case KindPackageReady:
		if e.Package == nil {
			return fmt.Errorf("%w: package_ready without package", ErrInvalidEvent)
		}
		if e.Idea != nil {
			return fmt.Errorf("%w: package_ready must not carry an idea", ErrInvalidEvent)
		}
		return nil

	default:
		if e.Idea != nil || e.Package != nil {
			return fmt.Errorf("%w: work_done carries no payload", ErrInvalidEvent)
		}
		return nil
	}
}

// Validate checks if the Kind is a valid enum value.
func (k Kind) Validate() error {
	switch k {
	case KindNewIdea, KindPackageReady, KindWorkDone:
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, k)
	}
}

// Validate checks the idea fields.
func (i Idea) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: idea name cannot be empty", ErrInvalidEvent)
	}
	if i.PackagesRequired < 0 {
		return fmt.Errorf("%w: idea %q requires %d packages", ErrInvalidEvent, i.Name, i.PackagesRequired)
	}
	return nil
}
