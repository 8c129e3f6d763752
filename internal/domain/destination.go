package domain

import "fmt"

// DestinationKind selects how a bulk move's target page is expressed
type DestinationKind int

const (
	DestinationExact DestinationKind = iota
	DestinationBack
	DestinationForward
	DestinationFirst
	DestinationLast
)

// Admin action names for the bulk move destinations
const (
	ActionExactPage   = "move_to_exact_page"
	ActionBackPage    = "move_to_back_page"
	ActionForwardPage = "move_to_forward_page"
	ActionFirstPage   = "move_to_first_page"
	ActionLastPage    = "move_to_last_page"
)

func (k DestinationKind) String() string {
	switch k {
	case DestinationExact:
		return "exact"
	case DestinationBack:
		return "back"
	case DestinationForward:
		return "forward"
	case DestinationFirst:
		return "first"
	case DestinationLast:
		return "last"
	default:
		return "unknown"
	}
}

// Action returns the admin action name for the kind
func (k DestinationKind) Action() string {
	switch k {
	case DestinationBack:
		return ActionBackPage
	case DestinationForward:
		return ActionForwardPage
	case DestinationFirst:
		return ActionFirstPage
	case DestinationLast:
		return ActionLastPage
	default:
		return ActionExactPage
	}
}

// Destination is the target page of a bulk move
type Destination struct {
	Kind  DestinationKind
	Page  int // Target page for DestinationExact
	Steps int // Page distance for DestinationBack and DestinationForward
}

// Exact returns a destination naming a page directly
func Exact(page int) Destination {
	return Destination{Kind: DestinationExact, Page: page}
}

// Back returns a destination steps pages before the current one
func Back(steps int) Destination {
	return Destination{Kind: DestinationBack, Steps: steps}
}

// Forward returns a destination steps pages after the current one
func Forward(steps int) Destination {
	return Destination{Kind: DestinationForward, Steps: steps}
}

// First returns the first-page destination
func First() Destination {
	return Destination{Kind: DestinationFirst}
}

// Last returns the last-page destination
func Last() Destination {
	return Destination{Kind: DestinationLast}
}

func (d Destination) String() string {
	switch d.Kind {
	case DestinationExact:
		return fmt.Sprintf("page %d", d.Page)
	case DestinationBack:
		return fmt.Sprintf("%d page(s) back", d.Steps)
	case DestinationForward:
		return fmt.Sprintf("%d page(s) forward", d.Steps)
	default:
		return d.Kind.String() + " page"
	}
}

// ParseDestination maps an admin action name plus its step/page inputs to a
// destination. A step below 1 defaults to 1.
func ParseDestination(action string, step, page int) (Destination, error) {
	if step < 1 {
		step = 1
	}
	switch action {
	case ActionExactPage:
		return Exact(page), nil
	case ActionBackPage:
		return Back(step), nil
	case ActionForwardPage:
		return Forward(step), nil
	case ActionFirstPage:
		return First(), nil
	case ActionLastPage:
		return Last(), nil
	default:
		return Destination{}, fmt.Errorf("unknown bulk action: %q", action)
	}
}

// Resolve turns the destination into a concrete 1-based page number relative
// to current. The result may be out of range; callers check it against the
// paginator.
func (d Destination) Resolve(current, numPages int) int {
	switch d.Kind {
	case DestinationExact:
		return d.Page
	case DestinationBack:
		return current - d.Steps
	case DestinationForward:
		return current + d.Steps
	case DestinationFirst:
		return 1
	case DestinationLast:
		return numPages
	default:
		return 0
	}
}

// AvailableActions lists the bulk move actions worth offering on page of a
// list with numPages pages. Nothing is offered on a single-page list.
func AvailableActions(page, numPages int) []string {
	if numPages <= 1 {
		return nil
	}
	actions := []string{ActionExactPage}
	if numPages > 2 && page > 2 {
		actions = append(actions, ActionFirstPage)
	}
	if page > 1 {
		actions = append(actions, ActionBackPage)
	}
	if page < numPages {
		actions = append(actions, ActionForwardPage)
	}
	if numPages > 2 && page < numPages-1 {
		actions = append(actions, ActionLastPage)
	}
	return actions
}
