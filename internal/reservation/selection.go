package reservation

import "eclat/internal/model"

// SelectionKind discriminates what a selection holds.
type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionService
	SelectionFormation
)

func (k SelectionKind) String() string {
	switch k {
	case SelectionService:
		return model.KindService
	case SelectionFormation:
		return model.KindFormation
	default:
		return "none"
	}
}

// Selection binds exactly one of a service or a formation. The zero value is
// the empty selection; the constructors are the only way to bind an item, so
// both-bound can never be represented.
type Selection struct {
	kind      SelectionKind
	service   model.Service
	formation model.Formation
}

// ChooseService returns a selection bound to the given service.
func ChooseService(s model.Service) Selection {
	return Selection{kind: SelectionService, service: s}
}

// ChooseFormation returns a selection bound to the given formation.
func ChooseFormation(f model.Formation) Selection {
	return Selection{kind: SelectionFormation, formation: f}
}

// Kind returns what the selection holds.
func (s Selection) Kind() SelectionKind { return s.kind }

// IsEmpty reports whether nothing is bound.
func (s Selection) IsEmpty() bool { return s.kind == SelectionNone }

// Service returns the bound service, if any.
func (s Selection) Service() (model.Service, bool) {
	return s.service, s.kind == SelectionService
}

// Formation returns the bound formation, if any.
func (s Selection) Formation() (model.Formation, bool) {
	return s.formation, s.kind == SelectionFormation
}

// ItemID returns the bound item's identifier, or 0 for the empty selection.
func (s Selection) ItemID() int64 {
	switch s.kind {
	case SelectionService:
		return s.service.ID
	case SelectionFormation:
		return s.formation.ID
	default:
		return 0
	}
}

// Label returns the display name of the bound item.
func (s Selection) Label() string {
	switch s.kind {
	case SelectionService:
		return s.service.Name
	case SelectionFormation:
		return s.formation.Title
	default:
		return ""
	}
}

// PriceCents derives the price of the selection: the service price, else the
// formation price, else 0.
func (s Selection) PriceCents() int64 {
	switch s.kind {
	case SelectionService:
		return s.service.PriceCents
	case SelectionFormation:
		return s.formation.PriceCents
	default:
		return 0
	}
}

// DurationMinutes derives the duration of the selection in minutes; formation
// hours are converted.
func (s Selection) DurationMinutes() int {
	switch s.kind {
	case SelectionService:
		return s.service.DurationMinutes
	case SelectionFormation:
		return s.formation.DurationHours * 60
	default:
		return 0
	}
}
