package audit

import (
	"time"

	"github.com/google/uuid"
)

// EventCategory classifies audit events by their primary purpose. The split
// lets sinks apply different retention to operational noise versus events a
// bot operator may need to explain later.
type EventCategory string

const (
	// CategoryOperations covers events useful for debugging and operational
	// visibility: cache rebuilds, fallback resolutions, routine diagnostics.
	CategoryOperations EventCategory = "operations"

	// CategoryMaintenance covers events that indicate stale or inconsistent
	// family metadata and usually warrant a config fix: obsolete codes still
	// in use, languages missing from override tables.
	CategoryMaintenance EventCategory = "maintenance"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID        uuid.UUID
	Category  EventCategory
	Timestamp time.Time
	Action    string
	Family    string
	Code      string
	// Detail carries free-form context, e.g. the replacement code adopted
	// for an obsolete alias.
	Detail string
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(category EventCategory, action, family, code string) Event {
	return Event{
		ID:        uuid.New(),
		Category:  category,
		Timestamp: time.Now(),
		Action:    action,
		Family:    family,
		Code:      code,
	}
}

const (
	// Site resolution events
	EventCodeLowercased         = "site_code_lowercased"
	EventAliasRedirect          = "site_alias_redirect"
	EventObsoleteCode           = "site_obsolete_code"
	EventSingleLanguageFallback = "site_single_language_fallback"
	EventDefaultLanguageChanged = "default_language_changed"
)
