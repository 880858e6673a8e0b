package participationdomain

import (
	"time"

	"github.com/google/uuid"
)

// TopicParticipationChanged carries every ledger write.
const TopicParticipationChanged = "participation.changed"

// TopicParticipationPoisoned receives events whose consumer kept failing.
const TopicParticipationPoisoned = "participation.changed.poisoned"

// TargetKind names what a ledger row points at.
type TargetKind string

const (
	TargetCompetition TargetKind = "competition"
	TargetEdition     TargetKind = "edition"
)

// ChangeKind names the ledger operation that produced an event.
type ChangeKind string

const (
	ChangeMarked   ChangeKind = "marked"
	ChangeResult   ChangeKind = "result"
	ChangeUnmarked ChangeKind = "unmarked"
)

// ParticipationChangedPayload is published after a ledger write commits.
// Status is empty for unmarks.
type ParticipationChangedPayload struct {
	UserID     uuid.UUID  `json:"userId"`
	TargetKind TargetKind `json:"targetKind"`
	TargetID   uuid.UUID  `json:"targetId"`
	Change     ChangeKind `json:"change"`
	Status     Status     `json:"status,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}
