package auditlog

import (
	"time"

	"github.com/google/uuid"

	"github.com/sirimeals/mealops-backend/pkg/enums"
)

// Entry is one auditable operation as reported by a domain service.
type Entry struct {
	ActorID    uuid.UUID
	CustomerID *uuid.UUID
	BagID      *uuid.UUID
	Event      enums.AuditEvent
	Detail     string
	Status     enums.AuditStatus
}

// Filters narrows an audit-log listing.
type Filters struct {
	Event      *enums.AuditEvent
	ActorID    *uuid.UUID
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
}
