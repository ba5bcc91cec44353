package mutex

import (
	"github.com/google/uuid"
)

// Owner identifies a lock holder. The zero value means "no owner".
type Owner struct {
	id uuid.UUID
}

// NewOwner creates a new unique owner
func NewOwner() Owner {
	return Owner{id: uuid.New()}
}

// ParseOwner parses the string form produced by Owner.String
func ParseOwner(s string) (Owner, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return Owner{}, err
	}
	return Owner{id: id}, nil
}

// IsZero reports whether o is the unset owner
func (o Owner) IsZero() bool {
	return o.id == uuid.Nil
}

// String returns the canonical textual form of the owner
func (o Owner) String() string {
	if o.IsZero() {
		return "<none>"
	}
	return o.id.String()
}
