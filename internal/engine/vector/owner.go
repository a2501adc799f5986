package vector

import "github.com/google/uuid"

// Owner is the identity of a transient handle. Nodes and buffers stamped
// with an Owner may be edited in place only by the handle holding that same
// Owner; everyone else copies before writing. Owners are compared by pointer.
type Owner struct {
	id uuid.UUID
}

func newOwner() *Owner {
	return &Owner{id: uuid.New()}
}

// String returns the owner's identifier, or "shared" for a nil owner.
func (o *Owner) String() string {
	if o == nil {
		return "shared"
	}
	return o.id.String()
}

// owns reports whether o may edit something stamped with stamp in place.
// A nil owner never owns anything.
func (o *Owner) owns(stamp *Owner) bool {
	return o != nil && o == stamp
}
