package item

// Item is a thing offered for booking by its owner. The availability flag
// gates new bookings; existing bookings are untouched by it.
type Item struct {
	id          int64
	name        string
	description string
	ownerID     int64
	available   bool
	requestID   *int64
}

// New creates an item that has not been persisted yet. requestID links the
// item to the item request it answers, when there is one.
func New(ownerID int64, name, description string, available bool, requestID *int64) *Item {
	return &Item{
		name:        name,
		description: description,
		ownerID:     ownerID,
		available:   available,
		requestID:   requestID,
	}
}

// Reconstruct rebuilds an Item from persistence data.
func Reconstruct(id, ownerID int64, name, description string, available bool, requestID *int64) *Item {
	return &Item{
		id:          id,
		name:        name,
		description: description,
		ownerID:     ownerID,
		available:   available,
		requestID:   requestID,
	}
}

func (i *Item) ID() int64           { return i.id }
func (i *Item) Name() string        { return i.name }
func (i *Item) Description() string { return i.description }
func (i *Item) OwnerID() int64      { return i.ownerID }
func (i *Item) Available() bool     { return i.available }
func (i *Item) RequestID() *int64   { return i.requestID }

// IsOwnedBy checks if the item belongs to the given user.
func (i *Item) IsOwnedBy(userID int64) bool {
	return i.ownerID == userID
}

// Update applies the non-nil fields of a partial update.
func (i *Item) Update(name, description *string, available *bool) {
	if name != nil {
		i.name = *name
	}
	if description != nil {
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
}
