package request

import "time"

// ItemRequest is a user's ask for an item nobody has listed yet. Owners
// answer it by creating items that reference the request.
type ItemRequest struct {
	id          int64
	description string
	requestorID int64
	created     time.Time
}

// New creates an item request that has not been persisted yet; the store
// assigns id and creation time on save.
func New(requestorID int64, description string) *ItemRequest {
	return &ItemRequest{description: description, requestorID: requestorID}
}

// Reconstruct rebuilds an ItemRequest from persistence data.
func Reconstruct(id int64, description string, requestorID int64, created time.Time) *ItemRequest {
	return &ItemRequest{
		id:          id,
		description: description,
		requestorID: requestorID,
		created:     created,
	}
}

func (r *ItemRequest) ID() int64          { return r.id }
func (r *ItemRequest) Description() string { return r.description }
func (r *ItemRequest) RequestorID() int64 { return r.requestorID }
func (r *ItemRequest) Created() time.Time { return r.created }
