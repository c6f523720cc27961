package booking

// CanView reports whether the user may read the booking: only the booker
// and the item's owner may.
func CanView(userID int64, b *Booking) bool {
	return userID == b.Booker().ID() || userID == b.Item().OwnerID()
}

// CanMutateStatus reports whether the user may approve or reject the
// booking: only the item's owner may, never the booker.
func CanMutateStatus(userID int64, b *Booking) bool {
	return userID == b.Item().OwnerID()
}
