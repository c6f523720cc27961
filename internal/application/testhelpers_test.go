package application

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/DmitryMisevra/shareit/internal/domain"
	bookingDomain "github.com/DmitryMisevra/shareit/internal/domain/booking"
	itemDomain "github.com/DmitryMisevra/shareit/internal/domain/item"
	requestDomain "github.com/DmitryMisevra/shareit/internal/domain/request"
	userDomain "github.com/DmitryMisevra/shareit/internal/domain/user"
	"go.uber.org/zap"
)

// In-memory repository fakes backing the service tests. They mirror the
// store contracts: listings ordered by start descending with id ascending
// as tie-break, conditions evaluated via Condition.Matches, compare-and-
// swap status updates.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*userDomain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*userDomain.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.NewNotFoundError("user", id)
	}
	return u, nil
}

func (r *fakeUserRepo) FindAll(_ context.Context) ([]*userDomain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int64, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]*userDomain.User, len(ids))
	for i, id := range ids {
		out[i] = r.users[id]
	}
	return out, nil
}

func (r *fakeUserRepo) Save(_ context.Context, u *userDomain.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email() == u.Email() {
			return 0, domain.NewConflictError("email already in use")
		}
	}
	r.nextID++
	r.users[r.nextID] = userDomain.Reconstruct(r.nextID, u.Name(), u.Email())
	return r.nextID, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *userDomain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.ID()]; !ok {
		return domain.NewNotFoundError("user", u.ID())
	}
	for id, existing := range r.users {
		if id != u.ID() && existing.Email() == u.Email() {
			return domain.NewConflictError("email already in use")
		}
	}
	r.users[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.NewNotFoundError("user", id)
	}
	delete(r.users, id)
	return nil
}

type fakeItemRepo struct {
	mu     sync.Mutex
	items  map[int64]*itemDomain.Item
	nextID int64
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: make(map[int64]*itemDomain.Item)}
}

func (r *fakeItemRepo) FindByID(_ context.Context, id int64) (*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	it, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("item", id)
	}
	return it, nil
}

func (r *fakeItemRepo) FindByOwnerID(_ context.Context, ownerID int64, page *domain.Page) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*itemDomain.Item
	for _, it := range r.items {
		if it.OwnerID() == ownerID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return pageItems(out, page), nil
}

func (r *fakeItemRepo) SearchByText(_ context.Context, text string, page *domain.Page) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*itemDomain.Item
	for _, it := range r.items {
		if it.Available() && (containsFold(it.Name(), text) || containsFold(it.Description(), text)) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return pageItems(out, page), nil
}

func (r *fakeItemRepo) FindByRequestID(_ context.Context, requestID int64) ([]*itemDomain.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*itemDomain.Item
	for _, it := range r.items {
		if it.RequestID() != nil && *it.RequestID() == requestID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *fakeItemRepo) ExistsByOwnerID(_ context.Context, ownerID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.OwnerID() == ownerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeItemRepo) Save(_ context.Context, i *itemDomain.Item) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.items[r.nextID] = itemDomain.Reconstruct(r.nextID, i.OwnerID(), i.Name(), i.Description(), i.Available(), i.RequestID())
	return r.nextID, nil
}

func (r *fakeItemRepo) Update(_ context.Context, i *itemDomain.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[i.ID()]; !ok {
		return domain.NewNotFoundError("item", i.ID())
	}
	r.items[i.ID()] = i
	return nil
}

type fakeCommentRepo struct {
	mu       sync.Mutex
	comments map[int64]*itemDomain.Comment
	users    *fakeUserRepo
	nextID   int64
}

func newFakeCommentRepo(users *fakeUserRepo) *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]*itemDomain.Comment), users: users}
}

func (r *fakeCommentRepo) FindByID(ctx context.Context, id int64) (*itemDomain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.comments[id]
	if !ok {
		return nil, domain.NewNotFoundError("comment", id)
	}
	return c, nil
}

func (r *fakeCommentRepo) FindByItemID(_ context.Context, itemID int64) ([]*itemDomain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*itemDomain.Comment
	for _, c := range r.comments {
		if c.ItemID() == itemID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out, nil
}

func (r *fakeCommentRepo) Save(ctx context.Context, c *itemDomain.Comment) (int64, error) {
	author, err := r.users.FindByID(ctx, c.AuthorID())
	if err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.comments[r.nextID] = itemDomain.ReconstructComment(r.nextID, c.Text(), c.ItemID(), c.AuthorID(), author.Name(), time.Now())
	return r.nextID, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[int64]*bookingDomain.Booking
	items    *fakeItemRepo
	nextID   int64
}

func newFakeBookingRepo(items *fakeItemRepo) *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[int64]*bookingDomain.Booking), items: items}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id int64) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking", id)
	}
	return b, nil
}

func (r *fakeBookingRepo) Create(_ context.Context, b *bookingDomain.Booking) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.bookings[r.nextID] = bookingDomain.Reconstruct(r.nextID, b.Start(), b.End(), b.Item(), b.Booker(), b.Status())
	return r.nextID, nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, from, to bookingDomain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status() != from {
		return domain.NewConflictError("booking status was changed by another transaction")
	}
	r.bookings[id] = bookingDomain.Reconstruct(b.ID(), b.Start(), b.End(), b.Item(), b.Booker(), to)
	return nil
}

func (r *fakeBookingRepo) FindByBookerID(_ context.Context, bookerID int64, cond bookingDomain.Condition, page *domain.Page) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool { return b.Booker().ID() == bookerID }, cond, page), nil
}

func (r *fakeBookingRepo) FindByOwnerID(_ context.Context, ownerID int64, cond bookingDomain.Condition, page *domain.Page) ([]*bookingDomain.Booking, error) {
	return r.list(func(b *bookingDomain.Booking) bool { return b.Item().OwnerID() == ownerID }, cond, page), nil
}

func (r *fakeBookingRepo) FindLastForItem(_ context.Context, itemID int64, now time.Time) (*bookingDomain.Info, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *bookingDomain.Booking
	for _, b := range r.bookings {
		if b.Item().ID() != itemID || b.Status() != bookingDomain.StatusApproved || !b.Start().Before(now) {
			continue
		}
		if best == nil || b.End().After(best.End()) {
			best = b
		}
	}
	if best == nil {
		return nil, nil
	}
	return &bookingDomain.Info{ID: best.ID(), BookerID: best.Booker().ID()}, nil
}

func (r *fakeBookingRepo) FindNextForItem(_ context.Context, itemID int64, now time.Time) (*bookingDomain.Info, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var best *bookingDomain.Booking
	for _, b := range r.bookings {
		if b.Item().ID() != itemID || b.Status() != bookingDomain.StatusApproved || !b.Start().After(now) {
			continue
		}
		if best == nil || b.Start().Before(best.Start()) {
			best = b
		}
	}
	if best == nil {
		return nil, nil
	}
	return &bookingDomain.Info{ID: best.ID(), BookerID: best.Booker().ID()}, nil
}

func (r *fakeBookingRepo) HasFinishedBooking(_ context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.Booker().ID() == bookerID && b.Item().ID() == itemID &&
			b.Status() == bookingDomain.StatusApproved && b.End().Before(now) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeBookingRepo) list(owns func(*bookingDomain.Booking) bool, cond bookingDomain.Condition, page *domain.Page) []*bookingDomain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, b := range r.bookings {
		if owns(b) && cond.Matches(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Start().Equal(out[j].Start()) {
			return out[i].Start().After(out[j].Start())
		}
		return out[i].ID() < out[j].ID()
	})
	if page == nil {
		return out
	}
	if page.From >= int64(len(out)) {
		return nil
	}
	out = out[page.From:]
	if page.Size < int64(len(out)) {
		out = out[:page.Size]
	}
	return out
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[int64]*requestDomain.ItemRequest
	nextID   int64
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int64]*requestDomain.ItemRequest)}
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id int64) (*requestDomain.ItemRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, domain.NewNotFoundError("item request", id)
	}
	return req, nil
}

func (r *fakeRequestRepo) FindByRequestorID(_ context.Context, requestorID int64) ([]*requestDomain.ItemRequest, error) {
	return r.list(func(req *requestDomain.ItemRequest) bool { return req.RequestorID() == requestorID }, nil), nil
}

func (r *fakeRequestRepo) FindAllExcept(_ context.Context, requestorID int64, page *domain.Page) ([]*requestDomain.ItemRequest, error) {
	return r.list(func(req *requestDomain.ItemRequest) bool { return req.RequestorID() != requestorID }, page), nil
}

func (r *fakeRequestRepo) Save(_ context.Context, req *requestDomain.ItemRequest) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	r.requests[r.nextID] = requestDomain.Reconstruct(r.nextID, req.Description(), req.RequestorID(), time.Now())
	return r.nextID, nil
}

func (r *fakeRequestRepo) list(keep func(*requestDomain.ItemRequest) bool, page *domain.Page) []*requestDomain.ItemRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*requestDomain.ItemRequest
	for _, req := range r.requests {
		if keep(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created().Equal(out[j].Created()) {
			return out[i].Created().After(out[j].Created())
		}
		return out[i].ID() > out[j].ID()
	})
	if page == nil {
		return out
	}
	if page.From >= int64(len(out)) {
		return nil
	}
	out = out[page.From:]
	if page.Size < int64(len(out)) {
		out = out[:page.Size]
	}
	return out
}

// capturingPublisher records published booking events.
type capturingPublisher struct {
	mu      sync.Mutex
	created []int64
	changed []string
}

func (p *capturingPublisher) BookingCreated(_ context.Context, b *bookingDomain.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, b.ID())
}

func (p *capturingPublisher) BookingStatusChanged(_ context.Context, b *bookingDomain.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changed = append(p.changed, b.Status().String())
}

func pageItems(items []*itemDomain.Item, page *domain.Page) []*itemDomain.Item {
	if page == nil {
		return items
	}
	if page.From >= int64(len(items)) {
		return nil
	}
	items = items[page.From:]
	if page.Size < int64(len(items)) {
		items = items[:page.Size]
	}
	return items
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func mustUser(name, email string) *userDomain.User {
	return userDomain.New(name, email)
}

func mustItem(ownerID int64, name, description string, available bool) *itemDomain.Item {
	return itemDomain.New(ownerID, name, description, available, nil)
}

func reconstructApproved(start, end time.Time, it *itemDomain.Item, booker *userDomain.User) *bookingDomain.Booking {
	return bookingDomain.Reconstruct(0, start, end, it, booker, bookingDomain.StatusApproved)
}
