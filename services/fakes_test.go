package services

import (
	"context"
	"sort"

	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"

	"gorm.io/gorm"
)

// Bellek içi repository sahteleri. Gerçek şemanın unique index davranışı
// Create içinde gorm.ErrDuplicatedKey döndürerek taklit edilir.

type fakeEventRepo struct {
	events map[uint]*models.Event
	nextID uint
	// createErrs sıradaki Create çağrılarına zorla döndürülecek hatalar.
	createErrs []error
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: make(map[uint]*models.Event), nextID: 1}
}

func (r *fakeEventRepo) Create(_ context.Context, event *models.Event) error {
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, e := range r.events {
		if e.Slug == event.Slug {
			return gorm.ErrDuplicatedKey
		}
	}
	event.ID = r.nextID
	r.nextID++
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (*models.Event, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return e, nil
}

func (r *fakeEventRepo) FindByIDWithRelations(ctx context.Context, id uint) (*models.Event, error) {
	return r.FindByID(ctx, id)
}

func (r *fakeEventRepo) FindBySlug(_ context.Context, slug string) (*models.Event, error) {
	for _, e := range r.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeEventRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, e := range r.events {
		if e.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeEventRepo) FindAllByUserIDPaginated(_ context.Context, userID uint, params queryparams.ListParams) ([]models.Event, int64, error) {
	var all []models.Event
	for _, e := range r.events {
		if e.CreatorUserID == userID {
			all = append(all, *e)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))

	start := params.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + params.PerPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *models.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, event *models.Event, _ uint) error {
	if _, ok := r.events[event.ID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.events, event.ID)
	return nil
}

func (r *fakeEventRepo) CountByUserID(_ context.Context, userID uint) (int64, error) {
	var n int64
	for _, e := range r.events {
		if e.CreatorUserID == userID {
			n++
		}
	}
	return n, nil
}

var _ repositories.IEventRepository = (*fakeEventRepo)(nil)

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) add(user models.User) *models.User {
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = &user
	return &user
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.nextID
	r.nextID++
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

var _ repositories.IUserRepository = (*fakeUserRepo)(nil)

type fakeGuestRepo struct {
	guests     map[uint]*models.Guest
	nextID     uint
	createErrs []error
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{guests: make(map[uint]*models.Guest), nextID: 1}
}

func (r *fakeGuestRepo) Create(_ context.Context, guest *models.Guest) error {
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	for _, g := range r.guests {
		if g.CustomLink == guest.CustomLink {
			return gorm.ErrDuplicatedKey
		}
	}
	guest.ID = r.nextID
	r.nextID++
	r.guests[guest.ID] = guest
	return nil
}

func (r *fakeGuestRepo) FindByID(_ context.Context, id uint) (*models.Guest, error) {
	g, ok := r.guests[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return g, nil
}

func (r *fakeGuestRepo) FindByCustomLink(_ context.Context, customLink string) (*models.Guest, error) {
	for _, g := range r.guests {
		if g.CustomLink == customLink {
			return g, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeGuestRepo) CustomLinkExists(ctx context.Context, customLink string) (bool, error) {
	_, err := r.FindByCustomLink(ctx, customLink)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeGuestRepo) FindAllByEventID(_ context.Context, eventID uint) ([]models.Guest, error) {
	var out []models.Guest
	for _, g := range r.guests {
		if g.EventID == eventID {
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeGuestRepo) CountByEventID(_ context.Context, eventID uint) (int64, error) {
	var n int64
	for _, g := range r.guests {
		if g.EventID == eventID {
			n++
		}
	}
	return n, nil
}

func (r *fakeGuestRepo) CountAssignedToTable(_ context.Context, eventID uint, tableName string) (int64, error) {
	var n int64
	for _, g := range r.guests {
		if g.EventID == eventID && g.TableNumber == tableName {
			n++
		}
	}
	return n, nil
}

func (r *fakeGuestRepo) Update(_ context.Context, guest *models.Guest) error {
	if _, ok := r.guests[guest.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.guests[guest.ID] = guest
	return nil
}

func (r *fakeGuestRepo) Delete(_ context.Context, guest *models.Guest, _ uint) error {
	if _, ok := r.guests[guest.ID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.guests, guest.ID)
	return nil
}

var _ repositories.IGuestRepository = (*fakeGuestRepo)(nil)

type fakeRSVPRepo struct {
	byGuestID map[uint]*models.RSVP
	nextID    uint
}

func newFakeRSVPRepo() *fakeRSVPRepo {
	return &fakeRSVPRepo{byGuestID: make(map[uint]*models.RSVP), nextID: 1}
}

func (r *fakeRSVPRepo) FindByGuestID(_ context.Context, guestID uint) (*models.RSVP, error) {
	rsvp, ok := r.byGuestID[guestID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return rsvp, nil
}

func (r *fakeRSVPRepo) Save(_ context.Context, rsvp *models.RSVP) error {
	if rsvp.ID == 0 {
		rsvp.ID = r.nextID
		r.nextID++
	}
	r.byGuestID[rsvp.GuestID] = rsvp
	return nil
}

func (r *fakeRSVPRepo) FindAllByEventID(_ context.Context, _ uint) ([]models.RSVP, error) {
	out := make([]models.RSVP, 0, len(r.byGuestID))
	for _, rsvp := range r.byGuestID {
		out = append(out, *rsvp)
	}
	return out, nil
}

var _ repositories.IRSVPRepository = (*fakeRSVPRepo)(nil)

type fakeTableRepo struct {
	tables map[uint]*models.EventTable
	nextID uint
}

func newFakeTableRepo() *fakeTableRepo {
	return &fakeTableRepo{tables: make(map[uint]*models.EventTable), nextID: 1}
}

func (r *fakeTableRepo) Create(_ context.Context, table *models.EventTable) error {
	table.ID = r.nextID
	r.nextID++
	r.tables[table.ID] = table
	return nil
}

func (r *fakeTableRepo) FindByID(_ context.Context, id uint) (*models.EventTable, error) {
	t, ok := r.tables[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return t, nil
}

func (r *fakeTableRepo) FindAllByEventID(_ context.Context, eventID uint) ([]models.EventTable, error) {
	var out []models.EventTable
	for _, t := range r.tables {
		if t.EventID == eventID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTableRepo) Update(_ context.Context, table *models.EventTable) error {
	if _, ok := r.tables[table.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.tables[table.ID] = table
	return nil
}

func (r *fakeTableRepo) Delete(_ context.Context, table *models.EventTable, _ uint) error {
	if _, ok := r.tables[table.ID]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.tables, table.ID)
	return nil
}

var _ repositories.ITableRepository = (*fakeTableRepo)(nil)

type fakePaymentRepo struct {
	payments map[uint]*models.Payment
	nextID   uint
	// createErrs sıradaki Create çağrılarına zorla döndürülecek hatalar.
	createErrs []error
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: make(map[uint]*models.Payment), nextID: 1}
}

func (r *fakePaymentRepo) Create(_ context.Context, payment *models.Payment) error {
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	payment.ID = r.nextID
	r.nextID++
	r.payments[payment.ID] = payment
	return nil
}

func (r *fakePaymentRepo) FindByID(_ context.Context, id uint) (*models.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return p, nil
}

func (r *fakePaymentRepo) FindAllByUserID(_ context.Context, userID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePaymentRepo) FindAllByEventID(_ context.Context, eventID uint) ([]models.Payment, error) {
	var out []models.Payment
	for _, p := range r.payments {
		if p.EventID == eventID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePaymentRepo) Update(_ context.Context, payment *models.Payment) error {
	if _, ok := r.payments[payment.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.payments[payment.ID] = payment
	return nil
}

var _ repositories.IPaymentRepository = (*fakePaymentRepo)(nil)
