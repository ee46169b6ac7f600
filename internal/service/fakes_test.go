package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sportivo/platform/internal/domain"
	"github.com/sportivo/platform/internal/repository"
)

// In-memory stand-ins for the pgx repositories. The booking fakes guard their
// state with a mutex so the concurrency tests exercise real CAS semantics.

type fakeRow struct{ err error }

func (r fakeRow) Scan(...interface{}) error { return r.err }

type fakeTx struct{}

func (fakeTx) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeTx) Query(context.Context, string, ...interface{}) (pgx.Rows, error) { return nil, nil }
func (fakeTx) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return fakeRow{err: fmt.Errorf("no rows in fake")}
}
func (fakeTx) Commit(context.Context) error   { return nil }
func (fakeTx) Rollback(context.Context) error { return nil }

type fakeDB struct{}

func (fakeDB) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeDB) Query(context.Context, string, ...interface{}) (pgx.Rows, error) { return nil, nil }
func (fakeDB) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	// Guards fail open when the count query errors.
	return fakeRow{err: fmt.Errorf("no rows in fake")}
}
func (fakeDB) Begin(context.Context) (repository.Tx, error) { return fakeTx{}, nil }

type fakeOutbox struct {
	mu     sync.Mutex
	drafts []domain.OutboxDraft
}

func (f *fakeOutbox) Insert(_ context.Context, _ repository.DBTX, draft domain.OutboxDraft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts = append(f.drafts, draft)
	return nil
}

func (f *fakeOutbox) FetchUnpublished(context.Context, repository.DBTX, int) ([]repository.OutboxRow, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkPublished(context.Context, repository.DBTX, []int64) error { return nil }

func (f *fakeOutbox) eventTypes() []domain.EventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.EventType, 0, len(f.drafts))
	for _, d := range f.drafts {
		out = append(out, d.EventType)
	}
	return out
}

type fakeUserRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[uuid.UUID]*domain.User{}}
}

func (f *fakeUserRepo) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, _ repository.DBTX, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Create(_ context.Context, _ repository.DBTX, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.byID[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, _ repository.DBTX, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.byID[u.ID]; ok {
		existing.Nama = u.Nama
		existing.Kelamin = u.Kelamin
		existing.TanggalLahir = u.TanggalLahir
		existing.NomorHandphone = u.NomorHandphone
	}
	return nil
}

type fakeSessionRepo struct {
	mu      sync.Mutex
	byToken map[uuid.UUID]*domain.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byToken: map[uuid.UUID]*domain.Session{}}
}

func (f *fakeSessionRepo) Find(_ context.Context, _ repository.DBTX, token uuid.UUID) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.byToken[token]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionRepo) Create(_ context.Context, _ repository.DBTX, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.byToken[s.Token] = &cp
	return nil
}

func (f *fakeSessionRepo) UpdateProfileCache(_ context.Context, _ repository.DBTX, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.byToken {
		if s.UserID == u.ID {
			s.Nama = u.Nama
			s.Kelamin = u.Kelamin
			s.TanggalLahir = u.TanggalLahir
			s.NomorHandphone = u.NomorHandphone
		}
	}
	return nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, _ repository.DBTX, token uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byToken, token)
	return nil
}

type fakeCoachRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*domain.Coach
}

func newFakeCoachRepo() *fakeCoachRepo {
	return &fakeCoachRepo{byID: map[uuid.UUID]*domain.Coach{}}
}

func (f *fakeCoachRepo) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Coach, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCoachRepo) Create(_ context.Context, _ repository.DBTX, c *domain.Coach) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCoachRepo) Search(_ context.Context, _ repository.DBTX, _ repository.CoachSearch) ([]domain.Coach, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Coach
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, nil
}

// Book mirrors the conditional UPDATE: the check and the write happen under
// one lock, so exactly one concurrent caller wins.
func (f *fakeCoachRepo) Book(_ context.Context, _ repository.DBTX, coachID, pesertaID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[coachID]
	if !ok || c.IsBooked {
		return false, nil
	}
	id := pesertaID
	c.PesertaID = &id
	c.IsBooked = true
	return true, nil
}

func (f *fakeCoachRepo) CancelBooking(_ context.Context, _ repository.DBTX, coachID, pesertaID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[coachID]
	if !ok || c.PesertaID == nil || *c.PesertaID != pesertaID {
		return false, nil
	}
	c.PesertaID = nil
	c.IsBooked = false
	return true, nil
}

func (f *fakeCoachRepo) SetBlocked(_ context.Context, _ repository.DBTX, coachID uuid.UUID, blocked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[coachID]
	if !ok {
		return nil
	}
	if blocked {
		c.IsBooked = true
	} else {
		c.IsBooked = false
		c.PesertaID = nil
	}
	return nil
}

func (f *fakeCoachRepo) Delete(_ context.Context, _ repository.DBTX, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

type slotKey struct {
	courtID uuid.UUID
	date    string
}

type fakeCourtRepo struct {
	mu    sync.Mutex
	byID  map[uuid.UUID]*domain.Court
	slots map[slotKey]*domain.TimeSlot
}

func newFakeCourtRepo() *fakeCourtRepo {
	return &fakeCourtRepo{
		byID:  map[uuid.UUID]*domain.Court{},
		slots: map[slotKey]*domain.TimeSlot{},
	}
}

func (f *fakeCourtRepo) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Court, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCourtRepo) Create(_ context.Context, _ repository.DBTX, c *domain.Court) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCourtRepo) Search(_ context.Context, _ repository.DBTX, _ repository.CourtSearch) ([]domain.Court, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Court
	for _, c := range f.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCourtRepo) Delete(_ context.Context, _ repository.DBTX, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeCourtRepo) FindSlot(_ context.Context, _ repository.DBTX, courtID uuid.UUID, date string) (*domain.TimeSlot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[slotKey{courtID, date}]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeCourtRepo) UpsertSlot(_ context.Context, _ repository.DBTX, courtID uuid.UUID, date string, available bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[slotKey{courtID, date}] = &domain.TimeSlot{
		CourtID:     courtID,
		Date:        date,
		StartTime:   domain.SlotDayStart,
		EndTime:     domain.SlotDayEnd,
		IsAvailable: available,
	}
	return nil
}

func (f *fakeCourtRepo) BookSlot(_ context.Context, _ repository.DBTX, courtID uuid.UUID, date string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := slotKey{courtID, date}
	if s, ok := f.slots[key]; ok {
		if !s.IsAvailable {
			return false, nil
		}
		s.IsAvailable = false
		return true, nil
	}
	f.slots[key] = &domain.TimeSlot{
		CourtID:     courtID,
		Date:        date,
		StartTime:   domain.SlotDayStart,
		EndTime:     domain.SlotDayEnd,
		IsAvailable: false,
	}
	return true, nil
}

type regKey struct {
	eventID    uuid.UUID
	userID     uuid.UUID
	scheduleID uuid.UUID
}

type fakeEventRepo struct {
	mu        sync.Mutex
	byID      map[uuid.UUID]*domain.Event
	schedules map[uuid.UUID]*domain.EventSchedule
	regs      map[regKey]*domain.EventRegistration
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:      map[uuid.UUID]*domain.Event{},
		schedules: map[uuid.UUID]*domain.EventSchedule{},
		regs:      map[regKey]*domain.EventRegistration{},
	}
}

func (f *fakeEventRepo) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) Create(_ context.Context, _ repository.DBTX, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Update(_ context.Context, _ repository.DBTX, e *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, _ repository.DBTX, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) List(_ context.Context, _ repository.DBTX, category domain.Sport) ([]domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Event
	for _, e := range f.byID {
		if category == "" || e.SportType == category {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) SetStatus(_ context.Context, _ repository.DBTX, id uuid.UUID, status domain.EventStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byID[id]; ok {
		e.Status = status
	}
	return nil
}

func (f *fakeEventRepo) CreateSchedule(_ context.Context, _ repository.DBTX, s *domain.EventSchedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	f.schedules[s.ID] = &cp
	return nil
}

func (f *fakeEventRepo) ListSchedules(_ context.Context, _ repository.DBTX, eventID uuid.UUID) ([]domain.EventSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.EventSchedule
	for _, s := range f.schedules {
		if s.EventID == eventID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) FindSchedule(_ context.Context, _ repository.DBTX, scheduleID uuid.UUID) (*domain.EventSchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.schedules[scheduleID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeEventRepo) Register(_ context.Context, _ repository.DBTX, r *domain.EventRegistration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := regKey{r.EventID, r.UserID, r.ScheduleID}
	if _, exists := f.regs[key]; exists {
		return false, nil
	}
	cp := *r
	f.regs[key] = &cp
	return true, nil
}

func (f *fakeEventRepo) CancelRegistrations(_ context.Context, _ repository.DBTX, eventID, userID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var removed int64
	for key := range f.regs {
		if key.eventID == eventID && key.userID == userID {
			delete(f.regs, key)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeEventRepo) CountRegistrations(_ context.Context, _ repository.DBTX, eventID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for key := range f.regs {
		if key.eventID == eventID {
			count++
		}
	}
	return count, nil
}

func (f *fakeEventRepo) ListRegistrations(_ context.Context, _ repository.DBTX, eventID uuid.UUID) ([]domain.EventRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.EventRegistration
	for key, r := range f.regs {
		if key.eventID == eventID {
			out = append(out, *r)
		}
	}
	return out, nil
}

type participantKey struct {
	postID uuid.UUID
	userID uuid.UUID
}

type fakePartnerRepo struct {
	mu           sync.Mutex
	byID         map[uuid.UUID]*domain.PartnerPost
	participants map[participantKey]bool
}

func newFakePartnerRepo() *fakePartnerRepo {
	return &fakePartnerRepo{
		byID:         map[uuid.UUID]*domain.PartnerPost{},
		participants: map[participantKey]bool{},
	}
}

func (f *fakePartnerRepo) FindByID(_ context.Context, _ repository.DBTX, id uuid.UUID) (*domain.PartnerPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakePartnerRepo) Create(_ context.Context, _ repository.DBTX, p *domain.PartnerPost) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePartnerRepo) List(_ context.Context, _ repository.DBTX) ([]domain.PartnerPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.PartnerPost
	for _, p := range f.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePartnerRepo) Delete(_ context.Context, _ repository.DBTX, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.byID, id)
	return nil
}

func (f *fakePartnerRepo) Join(_ context.Context, _ repository.DBTX, postID, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := participantKey{postID, userID}
	if f.participants[key] {
		return false, nil
	}
	f.participants[key] = true
	return true, nil
}

func (f *fakePartnerRepo) Leave(_ context.Context, _ repository.DBTX, postID, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.participants, participantKey{postID, userID})
	return nil
}

func (f *fakePartnerRepo) IsParticipant(_ context.Context, _ repository.DBTX, postID, userID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.participants[participantKey{postID, userID}], nil
}

func (f *fakePartnerRepo) CountParticipants(_ context.Context, _ repository.DBTX, postID uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for key := range f.participants {
		if key.postID == postID {
			count++
		}
	}
	return count, nil
}

func (f *fakePartnerRepo) ListParticipants(_ context.Context, _ repository.DBTX, postID uuid.UUID) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.User
	for key := range f.participants {
		if key.postID == postID {
			out = append(out, domain.User{ID: key.userID})
		}
	}
	return out, nil
}
