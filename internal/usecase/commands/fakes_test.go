//go:build unit

package commands_test

import (
	"context"
	"strings"
	"time"

	"cappa-booking/internal/domain/booking"
	"cappa-booking/internal/domain/user"
	"cappa-booking/internal/infra"
	"cappa-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

type fakeReservationRepo struct {
	items     map[uuid.UUID]*booking.Reservation
	createErr error
	updateErr error
	updated   int
}

func newFakeReservationRepo(items ...*booking.Reservation) *fakeReservationRepo {
	m := make(map[uuid.UUID]*booking.Reservation, len(items))
	for _, res := range items {
		m[res.ID()] = res
	}
	return &fakeReservationRepo{items: m}
}

func (r *fakeReservationRepo) Create(_ context.Context, res *booking.Reservation) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.items[res.ID()] = res
	return nil
}

func (r *fakeReservationRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Reservation, error) {
	res, ok := r.items[id]
	if !ok {
		return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return res, nil
}

func (r *fakeReservationRepo) Update(_ context.Context, res *booking.Reservation) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.items[res.ID()]; !ok {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	r.items[res.ID()] = res
	r.updated++
	return nil
}

type fakeUserRepo struct {
	byID       map[uuid.UUID]*user.User
	createErr  error
	updateErr  error
	lastLogins int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uuid.UUID]*user.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.byID {
		if u.Email().Value() == email {
			return u, nil
		}
	}
	return nil, infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
}

func (r *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.byID[u.ID()]; !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	r.byID[u.ID()] = u
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	if _, ok := r.byID[id]; !ok {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	r.lastLogins++
	return nil
}

type fakeSnapshotStore struct {
	items   map[uuid.UUID]*booking.Snapshot
	saveErr error
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{items: make(map[uuid.UUID]*booking.Snapshot)}
}

func (s *fakeSnapshotStore) Save(_ context.Context, key uuid.UUID, snap *booking.Snapshot) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	copied := *snap
	s.items[key] = &copied
	return nil
}

func (s *fakeSnapshotStore) Find(_ context.Context, key uuid.UUID) (*booking.Snapshot, error) {
	snap, ok := s.items[key]
	if !ok {
		return nil, infra.WrapRepoErr("snapshot not found", nil, infra.KindNotFound)
	}
	copied := *snap
	return &copied, nil
}

func (s *fakeSnapshotStore) Delete(_ context.Context, key uuid.UUID) error {
	delete(s.items, key)
	return nil
}

type fakeGateway struct {
	name          string
	initiation    *commands.GatewayInitiation
	initErr       error
	verification  *commands.GatewayVerification
	verifyErr     error
	lastInitiate  commands.InitiateParams
	lastReference string
}

func (g *fakeGateway) Name() string {
	return g.name
}

func (g *fakeGateway) Initialize(_ context.Context, params commands.InitiateParams) (*commands.GatewayInitiation, error) {
	g.lastInitiate = params
	if g.initErr != nil {
		return nil, g.initErr
	}
	return g.initiation, nil
}

func (g *fakeGateway) Verify(_ context.Context, reference string) (*commands.GatewayVerification, error) {
	g.lastReference = reference
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.verification, nil
}

type fakeResolver struct {
	gateways map[string]commands.PaymentGateway
}

func newFakeResolver(gateways ...commands.PaymentGateway) *fakeResolver {
	m := make(map[string]commands.PaymentGateway, len(gateways))
	for _, gw := range gateways {
		m[gw.Name()] = gw
	}
	return &fakeResolver{gateways: m}
}

func (r *fakeResolver) Resolve(name string) (commands.PaymentGateway, bool) {
	gw, ok := r.gateways[strings.ToLower(name)]
	return gw, ok
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	email string
	code  string
}

func (m *fakeMailer) SendVerificationCode(_ context.Context, email, code string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{email: email, code: code})
	return nil
}
