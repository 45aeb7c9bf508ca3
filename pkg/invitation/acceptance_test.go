// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invitation

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/agency-service/internal/storage"
	"github.com/canonical/agency-service/internal/types"
)

// memoryStore is a transactional in-memory store, transactions are serialized
// and rolled back to a snapshot on error.
type memoryStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	invitations   map[string]types.Invitation
	users         map[string]types.User
	notifications map[string]types.Notification
	agencies      map[string]types.Agency
}

func newMemoryStore() *memoryStore {
	s := new(memoryStore)
	s.invitations = map[string]types.Invitation{}
	s.users = map[string]types.User{}
	s.notifications = map[string]types.Notification{}
	s.agencies = map[string]types.Agency{}
	return s
}

func (s *memoryStore) WithTx(ctx context.Context, fn func(context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	invitations := maps.Clone(s.invitations)
	users := maps.Clone(s.users)
	notifications := maps.Clone(s.notifications)
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.invitations = invitations
		s.users = users
		s.notifications = notifications
		s.mu.Unlock()
		return err
	}

	return nil
}

func (s *memoryStore) GetPendingInvitationByEmail(_ context.Context, email string) (*types.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invitations[email]
	if !ok || inv.Status != types.InvitationPending {
		return nil, storage.ErrNotFound
	}
	return &inv, nil
}

func (s *memoryStore) UpsertInvitation(_ context.Context, inv *types.Invitation) (*types.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := *inv
	i.Status = types.InvitationPending
	s.invitations[i.Email] = i
	return &i, nil
}

func (s *memoryStore) ListInvitationsByAgencyID(_ context.Context, agencyID string) ([]*types.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*types.Invitation, 0)
	for _, inv := range s.invitations {
		if inv.AgencyID == agencyID {
			out = append(out, &inv)
		}
	}
	return out, nil
}

func (s *memoryStore) SetInvitationStatus(_ context.Context, agencyID, email string, status types.InvitationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv, ok := s.invitations[email]
	if !ok || inv.AgencyID != agencyID {
		return storage.ErrNotFound
	}
	inv.Status = status
	s.invitations[email] = inv
	return nil
}

func (s *memoryStore) DeleteInvitationByEmail(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.invitations, email)
	return nil
}

func (s *memoryStore) CreateOrClaimUser(_ context.Context, u *types.User) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[u.Email]; ok && existing.AgencyID != nil {
		return nil, fmt.Errorf("user %s already linked to an agency: %w", u.Email, storage.ErrDuplicateKey)
	}

	user := *u
	s.users[u.Email] = user
	return &user, nil
}

func (s *memoryStore) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *memoryStore) GetAgencyByID(_ context.Context, id string) (*types.Agency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.agencies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &a, nil
}

func (s *memoryStore) CreateNotification(_ context.Context, n *types.Notification) (*types.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.IdempotencyKey != nil {
		if _, ok := s.notifications[*n.IdempotencyKey]; ok {
			return nil, nil
		}
	}

	created := *n
	created.ID = fmt.Sprintf("notification-%d", len(s.notifications)+1)

	key := created.ID
	if n.IdempotencyKey != nil {
		key = *n.IdempotencyKey
	}
	s.notifications[key] = created
	return &created, nil
}

func newMemoryService(t *testing.T, store *memoryStore) (*Service, *serviceMocks) {
	m := newServiceMocks(t)
	m.security.EXPECT().InvitationAccepted(gomock.Any(), gomock.Any()).AnyTimes()
	m.authz.EXPECT().AssignAgencyRole(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return NewService(store, store, m.idp, m.authz, m.mailer, "24h", m.tracer, m.monitor, m.logger), m
}

func seedInvitation(store *memoryStore) {
	store.agencies["agency-a"] = types.Agency{ID: "agency-a", Name: "A"}
	store.invitations["alice@example.com"] = types.Invitation{
		ID:       "inv-alice",
		Email:    "alice@example.com",
		AgencyID: "agency-a",
		Role:     types.RoleSubAccountUser,
		Status:   types.InvitationPending,
	}
}

func TestService_AcceptScenario(t *testing.T) {
	store := newMemoryStore()
	seedInvitation(store)

	s, m := newMemoryService(t, store)
	m.idp.EXPECT().UpdateSubjectMetadata(gomock.Any(), "subject-alice", types.RoleSubAccountUser).Return(nil).Times(1)

	alice := &types.Subject{ID: "subject-alice", Email: "alice@example.com", Name: "Alice"}

	first, err := s.AcceptWithResult(context.Background(), alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.State != Accepted || first.AgencyID == nil || *first.AgencyID != "agency-a" {
		t.Fatalf("unexpected first result %+v", first)
	}

	second, err := s.AcceptWithResult(context.Background(), alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.State != Resolved || second.AgencyID == nil || *second.AgencyID != "agency-a" {
		t.Fatalf("unexpected second result %+v", second)
	}

	if _, ok := store.invitations["alice@example.com"]; ok {
		t.Error("invitation was not consumed")
	}
	if len(store.users) != 1 {
		t.Errorf("expected one user, got %d", len(store.users))
	}
	if store.users["alice@example.com"].Role != types.RoleSubAccountUser {
		t.Errorf("unexpected role %s", store.users["alice@example.com"].Role)
	}
	if len(store.notifications) != 1 {
		t.Errorf("expected one notification, got %d", len(store.notifications))
	}
}

func TestService_AcceptConcurrent(t *testing.T) {
	store := newMemoryStore()
	seedInvitation(store)

	s, m := newMemoryService(t, store)
	m.idp.EXPECT().UpdateSubjectMetadata(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	alice := &types.Subject{ID: "subject-alice", Email: "alice@example.com", Name: "Alice"}

	const callers = 8

	var wg sync.WaitGroup
	results := make([]*Result, callers)
	errs := make([]error, callers)

	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = s.AcceptWithResult(context.Background(), alice)
		}()
	}
	wg.Wait()

	accepted := 0
	for i := range callers {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if results[i].AgencyID == nil || *results[i].AgencyID != "agency-a" {
			t.Errorf("caller %d got agency %v", i, results[i].AgencyID)
		}
		if results[i].State == Accepted {
			accepted++
		}
	}

	if accepted != 1 {
		t.Errorf("expected exactly one acceptance, got %d", accepted)
	}
	if len(store.users) != 1 || len(store.notifications) != 1 {
		t.Errorf("expected one user and one notification, got %d and %d", len(store.users), len(store.notifications))
	}
}

func TestService_AcceptMetadataFailureRollsBack(t *testing.T) {
	store := newMemoryStore()
	seedInvitation(store)

	s, m := newMemoryService(t, store)
	m.idp.EXPECT().UpdateSubjectMetadata(gomock.Any(), gomock.Any(), gomock.Any()).Return(fmt.Errorf("kratos down"))

	_, err := s.AcceptWithResult(context.Background(), &types.Subject{ID: "subject-alice", Email: "alice@example.com"})
	if err == nil {
		t.Fatal("expected error")
	}

	if inv, ok := store.invitations["alice@example.com"]; !ok || inv.Status != types.InvitationPending {
		t.Error("invitation should still be pending")
	}
	if len(store.users) != 0 || len(store.notifications) != 0 {
		t.Error("user and notification should have been rolled back")
	}
}

func TestService_AcceptRevokedInvitationIsIgnored(t *testing.T) {
	store := newMemoryStore()
	seedInvitation(store)

	s, _ := newMemoryService(t, store)

	if err := s.Revoke(context.Background(), "agency-a", "alice@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := s.AcceptWithResult(context.Background(), &types.Subject{ID: "subject-alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.State != Resolved || res.AgencyID != nil {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestService_AcceptForeignAgencyUserIsTerminal(t *testing.T) {
	store := newMemoryStore()
	seedInvitation(store)

	other := "agency-b"
	store.users["alice@example.com"] = types.User{
		ID:       "subject-alice",
		Email:    "alice@example.com",
		Role:     types.RoleAgencyAdmin,
		AgencyID: &other,
	}

	s, m := newMemoryService(t, store)
	m.security.EXPECT().AuthzFailure("subject-alice", "invitation:inv-alice").Times(1)
	m.logger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	alice := &types.Subject{ID: "subject-alice", Email: "alice@example.com", Name: "Alice"}

	first, err := s.AcceptWithResult(context.Background(), alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.State != Rejected || first.AgencyID == nil || *first.AgencyID != other {
		t.Fatalf("unexpected first result %+v", first)
	}

	if inv := store.invitations["alice@example.com"]; inv.Status != types.InvitationRevoked {
		t.Errorf("expected the invitation to be revoked, got %s", inv.Status)
	}

	second, err := s.AcceptWithResult(context.Background(), alice)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.State != Resolved || second.AgencyID == nil || *second.AgencyID != other {
		t.Fatalf("unexpected second result %+v", second)
	}

	if store.users["alice@example.com"].Role != types.RoleAgencyAdmin {
		t.Errorf("role of the existing user changed to %s", store.users["alice@example.com"].Role)
	}
	if len(store.notifications) != 0 {
		t.Errorf("expected no notification, got %d", len(store.notifications))
	}
}
