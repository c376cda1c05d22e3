package trip

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"wanderplan/internal/tripplan"
	"wanderplan/internal/types"
)

// FirestoreStore keeps one document per trip, keyed by trip id.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreStore(client *firestore.Client, collection string) *FirestoreStore {
	return &FirestoreStore{client: client, collection: collection}
}

type tripDoc struct {
	UserID      string            `firestore:"userId"`
	Preferences types.Preferences `firestore:"preferences"`
	Plan        map[string]any    `firestore:"plan"`
	CreatedAt   time.Time         `firestore:"createdAt"`
	UpdatedAt   time.Time         `firestore:"updatedAt"`
}

func toDoc(t *Trip) tripDoc {
	return tripDoc{
		UserID:      t.UserID,
		Preferences: t.Preferences,
		Plan:        map[string]any(t.Plan),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (*Trip, error) {
	var d tripDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return &Trip{
		ID:          types.ID(snap.Ref.ID),
		UserID:      d.UserID,
		Preferences: d.Preferences,
		Plan:        tripplan.TripPlan(d.Plan),
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}, nil
}

func (s *FirestoreStore) doc(id types.ID) *firestore.DocumentRef {
	return s.client.Collection(s.collection).Doc(string(id))
}

func (s *FirestoreStore) Create(ctx context.Context, t *Trip) error {
	_, err := s.doc(t.ID).Create(ctx, toDoc(t))
	return err
}

func (s *FirestoreStore) Get(ctx context.Context, id types.ID) (*Trip, error) {
	snap, err := s.doc(id).Get(ctx)
	if err != nil {
		return nil, mapFirestoreErr(err)
	}
	return fromSnapshot(snap)
}

// ListByUser sorts in memory so no composite index is needed.
func (s *FirestoreStore) ListByUser(ctx context.Context, userID string) ([]*Trip, error) {
	snaps, err := s.client.Collection(s.collection).Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*Trip, 0, len(snaps))
	for _, snap := range snaps {
		t, err := fromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *FirestoreStore) Update(ctx context.Context, t *Trip) error {
	ref := s.doc(t.ID)
	return mapFirestoreErr(s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, toDoc(t))
	}))
}

func (s *FirestoreStore) Delete(ctx context.Context, id types.ID) error {
	ref := s.doc(id)
	return mapFirestoreErr(s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Delete(ref)
	}))
}

func mapFirestoreErr(err error) error {
	if err == nil {
		return nil
	}
	if status.Code(err) == codes.NotFound || errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	return err
}
