package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Sulaymaanabubakr/empylohealth-sub000/internal/model"
)

const usersCollection = "users"

type ProfileService struct {
	db *firestore.Client
}

func NewProfileService(db *firestore.Client) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) GetProfile(ctx context.Context, uid string) (*model.UserProfile, error) {
	doc, err := s.db.Collection(usersCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	var profile model.UserProfile
	if err := doc.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to parse user profile: %w", err)
	}
	profile.UID = doc.Ref.ID

	return &profile, nil
}
