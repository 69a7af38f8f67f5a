package collections

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

type CollectionService struct {
	collectionRepository *CollectionRepository
}

func (s *CollectionService) CreateCollection(
	userID uuid.UUID,
	request *CreateCollectionRequestDTO,
) (*Collection, error) {
	collection := &Collection{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        request.Name,
		Description: request.Description,
		IsPublic:    request.IsPublic,
	}

	if err := s.collectionRepository.CreateCollection(collection); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return collection, nil
}

func (s *CollectionService) GetCollection(collectionID, userID uuid.UUID) (*Collection, error) {
	return s.getOwnedCollection(collectionID, userID)
}

func (s *CollectionService) ListCollections(userID uuid.UUID) (*GetCollectionsResponseDTO, error) {
	collections, err := s.collectionRepository.GetCollectionsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	return &GetCollectionsResponseDTO{Collections: collections}, nil
}

func (s *CollectionService) UpdateCollection(
	collectionID, userID uuid.UUID,
	request *UpdateCollectionRequestDTO,
) (*Collection, error) {
	collection, err := s.getOwnedCollection(collectionID, userID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		collection.Name = *request.Name
	}

	if request.Description != nil {
		collection.Description = *request.Description
	}

	if request.IsPublic != nil {
		collection.IsPublic = *request.IsPublic
	}

	if err := s.collectionRepository.UpdateCollection(collection); err != nil {
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	return collection, nil
}

func (s *CollectionService) DeleteCollection(collectionID, userID uuid.UUID) error {
	if _, err := s.getOwnedCollection(collectionID, userID); err != nil {
		return err
	}

	if err := s.collectionRepository.DeleteCollection(collectionID); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}

	return nil
}

// getOwnedCollection applies ownership filtering: foreign and missing
// collections are indistinguishable to the caller.
func (s *CollectionService) getOwnedCollection(collectionID, userID uuid.UUID) (*Collection, error) {
	collection, err := s.collectionRepository.GetCollectionByID(collectionID)
	if err != nil {
		return nil, errors.New("collection not found")
	}

	if collection.UserID != userID {
		return nil, errors.New("collection not found")
	}

	return collection, nil
}
