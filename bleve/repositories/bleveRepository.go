package repositories

import (
	"context"

	bleveindex "dvsubmit-backend/bleve/services"
	"dvsubmit-backend/db/models"
)

type BleveRepository struct {
	indexer *bleveindex.IndexingService
}

type BleveRepositoryInterface interface {
	DeleteAllIndices(ctx context.Context) error

	IndexSingleApplication(application models.Application) error
	IndexExistingApplications(applications []models.Application) error
	UpdateApplication(application models.Application) error
	DeleteApplication(applicationID string) error

	IndexSingleUser(user models.User) error
	IndexExistingUsers(users []models.User) error
	UpdateUser(user models.User) error
	DeleteUser(userID string) error
}

func NewBleveRepository(indexer *bleveindex.IndexingService) (*BleveRepository, BleveRepositoryInterface) {
	repo := &BleveRepository{indexer: indexer}
	return repo, repo
}

func (r *BleveRepository) DeleteAllIndices(ctx context.Context) error {
	return r.indexer.DeleteAllIndices()
}
