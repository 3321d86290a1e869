package repositories

import (
	"dvsubmit-backend/db/models"

	"github.com/blevesearch/bleve/v2"
)

const usersIndex = "users"

type userDocument struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

func toUserDocument(user models.User) userDocument {
	return userDocument{
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Role:        string(user.Role),
	}
}

func (r *BleveRepository) IndexSingleUser(user models.User) error {
	return r.indexer.IndexDocument(usersIndex, user.ID.String(), toUserDocument(user))
}

func (r *BleveRepository) IndexExistingUsers(users []models.User) error {
	documents := make(map[string]interface{}, len(users))
	for _, user := range users {
		documents[user.ID.String()] = toUserDocument(user)
	}
	return r.indexer.BulkIndexDocuments(usersIndex, documents)
}

func (r *BleveRepository) UpdateUser(user models.User) error {
	return r.indexer.UpdateDocument(usersIndex, user.ID.String(), toUserDocument(user))
}

func (r *BleveRepository) DeleteUser(userID string) error {
	return r.indexer.DeleteDocument(usersIndex, userID)
}

func (r *BleveRepository) SearchUsers(queryString string) (*bleve.SearchResult, error) {
	return r.searchAcrossFields(usersIndex, queryString, []string{
		"first_name", "last_name", "email", "phone_number",
	})
}
