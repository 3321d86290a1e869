package repositories

import (
	"dvsubmit-backend/db/models"

	"github.com/blevesearch/bleve/v2"
)

const applicationsIndex = "applications"

// applicationDocument is the flattened shape stored in the index. Only the
// fields admins actually search on are carried.
type applicationDocument struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	Email                string `json:"email"`
	PhoneNumber          string `json:"phone_number"`
	CountryOfEligibility string `json:"country_of_eligibility"`
	Status               string `json:"status"`
	PaymentReference     string `json:"payment_reference"`
	ConfirmationNumber   string `json:"confirmation_number"`
}

func toApplicationDocument(application models.Application) applicationDocument {
	doc := applicationDocument{
		FirstName:            application.FirstName,
		LastName:             application.LastName,
		Email:                application.Email,
		PhoneNumber:          application.PhoneNumber,
		CountryOfEligibility: application.CountryOfEligibility,
		Status:               string(application.Status),
	}
	if application.PaymentReference != nil {
		doc.PaymentReference = *application.PaymentReference
	}
	if application.ConfirmationNumber != nil {
		doc.ConfirmationNumber = *application.ConfirmationNumber
	}
	return doc
}

func (r *BleveRepository) IndexSingleApplication(application models.Application) error {
	return r.indexer.IndexDocument(applicationsIndex, application.ID.String(), toApplicationDocument(application))
}

func (r *BleveRepository) IndexExistingApplications(applications []models.Application) error {
	documents := make(map[string]interface{}, len(applications))
	for _, application := range applications {
		documents[application.ID.String()] = toApplicationDocument(application)
	}
	return r.indexer.BulkIndexDocuments(applicationsIndex, documents)
}

func (r *BleveRepository) UpdateApplication(application models.Application) error {
	return r.indexer.UpdateDocument(applicationsIndex, application.ID.String(), toApplicationDocument(application))
}

func (r *BleveRepository) DeleteApplication(applicationID string) error {
	return r.indexer.DeleteDocument(applicationsIndex, applicationID)
}

// SearchApplications combines exact, prefix and fuzzy matching across the
// searchable fields, exact matches ranked highest.
func (r *BleveRepository) SearchApplications(queryString string) (*bleve.SearchResult, error) {
	return r.searchAcrossFields(applicationsIndex, queryString, []string{
		"first_name", "last_name", "email", "phone_number",
		"country_of_eligibility", "payment_reference", "confirmation_number",
	})
}

func (r *BleveRepository) searchAcrossFields(indexName, queryString string, fields []string) (*bleve.SearchResult, error) {
	booleanQuery := bleve.NewBooleanQuery()

	for _, field := range fields {
		matchQuery := bleve.NewMatchQuery(queryString)
		matchQuery.SetField(field)
		matchQuery.SetBoost(3.0)
		booleanQuery.AddShould(matchQuery)

		prefixQuery := bleve.NewPrefixQuery(queryString)
		prefixQuery.SetField(field)
		prefixQuery.SetBoost(2.0)
		booleanQuery.AddShould(prefixQuery)

		fuzzyQuery := bleve.NewFuzzyQuery(queryString)
		fuzzyQuery.SetField(field)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetBoost(1.0)
		booleanQuery.AddShould(fuzzyQuery)
	}

	booleanQuery.SetMinShould(1)
	return r.indexer.SearchIndex(indexName, booleanQuery, 20)
}
