package models

import "github.com/blevesearch/bleve/v2"

// SearchHit is one flattened result row with its relevance score.
type SearchHit struct {
	ID     string                 `json:"id"`
	Score  float64                `json:"score"`
	Fields map[string]interface{} `json:"fields"`
}

type SearchResponse struct {
	Total uint64      `json:"total"`
	Hits  []SearchHit `json:"hits"`
}

// FromBleveResult flattens a raw bleve result for the API.
func FromBleveResult(result *bleve.SearchResult) SearchResponse {
	response := SearchResponse{
		Total: result.Total,
		Hits:  make([]SearchHit, 0, len(result.Hits)),
	}
	for _, hit := range result.Hits {
		response.Hits = append(response.Hits, SearchHit{
			ID:     hit.ID,
			Score:  hit.Score,
			Fields: hit.Fields,
		})
	}
	return response
}
