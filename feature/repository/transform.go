package repository

import (
	"errors"

	"record-sync/core/utils"
)

// Transformer converts a source catalog record into a destination payload.
type Transformer interface {
	Transform(sourceID string, record map[string]any) (map[string]any, error)
}

// EnvelopeTransformer keeps the source record verbatim and adds the minimal metadata
// the repository indexes on.
type EnvelopeTransformer struct {
	// ResourceType is stored as metadata.resource_type when set.
	ResourceType string
}

// Transform implements Transformer.
func (t EnvelopeTransformer) Transform(sourceID string, record map[string]any) (map[string]any, error) {
	if record == nil {
		return nil, errors.New("empty source record")
	}

	metadata := map[string]any{
		"source_id": sourceID,
		"title":     titleOf(record),
	}
	if t.ResourceType != "" {
		metadata["resource_type"] = t.ResourceType
	}
	if d := utils.FirstString(record, "publicationDate", "publication_date"); d != "" {
		metadata["publication_date"] = d
	}

	return map[string]any{
		"metadata": metadata,
		"source":   record,
	}, nil
}

// titleOf reads "title" as a string or as a localized {"value": ...} object.
func titleOf(record map[string]any) string {
	switch v := record["title"].(type) {
	case string:
		return v
	case map[string]any:
		return utils.FirstString(v, "value", "text")
	default:
		return ""
	}
}
