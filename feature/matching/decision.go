package matching

import (
	"strconv"

	"catalog-manager/feature/catalog/models"
)

// decision is the outcome of one match attempt, before it is written.
type decision struct {
	matchType  models.MatchType
	providerID *string
	automatic  *models.AutomaticReason
	failed     *models.FailedReason
}

func matchedBy(id int64, reason models.AutomaticReason) decision {
	pid := strconv.FormatInt(id, 10)
	return decision{matchType: models.MatchTypeAutomatic, providerID: &pid, automatic: &reason}
}

func copiedFrom(providerID string, reason models.AutomaticReason) decision {
	return decision{matchType: models.MatchTypeAutomatic, providerID: &providerID, automatic: &reason}
}

func noMatch(reason models.FailedReason) decision {
	return decision{matchType: models.MatchTypeFailed, failed: &reason}
}

func (d decision) mapping(owner models.Owner, provider models.Provider) (*models.ExternalMetadataMapping, error) {
	m, err := models.NewMapping(owner, provider, d.matchType)
	if err != nil {
		return nil, err
	}
	m.ProviderID = d.providerID
	m.AutomaticReason = d.automatic
	m.FailedReason = d.failed
	return m, nil
}
