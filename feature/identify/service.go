package identify

import (
	"context"
	"fmt"
	"strings"

	"catalog-manager/feature/catalog/models"
	"catalog-manager/feature/catalog/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MatchType names the strategy that identified a file.
type MatchType string

const (
	MatchTypeSHA256          MatchType = "sha256"
	MatchTypeSHA1            MatchType = "sha1"
	MatchTypeMD5             MatchType = "md5"
	MatchTypeFileNameAndSize MatchType = "file_name_and_size"
	MatchTypeNoMatch         MatchType = "no_match"
)

// Search is an identify request. Hashes are optional; name and size are always sent.
type Search struct {
	FileName string
	FileSize int64
	MD5      string
	SHA1     string
	SHA256   string
}

// Metadata is the provider-agnostic view of a mapping.
type Metadata struct {
	Provider        string  `json:"provider"`
	ProviderID      *string `json:"provider_id,omitempty"`
	MatchType       string  `json:"match_type"`
	AutomaticReason *string `json:"automatic_reason,omitempty"`
	FailedReason    *string `json:"failed_reason,omitempty"`
	ManualMatchMode *string `json:"manual_match_mode,omitempty"`
}

// MatchResult is the answer to an identify request.
type MatchResult struct {
	MatchType        MatchType  `json:"match_type"`
	GameID           *uuid.UUID `json:"game_id,omitempty"`
	GameName         string     `json:"game_name,omitempty"`
	ExternalMetadata []Metadata `json:"external_metadata"`
}

// Service resolves files to games.
type Service struct {
	store  *store.Store
	logger *zap.Logger
}

// NewService creates an identify service.
func NewService(s *store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: s, logger: logger}
}

type strategy struct {
	matchType MatchType
	find      func(ctx context.Context, q Search) (*models.GameFile, error)
}

func (s *Service) strategies() []strategy {
	byHash := func(h store.Hash, value func(Search) string) func(context.Context, Search) (*models.GameFile, error) {
		return func(ctx context.Context, q Search) (*models.GameFile, error) {
			v := strings.ToLower(strings.TrimSpace(value(q)))
			if v == "" {
				return nil, nil
			}
			return s.store.FindFileByHash(ctx, h, v)
		}
	}
	return []strategy{
		{MatchTypeSHA256, byHash(store.HashSHA256, func(q Search) string { return q.SHA256 })},
		{MatchTypeSHA1, byHash(store.HashSHA1, func(q Search) string { return q.SHA1 })},
		{MatchTypeMD5, byHash(store.HashMD5, func(q Search) string { return q.MD5 })},
		{MatchTypeFileNameAndSize, func(ctx context.Context, q Search) (*models.GameFile, error) {
			if q.FileName == "" {
				return nil, nil
			}
			return s.store.FindFileByNameAndSize(ctx, q.FileName, q.FileSize)
		}},
	}
}

// Identify tries SHA256, SHA1, MD5 and then name plus size. The first strategy with an
// input and a stored file wins. Nothing is written.
func (s *Service) Identify(ctx context.Context, q Search) (*MatchResult, error) {
	for _, st := range s.strategies() {
		file, err := st.find(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("identify by %s: %w", st.matchType, err)
		}
		if file == nil {
			continue
		}
		return s.result(ctx, st.matchType, file)
	}
	return &MatchResult{MatchType: MatchTypeNoMatch, ExternalMetadata: []Metadata{}}, nil
}

func (s *Service) result(ctx context.Context, mt MatchType, file *models.GameFile) (*MatchResult, error) {
	game, err := s.store.GetGame(ctx, file.GameID)
	if err != nil {
		return nil, err
	}
	mappings, err := s.store.MappingsFor(ctx, models.GameOwner(file.GameID))
	if err != nil {
		return nil, err
	}

	res := &MatchResult{MatchType: mt, GameID: &file.GameID, ExternalMetadata: make([]Metadata, 0, len(mappings))}
	if game != nil {
		res.GameName = game.Name
	}
	for _, m := range mappings {
		res.ExternalMetadata = append(res.ExternalMetadata, view(m))
	}
	s.logger.Debug("File identified",
		zap.String("match_type", string(mt)),
		zap.String("game_id", file.GameID.String()),
		zap.Int("mappings", len(mappings)),
	)
	return res, nil
}

func view(m models.ExternalMetadataMapping) Metadata {
	md := Metadata{
		Provider:   string(m.Provider),
		ProviderID: m.ProviderID,
		MatchType:  string(m.MatchType),
	}
	if m.AutomaticReason != nil {
		r := string(*m.AutomaticReason)
		md.AutomaticReason = &r
	}
	if m.FailedReason != nil {
		r := string(*m.FailedReason)
		md.FailedReason = &r
	}
	if m.ManualMatchMode != nil {
		r := string(*m.ManualMatchMode)
		md.ManualMatchMode = &r
	}
	return md
}
