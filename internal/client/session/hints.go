package session

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/clinicdesk/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/clinicdesk/internal/common"
)

// HintStore persists the identity hint. Load returns "" when no hint is
// stored.
type HintStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, username string) error
	Delete(ctx context.Context) error
}

// MetadataHints keeps the hint in the metadata table under
// common.IdentityHintKey.
type MetadataHints struct {
	repo metadata.Repository
}

func NewMetadataHints(repo metadata.Repository) *MetadataHints {
	return &MetadataHints{repo: repo}
}

func (h *MetadataHints) Load(ctx context.Context) (string, error) {
	v, err := h.repo.Get(ctx, common.IdentityHintKey)
	if err != nil {
		return "", fmt.Errorf("load identity hint: %w", err)
	}
	return string(v), nil
}

func (h *MetadataHints) Save(ctx context.Context, username string) error {
	if err := h.repo.Set(ctx, common.IdentityHintKey, []byte(username)); err != nil {
		return fmt.Errorf("save identity hint: %w", err)
	}
	return nil
}

func (h *MetadataHints) Delete(ctx context.Context) error {
	if err := h.repo.Delete(ctx, common.IdentityHintKey); err != nil {
		return fmt.Errorf("delete identity hint: %w", err)
	}
	return nil
}

// NopHints stores nothing.
type NopHints struct{}

func (NopHints) Load(context.Context) (string, error) { return "", nil }
func (NopHints) Save(context.Context, string) error   { return nil }
func (NopHints) Delete(context.Context) error         { return nil }
