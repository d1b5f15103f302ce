package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/docstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/model"
)

// GetItemWithClaims returns an item and the claims filed against it, in the
// store's order. Claims are not queried when the item does not exist.
func GetItemWithClaims(ctx context.Context, docs docstore.Store, itemID string) (*model.Item, []model.Claim, error) {
	item, err := GetItem(ctx, docs, itemID)
	if err != nil {
		return nil, nil, err
	}

	claims, err := ListClaims(ctx, docs, itemID)
	if err != nil {
		return nil, nil, err
	}
	return item, claims, nil
}

// ListClaims returns the claims for an item.
func ListClaims(ctx context.Context, docs docstore.Store, itemID string) ([]model.Claim, error) {
	snaps, err := docs.Query(ctx, ClaimsCollection, docstore.Eq("item_id", itemID))
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}

	claims := make([]model.Claim, 0, len(snaps))
	for _, snap := range snaps {
		claims = append(claims, model.ClaimFromDocument(snap.ID, snap.Data))
	}
	return claims, nil
}

// CreateClaim records a claim. The item is not checked for existence.
func CreateClaim(ctx context.Context, docs docstore.Store, itemID, name, message string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Message: "name required"}
	}

	claim := model.Claim{
		ItemID:    itemID,
		Name:      name,
		Message:   strings.TrimSpace(message),
		CreatedAt: now().Format(model.TimeLayout),
	}

	id, err := docs.Add(ctx, ClaimsCollection, claim.Document())
	if err != nil {
		return "", fmt.Errorf("creating claim: %w", err)
	}
	return id, nil
}
