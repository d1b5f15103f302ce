package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/blobstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/docstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/model"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/upload"
)

// Collection names.
const (
	ItemsCollection  = "items"
	ClaimsCollection = "claims"
)

// now is the clock used for created_at and blob names.
var now = time.Now

// Query selects items for a listing. Zero values mean "no constraint".
type Query struct {
	Type     string
	Search   string
	Category string
	Limit    int
}

// ListItems returns items matching q, newest first.
//
// Type and Category are exact-match filters evaluated by the document store.
// Search is a case-insensitive substring test against title, description and
// category, applied after the whole filtered set has been fetched.
func ListItems(ctx context.Context, docs docstore.Store, q Query) ([]model.Item, error) {
	var filters []docstore.Filter
	if q.Type != "" {
		filters = append(filters, docstore.Eq("type", q.Type))
	}
	if q.Category != "" {
		filters = append(filters, docstore.Eq("category", q.Category))
	}

	snaps, err := docs.Query(ctx, ItemsCollection, filters...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	needle := strings.ToLower(q.Search)
	items := make([]model.Item, 0, len(snaps))
	for _, snap := range snaps {
		item := model.ItemFromDocument(snap.ID, snap.Data)
		if needle != "" && !matches(item, snap.Data, needle) {
			continue
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})

	if q.Limit > 0 && len(items) > q.Limit {
		items = items[:q.Limit]
	}
	return items, nil
}

// matches searches the stored category, not the "Other" shown for documents
// without one. The category filter also sees only the stored value, so such
// items are found by neither q=other nor category=Other.
func matches(item model.Item, doc docstore.Document, needle string) bool {
	category, _ := doc["category"].(string)
	text := strings.ToLower(item.Title + " " + item.Description + " " + category)
	return strings.Contains(text, needle)
}

// Categories returns the distinct non-empty categories of items, sorted.
func Categories(items []model.Item) []string {
	seen := make(map[string]bool)
	var categories []string
	for _, item := range items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		categories = append(categories, item.Category)
	}
	sort.Strings(categories)
	return categories
}

// GetItem returns an item by ID, or ErrNotFound.
func GetItem(ctx context.Context, docs docstore.Store, id string) (*model.Item, error) {
	doc, err := docs.Get(ctx, ItemsCollection, id)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item := model.ItemFromDocument(id, doc)
	return &item, nil
}

// NewItem holds the submitted report form.
type NewItem struct {
	Type        string
	Title       string
	Description string
	Category    string
	Location    string
	Date        string
	Phone       string
	Hostel      string
	Color       string
}

// Image is an uploaded photo.
type Image struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreateItem validates a report, uploads its photo if the file name is
// acceptable, and writes the item. A photo with a rejected extension is
// skipped and the item is created without one.
//
// The upload and the document write are independent: if the write fails
// the uploaded blob is left in place.
func CreateItem(ctx context.Context, docs docstore.Store, blobs blobstore.Store, in NewItem, img *Image) (string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "", &ValidationError{Field: "title", Message: "title required"}
	}
	if !model.ValidItemType(in.Type) {
		return "", &ValidationError{Field: "type", Message: fmt.Sprintf("unknown item type %q", in.Type)}
	}

	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = model.DefaultCategory
	}

	var imageURL string
	if img != nil && img.Filename != "" {
		if upload.AllowedFile(img.Filename) {
			url, err := uploadImage(ctx, blobs, img)
			if err != nil {
				return "", err
			}
			imageURL = url
		} else {
			slog.Warn("skipping upload with disallowed extension", "filename", img.Filename)
		}
	}

	item := model.Item{
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Category:    category,
		Location:    strings.TrimSpace(in.Location),
		Date:        in.Date,
		Type:        in.Type,
		ImageURL:    imageURL,
		Status:      model.ItemStatusOpen,
		Phone:       strings.TrimSpace(in.Phone),
		Hostel:      strings.TrimSpace(in.Hostel),
		Color:       strings.TrimSpace(in.Color),
		CreatedAt:   now().Format(model.TimeLayout),
	}

	id, err := docs.Add(ctx, ItemsCollection, item.Document())
	if err != nil {
		return "", fmt.Errorf("creating item: %w", err)
	}
	return id, nil
}

func uploadImage(ctx context.Context, blobs blobstore.Store, img *Image) (string, error) {
	contentType, body, err := upload.Sniff(img.ContentType, img.Body)
	if err != nil {
		return "", fmt.Errorf("reading upload: %w", err)
	}

	url, err := blobs.Put(ctx, upload.BlobPath(now(), img.Filename), body, contentType)
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}
	return url, nil
}

// Stats counts items by type.
type Stats struct {
	Total int `json:"total"`
	Lost  int `json:"lost"`
	Found int `json:"found"`
}

// GetStats counts every stored item.
func GetStats(ctx context.Context, docs docstore.Store) (Stats, error) {
	items, err := ListItems(ctx, docs, Query{})
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{Total: len(items)}
	for _, item := range items {
		switch item.Type {
		case model.ItemTypeLost:
			stats.Lost++
		case model.ItemTypeFound:
			stats.Found++
		}
	}
	return stats, nil
}
