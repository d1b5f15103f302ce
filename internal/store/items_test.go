package store

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pkumari69302-hue/Campus-lost-found/internal/docstore"
	"github.com/pkumari69302-hue/Campus-lost-found/internal/model"
)

func seedListing(t *testing.T, docs docstore.Store) map[string]string {
	t.Helper()
	items := []model.Item{
		{Title: "Blue Backpack", Description: "Jansport, has a laptop", Category: "Bags", Type: model.ItemTypeLost, CreatedAt: "2024-05-03T09:00:00.000000"},
		{Title: "Keys", Description: "Bunch of three keys", Category: "Accessories", Type: model.ItemTypeFound, CreatedAt: "2024-05-01T09:00:00.000000"},
		{Title: "Laptop charger", Description: "", Category: "Electronics", Type: model.ItemTypeFound, CreatedAt: "2024-05-04T09:00:00.000000"},
		{Title: "Water bottle", Description: "steel, dented", Category: "Other", Type: model.ItemTypeLost, CreatedAt: ""},
		{Title: "Phone", Description: "black case", Category: "Electronics", Type: model.ItemTypeLost, CreatedAt: "2024-05-02T09:00:00.000000"},
	}
	ids := make(map[string]string)
	for _, item := range items {
		ids[item.Title] = seedItem(t, docs, item)
	}
	return ids
}

func TestListItemsReturnsEveryItemOnce(t *testing.T) {
	docs := docstore.NewTestStore(t)
	ids := seedListing(t, docs)

	items, err := ListItems(context.Background(), docs, Query{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != len(ids) {
		t.Fatalf("expected %d items, got %d", len(ids), len(items))
	}

	seen := make(map[string]bool)
	for _, item := range items {
		if seen[item.ID] {
			t.Errorf("item %s returned twice", item.ID)
		}
		seen[item.ID] = true
		if ids[item.Title] != item.ID {
			t.Errorf("item %q tagged with id %s, want %s", item.Title, item.ID, ids[item.Title])
		}
	}
}

func TestListItemsSortedNewestFirst(t *testing.T) {
	docs := docstore.NewTestStore(t)
	seedListing(t, docs)

	items, _ := ListItems(context.Background(), docs, Query{})
	for i := 1; i < len(items); i++ {
		if items[i-1].CreatedAt < items[i].CreatedAt {
			t.Errorf("items %d and %d out of order: %q < %q", i-1, i, items[i-1].CreatedAt, items[i].CreatedAt)
		}
	}
	if items[0].Title != "Laptop charger" {
		t.Errorf("expected newest item first, got %q", items[0].Title)
	}
	if last := items[len(items)-1]; last.Title != "Water bottle" {
		t.Errorf("expected item without created_at last, got %q", last.Title)
	}
}

func TestListItemsFilters(t *testing.T) {
	docs := docstore.NewTestStore(t)
	seedListing(t, docs)
	ctx := context.Background()

	lost, _ := ListItems(ctx, docs, Query{Type: model.ItemTypeLost})
	if len(lost) != 3 {
		t.Errorf("expected 3 lost items, got %d", len(lost))
	}
	for _, item := range lost {
		if item.Type != model.ItemTypeLost {
			t.Errorf("found %q in lost listing", item.Type)
		}
	}

	electronics, _ := ListItems(ctx, docs, Query{Category: "Electronics"})
	if len(electronics) != 2 {
		t.Errorf("expected 2 electronics, got %d", len(electronics))
	}

	both, _ := ListItems(ctx, docs, Query{Type: model.ItemTypeFound, Category: "Electronics"})
	if len(both) != 1 || both[0].Title != "Laptop charger" {
		t.Errorf("expected only the charger, got %v", both)
	}

	// Category filter is exact and case-sensitive.
	none, _ := ListItems(ctx, docs, Query{Category: "electronics"})
	if len(none) != 0 {
		t.Errorf("expected no items for lowercase category, got %d", len(none))
	}
}

func TestListItemsSearch(t *testing.T) {
	docs := docstore.NewTestStore(t)
	seedListing(t, docs)
	ctx := context.Background()

	tests := []struct {
		q    string
		want int
	}{
		{"laptop", 2},   // title of the charger, description of the backpack
		{"LAPTOP", 2},   // case-insensitive
		{"electron", 2}, // category
		{"steel", 1},
		{"bags", 1},
		{"umbrella", 0},
		{"three keys", 1}, // single substring, spaces included
		{"keys three", 0}, // not tokenized
	}

	for _, tt := range tests {
		items, err := ListItems(ctx, docs, Query{Search: tt.q})
		if err != nil {
			t.Fatalf("ListItems(%q): %v", tt.q, err)
		}
		if len(items) != tt.want {
			t.Errorf("search %q: expected %d items, got %d", tt.q, tt.want, len(items))
		}
		for _, item := range items {
			text := strings.ToLower(item.Title + " " + item.Description + " " + item.Category)
			if !strings.Contains(text, strings.ToLower(tt.q)) {
				t.Errorf("search %q returned non-matching item %q", tt.q, item.Title)
			}
		}
	}
}

func TestListItemsMissingCategory(t *testing.T) {
	docs := docstore.NewTestStore(t)
	ctx := context.Background()

	_, err := docs.Add(ctx, ItemsCollection, docstore.Document{"title": "Umbrella", "type": model.ItemTypeLost})
	if err != nil {
		t.Fatalf("seeding item: %v", err)
	}

	all, _ := ListItems(ctx, docs, Query{})
	if len(all) != 1 || all[0].Category != model.DefaultCategory {
		t.Fatalf("expected one item shown as %q, got %+v", model.DefaultCategory, all)
	}

	if got, _ := ListItems(ctx, docs, Query{Search: "other"}); len(got) != 0 {
		t.Errorf("search matched the display default: %+v", got)
	}
	if got, _ := ListItems(ctx, docs, Query{Category: model.DefaultCategory}); len(got) != 0 {
		t.Errorf("category filter matched the display default: %+v", got)
	}
	if got, _ := ListItems(ctx, docs, Query{Search: "umbrella"}); len(got) != 1 {
		t.Errorf("expected title search to match, got %d", len(got))
	}
}

func TestListItemsLimitIsPrefix(t *testing.T) {
	docs := docstore.NewTestStore(t)
	seedListing(t, docs)
	ctx := context.Background()

	all, _ := ListItems(ctx, docs, Query{})
	for _, k := range []int{1, 3, 5, 10} {
		got, _ := ListItems(ctx, docs, Query{Limit: k})
		want := min(k, len(all))
		if len(got) != want {
			t.Errorf("limit %d: expected %d items, got %d", k, want, len(got))
			continue
		}
		for i := range got {
			if got[i].ID != all[i].ID {
				t.Errorf("limit %d: item %d is %s, want %s", k, i, got[i].ID, all[i].ID)
			}
		}
	}
}

func TestListItemsUnavailable(t *testing.T) {
	_, err := ListItems(context.Background(), brokenStore{}, Query{})
	if !errors.Is(err, docstore.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	got := Categories([]model.Item{
		{Category: "Electronics"}, {Category: "Bags"}, {Category: ""}, {Category: "Electronics"},
	})
	if strings.Join(got, ",") != "Bags,Electronics" {
		t.Errorf("Categories = %v", got)
	}
}

func TestCreateItemRequiresTitle(t *testing.T) {
	docs := docstore.NewTestStore(t)
	blobs := &fakeBlobs{}

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := CreateItem(context.Background(), docs, blobs, NewItem{Type: model.ItemTypeLost, Title: title},
			&Image{Filename: "cat.png", Body: strings.NewReader("x")})
		if !IsValidation(err) {
			t.Errorf("title %q: expected validation error, got %v", title, err)
		}
	}

	if n := countItems(t, docs); n != 0 {
		t.Errorf("expected no items written, got %d", n)
	}
	if len(blobs.puts) != 0 {
		t.Errorf("expected no uploads, got %d", len(blobs.puts))
	}
}

func TestCreateItemRejectsUnknownType(t *testing.T) {
	docs := docstore.NewTestStore(t)

	_, err := CreateItem(context.Background(), docs, &fakeBlobs{}, NewItem{Type: "stolen", Title: "Bike"}, nil)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "type" {
		t.Fatalf("expected type validation error, got %v", err)
	}
	if n := countItems(t, docs); n != 0 {
		t.Errorf("expected no items written, got %d", n)
	}
}

func TestCreateItemWithoutFile(t *testing.T) {
	docs := docstore.NewTestStore(t)
	ctx := context.Background()
	start := time.Now().Truncate(time.Microsecond)

	id, err := CreateItem(ctx, docs, &fakeBlobs{}, NewItem{Type: model.ItemTypeLost, Title: "  Blue Backpack "}, nil)
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if n := countItems(t, docs); n != 1 {
		t.Fatalf("expected exactly one item, got %d", n)
	}

	item, err := GetItem(ctx, docs, id)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item.Title != "Blue Backpack" {
		t.Errorf("expected trimmed title, got %q", item.Title)
	}
	if item.ImageURL != "" {
		t.Errorf("expected empty image_url, got %q", item.ImageURL)
	}
	if item.Category != model.DefaultCategory {
		t.Errorf("expected default category, got %q", item.Category)
	}
	if item.Status != model.ItemStatusOpen {
		t.Errorf("expected status open, got %q", item.Status)
	}

	created, err := time.ParseInLocation(model.TimeLayout, item.CreatedAt, time.Local)
	if err != nil {
		t.Fatalf("parsing created_at %q: %v", item.CreatedAt, err)
	}
	if created.Before(start) {
		t.Errorf("created_at %v is before call start %v", created, start)
	}
}

func TestCreateItemUploadsAllowedImage(t *testing.T) {
	docs := docstore.NewTestStore(t)
	blobs := &fakeBlobs{}
	ctx := context.Background()

	now = func() time.Time { return time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local) }
	t.Cleanup(func() { now = time.Now })

	id, err := CreateItem(ctx, docs, blobs,
		NewItem{Type: model.ItemTypeFound, Title: "Cat collar", Category: "Pets"},
		&Image{Filename: "../My Collar.PNG", ContentType: "image/png", Body: strings.NewReader("png")})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	if len(blobs.puts) != 1 {
		t.Fatalf("expected one upload, got %d", len(blobs.puts))
	}
	put := blobs.puts[0]
	if put.path != "items/20240501_083000_My_Collar.PNG" {
		t.Errorf("unexpected blob path %q", put.path)
	}
	if put.contentType != "image/png" || put.body != "png" {
		t.Errorf("unexpected upload %+v", put)
	}

	item, _ := GetItem(ctx, docs, id)
	if item.ImageURL != "https://blobs.example/items/20240501_083000_My_Collar.PNG" {
		t.Errorf("unexpected image_url %q", item.ImageURL)
	}
	if item.CreatedAt != "2024-05-01T08:30:00.000000" {
		t.Errorf("unexpected created_at %q", item.CreatedAt)
	}
}

func TestCreateItemTransliteratesBlobName(t *testing.T) {
	docs := docstore.NewTestStore(t)
	blobs := &fakeBlobs{}

	now = func() time.Time { return time.Date(2024, 5, 1, 8, 30, 0, 0, time.Local) }
	t.Cleanup(func() { now = time.Now })

	_, err := CreateItem(context.Background(), docs, blobs,
		NewItem{Type: model.ItemTypeLost, Title: "Scarf"},
		&Image{Filename: "café photo.jpg", Body: strings.NewReader("jpg")})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if len(blobs.puts) != 1 || blobs.puts[0].path != "items/20240501_083000_cafe_photo.jpg" {
		t.Errorf("unexpected uploads %+v", blobs.puts)
	}
}

func TestCreateItemSkipsDisallowedExtension(t *testing.T) {
	docs := docstore.NewTestStore(t)
	blobs := &fakeBlobs{}
	ctx := context.Background()

	id, err := CreateItem(ctx, docs, blobs,
		NewItem{Type: model.ItemTypeLost, Title: "Notes"},
		&Image{Filename: "notes.pdf", Body: strings.NewReader("%PDF")})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if len(blobs.puts) != 0 {
		t.Errorf("expected upload to be skipped, got %d", len(blobs.puts))
	}
	item, _ := GetItem(ctx, docs, id)
	if item.ImageURL != "" {
		t.Errorf("expected empty image_url, got %q", item.ImageURL)
	}
}

func TestCreateItemUploadFailure(t *testing.T) {
	docs := docstore.NewTestStore(t)
	blobs := &fakeBlobs{err: errors.New("bucket unreachable")}

	_, err := CreateItem(context.Background(), docs, blobs,
		NewItem{Type: model.ItemTypeLost, Title: "Bag"},
		&Image{Filename: "bag.jpg", Body: strings.NewReader("jpg")})
	if err == nil || IsValidation(err) {
		t.Fatalf("expected upload error, got %v", err)
	}
	if n := countItems(t, docs); n != 0 {
		t.Errorf("expected no item after failed upload, got %d", n)
	}
}

func TestCreateItemLeavesBlobWhenWriteFails(t *testing.T) {
	docs := failingStore{Store: docstore.NewTestStore(t)}
	blobs := &fakeBlobs{}

	_, err := CreateItem(context.Background(), docs, blobs,
		NewItem{Type: model.ItemTypeLost, Title: "Bag"},
		&Image{Filename: "bag.jpg", Body: strings.NewReader("jpg")})
	if !errors.Is(err, docstore.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if len(blobs.puts) != 1 {
		t.Errorf("expected the blob to stay uploaded, got %d uploads", len(blobs.puts))
	}
}

func TestGetItemNotFound(t *testing.T) {
	docs := docstore.NewTestStore(t)
	if _, err := GetItem(context.Background(), docs, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestGetStats(t *testing.T) {
	docs := docstore.NewTestStore(t)
	seedListing(t, docs)

	stats, err := GetStats(context.Background(), docs)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if stats != (Stats{Total: 5, Lost: 3, Found: 2}) {
		t.Errorf("unexpected stats %+v", stats)
	}
}
