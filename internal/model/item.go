package model

// Item is a reported lost or found object.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	ImageURL    string `json:"image_url"`
	Status      string `json:"status,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Hostel      string `json:"hostel,omitempty"`
	Color       string `json:"color,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Item types.
const (
	ItemTypeLost  = "lost"
	ItemTypeFound = "found"
)

// Item statuses.
const (
	ItemStatusOpen = "open"
)

// DefaultCategory is used when an item has no category.
const DefaultCategory = "Other"

// CategoryOptions are the categories offered on the report form.
var CategoryOptions = []string{"Electronics", "Bags", "Books", "Clothing", "Accessories", "Documents", "Keys", DefaultCategory}

// TimeLayout is the created_at layout. Lexicographic order equals
// chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000"

// ValidItemType reports whether t is one of the known item types.
func ValidItemType(t string) bool {
	return t == ItemTypeLost || t == ItemTypeFound
}

// ItemFromDocument builds an Item from a stored document. Missing or
// non-string fields become empty strings; a missing category becomes
// DefaultCategory.
func ItemFromDocument(id string, doc map[string]any) Item {
	item := Item{
		ID:          id,
		Title:       str(doc, "title"),
		Description: str(doc, "description"),
		Category:    str(doc, "category"),
		Location:    str(doc, "location"),
		Date:        str(doc, "date"),
		Type:        str(doc, "type"),
		ImageURL:    str(doc, "image_url"),
		Status:      str(doc, "status"),
		Phone:       str(doc, "phone"),
		Hostel:      str(doc, "hostel"),
		Color:       str(doc, "color"),
		CreatedAt:   str(doc, "created_at"),
	}
	if _, ok := doc["category"]; !ok {
		item.Category = DefaultCategory
	}
	return item
}

// Document returns the stored shape of the item. The ID is not part of it.
func (i Item) Document() map[string]any {
	return map[string]any{
		"title":       i.Title,
		"description": i.Description,
		"category":    i.Category,
		"location":    i.Location,
		"date":        i.Date,
		"type":        i.Type,
		"image_url":   i.ImageURL,
		"status":      i.Status,
		"phone":       i.Phone,
		"hostel":      i.Hostel,
		"color":       i.Color,
		"created_at":  i.CreatedAt,
	}
}

func str(doc map[string]any, key string) string {
	s, _ := doc[key].(string)
	return s
}
