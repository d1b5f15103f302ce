package model

// Claim is a message about an item, usually asserting ownership.
type Claim struct {
	ID        string `json:"id"`
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Message   string `json:"message,omitempty"`
	CreatedAt string `json:"created_at"`
}

// ClaimFromDocument builds a Claim from a stored document.
func ClaimFromDocument(id string, doc map[string]any) Claim {
	return Claim{
		ID:        id,
		ItemID:    str(doc, "item_id"),
		Name:      str(doc, "name"),
		Message:   str(doc, "message"),
		CreatedAt: str(doc, "created_at"),
	}
}

// Document returns the stored shape of the claim.
func (c Claim) Document() map[string]any {
	return map[string]any{
		"item_id":    c.ItemID,
		"name":       c.Name,
		"message":    c.Message,
		"created_at": c.CreatedAt,
	}
}
