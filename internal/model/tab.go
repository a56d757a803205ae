package model

// OpenTab is one entry of the persisted workspace tab state: which snippet
// is open, where it sits in the tab bar, and whether it is the active tab.
//
// The tab list is a single global snapshot shared by every account — saving
// replaces the whole set. There is no per-user scoping; that is a known
// limitation carried over deliberately.
type OpenTab struct {
	SnippetID string `json:"snippetId"`
	Order     int    `json:"order"`
	IsActive  bool   `json:"isActive"`
}
