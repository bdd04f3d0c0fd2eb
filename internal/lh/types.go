package lh

// Bookmark is one entry in the Linkloft collection.
type Bookmark struct {
	ID        string   `json:"id"`
	URL       string   `json:"url"`
	Title     string   `json:"title"`
	SiteName  string   `json:"site_name,omitempty"`
	Published bool     `json:"published"`
	Archived  bool     `json:"archived"`
	Tags      []string `json:"tags,omitempty"`
	FolderID  string   `json:"folder_id,omitempty"`
	CreatedAt string   `json:"created_at,omitempty"`
}

// Tag is a label with its aggregate bookmark count.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Folder groups bookmarks; Count mirrors the server-side aggregate.
type Folder struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}
