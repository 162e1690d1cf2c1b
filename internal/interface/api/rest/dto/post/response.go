package post

type (
	UploadResponse struct {
		OK       bool   `json:"ok"`
		FilePath string `json:"filePath"`
	}
	FeedEntry struct {
		Username string `json:"username"`
		Image    string `json:"image"`
	}
	Feed []FeedEntry
)
