package entities

// UploadInput is a raw file posted by an authenticated user
type UploadInput struct {
	Filename string
	Type     string
	Body     []byte
}

// UploadResult describes a stored object
type UploadResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	Filename    string `json:"filename"`
	Size        int    `json:"size"`
	ContentType string `json:"contentType"`
}
