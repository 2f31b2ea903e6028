package dto

type UploadResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
