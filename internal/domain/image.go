package domain

// Image is stored binary metadata; the bytes themselves live behind the URLs.
type Image struct {
	ID           int       `json:"id"`
	FileName     string    `json:"fileName"`
	ContentType  string    `json:"contentType"`
	SizeInBytes  int64     `json:"sizeInBytes"`
	ImageType    ImageType `json:"imageType"`
	IsMain       bool      `json:"isMain"`
	Alt          string    `json:"alt,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	OriginalURL  string    `json:"originalUrl,omitempty"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	MediumURL    string    `json:"mediumUrl,omitempty"`
	LargeURL     string    `json:"largeUrl,omitempty"`
	CreatedAt    string    `json:"createdAt"`
}

// DisplayURL picks the best available rendition for the requested size,
// falling back towards the original.
func (i Image) DisplayURL(size string) string {
	switch size {
	case "thumbnail":
		return first(i.ThumbnailURL, i.MediumURL, i.LargeURL, i.OriginalURL)
	case "medium":
		return first(i.MediumURL, i.LargeURL, i.OriginalURL)
	case "large":
		return first(i.LargeURL, i.OriginalURL)
	}
	return i.OriginalURL
}

func first(urls ...string) string {
	for _, u := range urls {
		if u != "" {
			return u
		}
	}
	return ""
}
