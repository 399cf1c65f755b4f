package fixture

type Thumbnail struct {
	Path        string `json:"path"`
	Style       string `json:"style"`
	Bucket      string `json:"bucket"`
	AspectRatio string `json:"aspect_ratio"`
}

func Thumbnails() []Thumbnail {
	return []Thumbnail{
		{Path: "demo1.jpg", Style: "Cinematic", Bucket: "thumbnails", AspectRatio: "16:9"},
		{Path: "demo2.jpg", Style: "Vibrant", Bucket: "thumbnails", AspectRatio: "16:9"},
	}
}

func ThumbnailPrompts() []string {
	return []string{
		"A cinematic shot of a person in a dramatic pose",
		"A vibrant and colorful scene with dynamic lighting",
		"A minimalist composition with strong contrast",
		"An artistic interpretation with creative framing",
	}
}
