package entity

type ProjectStatus string

const (
	ProjectStatusUploading  ProjectStatus = "UPLOADING"
	ProjectStatusProcessing ProjectStatus = "PROCESSING"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
	ProjectStatusFailed     ProjectStatus = "FAILED"
)

// PipelineType is the tab a project is listed under in My Projects.
type PipelineType string

const (
	PipelineShortForm     PipelineType = "SHORT_FORM"
	PipelineLongForm      PipelineType = "LONG_FORM"
	PipelineClipAnyMoment PipelineType = "CLIP_ANY_MOMENT"
	PipelineBroll         PipelineType = "BROLL"
	PipelineIdeasToVideo  PipelineType = "IDEAS_TO_VIDEO"
)

var PipelineTypes = []PipelineType{
	PipelineShortForm,
	PipelineLongForm,
	PipelineClipAnyMoment,
	PipelineBroll,
	PipelineIdeasToVideo,
}

func (p PipelineType) Valid() bool {
	for _, t := range PipelineTypes {
		if t == p {
			return true
		}
	}
	return false
}

type Segment struct {
	Content    string   `json:"content"`
	Highlights []string `json:"highlights,omitempty"`
}

type Clip struct {
	Path                string    `json:"path"`
	Confidence          float64   `json:"confidence"`
	ViralTitle          string    `json:"viral_title,omitempty"`
	Title               string    `json:"title,omitempty"`
	Layout              string    `json:"layout"`
	Description         string    `json:"description,omitempty"`
	Highlights          []string  `json:"highlights,omitempty"`
	IsCombined          bool      `json:"is_combined,omitempty"`
	IsPartOfCompilation bool      `json:"is_part_of_compilation,omitempty"`
	CompilationTitle    string    `json:"compilation_title,omitempty"`
	Content             string    `json:"content,omitempty"`
	Segments            []Segment `json:"segments,omitempty"`
	SearchTerm          string    `json:"search_term,omitempty"`
}

// DisplayTitle prefers the viral title, then the plain title, then the b-roll search term.
func (c Clip) DisplayTitle() string {
	switch {
	case c.ViralTitle != "":
		return c.ViralTitle
	case c.Title != "":
		return c.Title
	default:
		return c.SearchTerm
	}
}

type Project struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Status             ProjectStatus `json:"status"`
	Type               PipelineType  `json:"type"`
	ProcessingProgress int           `json:"processing_progress,omitempty"`
	Clips              []Clip        `json:"clips,omitempty"`
	OutputURL          string        `json:"output_url,omitempty"`
	Script             string        `json:"script,omitempty"`
	Error              string        `json:"error,omitempty"`
}

func (p Project) Selectable() bool {
	return p.Status == ProjectStatusCompleted
}

// Clone deep-copies the project so callers cannot mutate the seed data.
func (p Project) Clone() Project {
	out := p
	if p.Clips != nil {
		out.Clips = make([]Clip, len(p.Clips))
		for i, c := range p.Clips {
			cc := c
			cc.Highlights = append([]string(nil), c.Highlights...)
			if c.Segments != nil {
				cc.Segments = make([]Segment, len(c.Segments))
				for j, s := range c.Segments {
					cc.Segments[j] = Segment{Content: s.Content, Highlights: append([]string(nil), s.Highlights...)}
				}
			}
			out.Clips[i] = cc
		}
	}
	return out
}
