// Package catalog serves the static course content: dashboard modules,
// lessons, the affiliate page and the prompt tools' fixed material.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"academy/internal/domain"
)

//go:embed catalog.yaml
var defaultCatalog []byte

const youTubeEmbed = "https://www.youtube.com/embed/%s?autoplay=1&modestbranding=1&rel=0"

type Catalog struct {
	Support    Support    `yaml:"support" json:"support"`
	Modules    []Module   `yaml:"modules" json:"modules"`
	Lessons    []Lesson   `yaml:"lessons" json:"lessons"`
	Affiliate  Affiliate  `yaml:"affiliate" json:"affiliate"`
	JanAI      JanAI      `yaml:"janAI" json:"janAI"`
	PromptForm PromptForm `yaml:"promptForm" json:"promptForm"`

	lessonsBySlug map[string]int
}

type Support struct {
	Email     string `yaml:"email" json:"email"`
	TikTok    string `yaml:"tiktok" json:"tiktok"`
	Instagram string `yaml:"instagram" json:"instagram"`
}

// Module is one dashboard card.
type Module struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	ImageURL    string `yaml:"imageUrl" json:"imageUrl"`
	ImageHint   string `yaml:"imageHint" json:"imageHint,omitempty"`
	Link        string `yaml:"link" json:"link"`
	ButtonText  string `yaml:"buttonText" json:"buttonText"`
}

// Lesson is a video lesson page. EmbedURL is derived from VideoID on load.
type Lesson struct {
	Slug         string `yaml:"slug" json:"slug"`
	Title        string `yaml:"title" json:"title"`
	Summary      string `yaml:"summary" json:"summary"`
	VideoID      string `yaml:"videoId" json:"videoId"`
	EmbedURL     string `yaml:"-" json:"embedUrl"`
	MaterialNote string `yaml:"materialNote" json:"materialNote,omitempty"`
	MaterialURL  string `yaml:"materialUrl" json:"materialUrl,omitempty"`
}

type Affiliate struct {
	Title        string   `yaml:"title" json:"title"`
	Benefits     []string `yaml:"benefits" json:"benefits"`
	Highlight    string   `yaml:"highlight" json:"highlight"`
	Pitch        string   `yaml:"pitch" json:"pitch"`
	CallToAction string   `yaml:"callToAction" json:"callToAction"`
	GuideNote    string   `yaml:"guideNote" json:"guideNote"`
	GuideURL     string   `yaml:"guideUrl" json:"guideUrl"`
}

// JanAI is the fixed instruction for the locally hosted Jan.ai assistant.
type JanAI struct {
	URL         string `yaml:"url" json:"url"`
	Instruction string `yaml:"instruction" json:"instruction"`
}

type PromptForm struct {
	VideoTypes []VideoType       `yaml:"videoTypes" json:"videoTypes"`
	Hints      map[string]string `yaml:"hints" json:"hints"`
}

type VideoType struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Parse decodes and checks a catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	c.lessonsBySlug = make(map[string]int, len(c.Lessons))
	for i := range c.Lessons {
		l := &c.Lessons[i]
		l.Slug = strings.TrimSpace(l.Slug)
		if l.Slug == "" {
			return nil, fmt.Errorf("catalog: lesson %d has no slug", i)
		}
		if _, dup := c.lessonsBySlug[l.Slug]; dup {
			return nil, fmt.Errorf("catalog: duplicate lesson slug %q", l.Slug)
		}
		if strings.TrimSpace(l.VideoID) == "" {
			return nil, fmt.Errorf("catalog: lesson %q has no video id", l.Slug)
		}
		l.EmbedURL = fmt.Sprintf(youTubeEmbed, l.VideoID)
		c.lessonsBySlug[l.Slug] = i
	}
	for _, m := range c.Modules {
		if m.Title == "" || m.Link == "" {
			return nil, fmt.Errorf("catalog: module %q needs a title and a link", m.Title)
		}
	}
	return &c, nil
}

// Lesson looks a lesson up by slug.
func (c *Catalog) Lesson(slug string) (Lesson, error) {
	idx, ok := c.lessonsBySlug[strings.TrimSpace(slug)]
	if !ok {
		return Lesson{}, fmt.Errorf("catalog: lesson %q: %w", slug, domain.ErrNotFound)
	}
	return c.Lessons[idx], nil
}

// HasVideoType reports whether id is one of the form's genres.
func (c *Catalog) HasVideoType(id string) bool {
	for _, vt := range c.PromptForm.VideoTypes {
		if vt.ID == id {
			return true
		}
	}
	return false
}
