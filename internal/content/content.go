// Package content loads the marketing copy of the landing page.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"moto-repaint-backend/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

type Hero struct {
	Title    string   `yaml:"title" json:"title"`
	Subtitle string   `yaml:"subtitle" json:"subtitle"`
	CTALabel string   `yaml:"cta_label" json:"ctaLabel"`
	CTAHref  string   `yaml:"cta_href" json:"ctaHref"`
	Model    string   `yaml:"model" json:"model"`
	Colors   []string `yaml:"colors" json:"colors"`
}

type Service struct {
	Kind    domain.ServiceKind `yaml:"-" json:"kind"`
	Title   string             `yaml:"title" json:"title"`
	Summary string             `yaml:"summary" json:"summary"`
	Icon    string             `yaml:"-" json:"icon"`
}

func (s *Service) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Kind    string `yaml:"kind"`
		Title   string `yaml:"title"`
		Summary string `yaml:"summary"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	kind, err := domain.ParseServiceKind(raw.Kind)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	s.Kind = kind
	s.Title = raw.Title
	if s.Title == "" {
		s.Title = kind.Title()
	}
	s.Summary = raw.Summary
	s.Icon = kind.Icon()
	return nil
}

type GalleryItem struct {
	ID      string `yaml:"id" json:"id"`
	Title   string `yaml:"title" json:"title"`
	Image   string `yaml:"image" json:"image"`
	Caption string `yaml:"caption" json:"caption"`
}

type ProcessStep struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type Testimonial struct {
	Author string `yaml:"author" json:"author"`
	Bike   string `yaml:"bike" json:"bike"`
	Quote  string `yaml:"quote" json:"quote"`
}

type Contact struct {
	Phone    string `yaml:"phone" json:"phone"`
	WhatsApp string `yaml:"whatsapp" json:"whatsapp"`
	Email    string `yaml:"email" json:"email"`
	Address  string `yaml:"address" json:"address"`
	Hours    string `yaml:"hours" json:"hours"`
}

// Site is everything rendered on the landing page.
type Site struct {
	Hero         Hero          `yaml:"hero" json:"hero"`
	Services     []Service     `yaml:"services" json:"services"`
	Gallery      []GalleryItem `yaml:"gallery" json:"gallery"`
	Process      []ProcessStep `yaml:"process" json:"process"`
	Testimonials []Testimonial `yaml:"testimonials" json:"testimonials"`
	Contact      Contact       `yaml:"contact" json:"contact"`
}

// FindPhoto looks up a gallery item by id.
func (s *Site) FindPhoto(id string) (GalleryItem, bool) {
	for _, g := range s.Gallery {
		if g.ID == id {
			return g, true
		}
	}
	return GalleryItem{}, false
}

var ErrDuplicatePhoto = errors.New("duplicate gallery id")

// Parse decodes site content. Unknown fields and service kinds are errors.
func Parse(data []byte) (*Site, error) {
	var s Site
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse site content: %w", err)
	}
	seen := make(map[string]bool, len(s.Gallery))
	for _, g := range s.Gallery {
		if seen[g.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePhoto, g.ID)
		}
		seen[g.ID] = true
	}
	return &s, nil
}

// Default returns the built-in content.
func Default() *Site {
	s, err := Parse(defaultYAML)
	if err != nil {
		panic(err)
	}
	return s
}

// Load reads content from path, or the built-in content when path is empty.
func Load(path string) (*Site, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site content: %w", err)
	}
	return Parse(data)
}

// Provider hands out the current content and swaps it on reload.
type Provider struct {
	mu   sync.RWMutex
	site *Site
	path string
}

func NewProvider(path string, site *Site) *Provider {
	return &Provider{path: path, site: site}
}

func (p *Provider) Get() *Site {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.site
}

func (p *Provider) Path() string {
	return p.path
}

// Reload re-reads the file. On error the previous content is kept.
func (p *Provider) Reload() error {
	site, err := Load(p.path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.site = site
	p.mu.Unlock()
	return nil
}
