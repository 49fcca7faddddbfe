package domain

import (
	"errors"
	"strings"
	"time"
)

type ProjectStatus string

const (
	ProjectNew        ProjectStatus = "new"
	ProjectQuoted     ProjectStatus = "quoted"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectDone       ProjectStatus = "done"
	ProjectCancelled  ProjectStatus = "cancelled"
)

var projectStatuses = map[ProjectStatus]bool{
	ProjectNew:        true,
	ProjectQuoted:     true,
	ProjectInProgress: true,
	ProjectDone:       true,
	ProjectCancelled:  true,
}

// ParseProjectStatus validates a status coming from the management console.
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	st := ProjectStatus(s)
	return st, projectStatuses[st]
}

var (
	ErrContactNameRequired = errors.New("name is required")
	ErrContactRequired     = errors.New("phone or email is required")
	ErrMessageRequired     = errors.New("message is required")
)

// ProjectRequest is what the visitor submits after proceeding from the
// price list cart.
type ProjectRequest struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Phone      string        `json:"phone"`
	Email      string        `json:"email"`
	Motorcycle string        `json:"motorcycle"`
	Notes      string        `json:"notes"`
	Items      []CartLine    `json:"items"`
	Total      int64         `json:"total"`
	Status     ProjectStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
}

// Validate requires a name and at least one way to reach the visitor.
func (p *ProjectRequest) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrContactNameRequired
	}
	if strings.TrimSpace(p.Phone) == "" && strings.TrimSpace(p.Email) == "" {
		return ErrContactRequired
	}
	return nil
}

// ContactMessage comes from the contact section of the landing page.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *ContactMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrContactNameRequired
	}
	if strings.TrimSpace(m.Phone) == "" && strings.TrimSpace(m.Email) == "" {
		return ErrContactRequired
	}
	if strings.TrimSpace(m.Message) == "" {
		return ErrMessageRequired
	}
	return nil
}
