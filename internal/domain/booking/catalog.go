package booking

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SlotLayout is the format of time slot labels, e.g. "10:00 AM".
const SlotLayout = "03:04 PM"

//go:embed catalog.yaml
var defaultCatalog []byte

type Service struct {
	ID              string `yaml:"id" json:"id"`
	Name            string `yaml:"name" json:"name"`
	Description     string `yaml:"description" json:"description"`
	DurationMinutes int    `yaml:"duration_minutes" json:"duration_minutes"`
}

func (s Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Catalog is the bookable services and the daily time slots offered for each.
type Catalog struct {
	Services  []Service `yaml:"services" json:"services"`
	TimeSlots []string  `yaml:"time_slots" json:"time_slots"`
}

// LoadCatalog reads a YAML catalog from path, or the built-in one when path is empty.
func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read catalog: %w", err)
		}
	}
	return ParseCatalog(data)
}

func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	if len(c.Services) == 0 {
		return fmt.Errorf("catalog has no services")
	}
	seen := make(map[string]bool, len(c.Services))
	for _, s := range c.Services {
		if s.ID == "" || s.Name == "" {
			return fmt.Errorf("catalog service needs id and name: %+v", s)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate service id %q", s.ID)
		}
		if s.DurationMinutes <= 0 {
			return fmt.Errorf("service %q: duration_minutes must be > 0", s.ID)
		}
		seen[s.ID] = true
	}
	for _, slot := range c.TimeSlots {
		if _, err := time.Parse(SlotLayout, slot); err != nil {
			return fmt.Errorf("invalid time slot %q: %w", slot, err)
		}
	}
	return nil
}

func (c *Catalog) Service(id string) (Service, bool) {
	for _, s := range c.Services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

func (c *Catalog) HasSlot(label string) bool {
	for _, s := range c.TimeSlots {
		if s == label {
			return true
		}
	}
	return false
}

// At combines a calendar date with a slot label in the date's location.
func At(date time.Time, slot string) (time.Time, error) {
	t, err := time.Parse(SlotLayout, slot)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, date.Location()), nil
}
