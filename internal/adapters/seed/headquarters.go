package seed

import (
	"accident-alert-service/internal/domain"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Headquarter mirrors a headquarters document as stored by the backend.
// Lat and Long are pointers so that a document missing either field can be
// told apart from one located at 0.
type Headquarter struct {
	ID           string   `json:"id,omitempty"       yaml:"id"`
	Category     string   `json:"category,omitempty" yaml:"category"`
	Lat          *float64 `json:"lat,omitempty"      yaml:"lat"`
	Long         *float64 `json:"long,omitempty"     yaml:"long"`
	Name         string   `json:"headquarter_name"          yaml:"headquarter_name"`
	LocationName string   `json:"headquarter_location_name" yaml:"headquarter_location_name"`
}

// Facility converts the document into a domain facility.
func (h Headquarter) Facility() domain.Facility {
	f := domain.Facility{
		ID:            h.ID,
		Name:          h.Name,
		LocationLabel: h.LocationName,
	}
	if h.Lat != nil && h.Long != nil {
		f.Coordinates = &domain.Coordinates{Lat: *h.Lat, Lon: *h.Long}
	}
	return f
}

// LoadFile reads headquarters documents from a YAML or JSON file.
// Every document needs an id and a known category; coordinates may be absent.
func LoadFile(path string) ([]Headquarter, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed headquarters: read %q: %w", path, err)
	}

	var data []Headquarter
	if err := yaml.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed headquarters: parse %q: %w", path, err)
	}

	seen := make(map[string]struct{}, len(data))
	for i := range data {
		data[i].ID = strings.TrimSpace(data[i].ID)
		if data[i].ID == "" {
			return nil, fmt.Errorf("seed headquarters: item at index %d: id cannot be empty", i+1)
		}
		if _, ok := seen[data[i].ID]; ok {
			return nil, fmt.Errorf("seed headquarters: item at index %d: duplicate id %q", i+1, data[i].ID)
		}
		seen[data[i].ID] = struct{}{}

		c, err := domain.ParseCategory(data[i].Category)
		if err != nil {
			return nil, fmt.Errorf("seed headquarters: item %q: %w", data[i].ID, err)
		}
		data[i].Category = string(c)
	}

	return data, nil
}
