package service

import (
	_ "embed"
	"errors"
	"fmt"

	"mindful_companion/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed resources.yaml
var resourcesYAML []byte

type resourceCatalog struct {
	Resources []models.Resource `yaml:"resources"`
}

// ResourceService serves the static self-help catalog.
type ResourceService struct {
	items []models.Resource
}

func NewResourceService() (*ResourceService, error) {
	return newResourceService(resourcesYAML)
}

func newResourceService(data []byte) (*ResourceService, error) {
	var cat resourceCatalog
	if err := yaml.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse resource catalog: %w", err)
	}
	for i, r := range cat.Resources {
		if r.Title == "" || r.Link == "" {
			return nil, fmt.Errorf("resource %d: %w", i, errIncompleteResource)
		}
	}
	return &ResourceService{items: cat.Resources}, nil
}

var errIncompleteResource = errors.New("title and link are required")

// List returns a copy of the catalog.
func (s *ResourceService) List() []models.Resource {
	out := make([]models.Resource, len(s.items))
	copy(out, s.items)
	return out
}
