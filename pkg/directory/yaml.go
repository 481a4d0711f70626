package directory

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/rswalker/academy-scheduler/pkg/core/model"
)

// yamlDirectory mirrors the on-disk directory file layout
type yamlDirectory struct {
	Organizations []yamlOrganization `yaml:"organizations" validate:"required,min=1,dive"`
}

type yamlOrganization struct {
	ID               string         `yaml:"id" validate:"required"`
	Name             string         `yaml:"name" validate:"required"`
	EnableOpenShifts bool           `yaml:"enableOpenShifts"`
	Staff            []yamlStaff    `yaml:"staff" validate:"dive"`
	Locations        []yamlLocation `yaml:"locations" validate:"dive"`
}

type yamlStaff struct {
	ID             string `yaml:"id" validate:"required"`
	DisplayName    string `yaml:"displayName" validate:"required"`
	JobType        string `yaml:"jobType"`
	BranchAffinity string `yaml:"branchAffinity,omitempty"`
}

type yamlLocation struct {
	ID   string `yaml:"id" validate:"required"`
	Name string `yaml:"name" validate:"required"`
}

var validate = validator.New()

// LoadFromPath reads and validates a yaml directory file and returns a
// provider backed by its contents
func LoadFromPath(path string) (*StaticProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory file: %w", err)
	}

	var doc yamlDirectory
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse directory file: %w", err)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, fmt.Errorf("directory validation failed: %w", err)
	}

	var orgs []model.Organization
	staff := make(map[string][]model.Staff)
	locations := make(map[string][]model.Location)

	for _, org := range doc.Organizations {
		orgs = append(orgs, model.Organization{
			ID:               org.ID,
			Name:             org.Name,
			EnableOpenShifts: org.EnableOpenShifts,
		})

		for _, member := range org.Staff {
			staff[org.ID] = append(staff[org.ID], model.Staff{
				ID:             member.ID,
				DisplayName:    member.DisplayName,
				JobType:        member.JobType,
				BranchAffinity: member.BranchAffinity,
			})
		}

		for _, loc := range org.Locations {
			locations[org.ID] = append(locations[org.ID], model.Location{
				ID:   loc.ID,
				Name: loc.Name,
			})
		}
	}

	return NewStaticProvider(orgs, staff, locations), nil
}
