// Package data loads the statically authored site tables: the profile, the
// work history and the certifications. The tables are embedded in the binary;
// a directory holding files of the same names overrides them.
package data

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"github.com/MaxAnderson95/MaxAnderson95.github.io/internal/model"
)

const (
	ProfileFile        = "profile.yaml"
	WorkHistoryFile    = "work-history.yaml"
	CertificationsFile = "certifications.yaml"
)

// ErrInvalidData wraps every table validation failure.
var ErrInvalidData = errors.New("invalid data")

//go:embed tables/*.yaml
var embedded embed.FS

// Tables holds every decoded and validated table.
type Tables struct {
	Profile        model.SiteProfile
	WorkHistory    []model.WorkEntry
	Certifications []model.Certification
}

type certificationRecord struct {
	Name           string  `yaml:"name"`
	Issuer         string  `yaml:"issuer"`
	IssuerColor    string  `yaml:"issuerColor"`
	SimpleIconSlug string  `yaml:"simpleIconSlug"`
	CustomIconSVG  string  `yaml:"customIconSvg"`
	AchievedDate   string  `yaml:"achievedDate"`
	ValidUntil     *string `yaml:"validUntil"`
	URL            string  `yaml:"url"`
}

type certificationsFile struct {
	// Icons holds shared markup referenced through YAML anchors.
	Icons          map[string]string     `yaml:"icons"`
	Certifications []certificationRecord `yaml:"certifications"`
}

// Load reads the tables, preferring files in dir when dir is set.
func Load(dir string) (*Tables, error) {
	profile, err := readTable(dir, ProfileFile)
	if err != nil {
		return nil, err
	}
	work, err := readTable(dir, WorkHistoryFile)
	if err != nil {
		return nil, err
	}
	certs, err := readTable(dir, CertificationsFile)
	if err != nil {
		return nil, err
	}
	return Parse(profile, work, certs)
}

// Parse decodes and validates the raw YAML of each table.
func Parse(profile, work, certs []byte) (*Tables, error) {
	var t Tables

	if err := yaml.UnmarshalStrict(profile, &t.Profile); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidData, ProfileFile, err)
	}
	if err := yaml.UnmarshalStrict(work, &t.WorkHistory); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidData, WorkHistoryFile, err)
	}

	var cf certificationsFile
	if err := yaml.UnmarshalStrict(certs, &cf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidData, CertificationsFile, err)
	}
	t.Certifications = make([]model.Certification, 0, len(cf.Certifications))
	for i, rec := range cf.Certifications {
		icon, err := model.NewIcon(rec.SimpleIconSlug, rec.CustomIconSVG)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: certifications[%d] %q: %v", ErrInvalidData, CertificationsFile, i, rec.Name, err)
		}
		t.Certifications = append(t.Certifications, model.Certification{
			Name:         rec.Name,
			Issuer:       rec.Issuer,
			IssuerColor:  rec.IssuerColor,
			Icon:         icon,
			AchievedDate: rec.AchievedDate,
			ValidUntil:   rec.ValidUntil,
			URL:          rec.URL,
		})
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

func readTable(dir, name string) ([]byte, error) {
	if dir != "" {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err == nil {
			return b, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
	}
	b, err := embedded.ReadFile("tables/" + name)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	return b, nil
}
