package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"streakwatch/internal/domain/entity"
)

// tableFile is the YAML shape of a source-table override file:
//
//	sources:
//	  - tag: 90minut
//	    url: http://www.90minut.pl/liga/1/liga14211.html
//	    kind: free-text
//
// Rows with a known tag replace the default entry; unknown tags are appended
// after the defaults, keeping them lower in the fallback order.
type tableFile struct {
	Sources []Row `yaml:"sources"`
}

// LoadOverrides reads a source-table override file. An empty path yields no
// overrides and no error.
func LoadOverrides(path string) ([]Row, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	var parsed tableFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse sources file: %w", err)
	}

	for i, row := range parsed.Sources {
		if row.Tag == "" || row.URL == "" {
			return nil, fmt.Errorf("sources file row %d: tag and url are required", i)
		}
		switch row.Kind {
		case entity.PayloadMarkupTable, entity.PayloadFreeText:
		case "":
			parsed.Sources[i].Kind = entity.PayloadMarkupTable
		default:
			return nil, fmt.Errorf("sources file row %d: unsupported kind %q", i, row.Kind)
		}
	}

	return parsed.Sources, nil
}
