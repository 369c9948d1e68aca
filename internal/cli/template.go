package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// boardTemplate is the YAML document accepted by "taskdeck seed".
//
//	name: Platform
//	columns:
//	  - name: To Do
//	  - name: Doing
//	    wip_limit: 2
//	labels:
//	  - name: bug
//	    color: "#EF4444"
//	cards:
//	  - title: Fix login
//	    column: To Do
//	    labels: [bug]
type boardTemplate struct {
	Name        string           `yaml:"name"`
	Description *string          `yaml:"description"`
	Columns     []columnTemplate `yaml:"columns"`
	Labels      []labelTemplate  `yaml:"labels"`
	Cards       []cardTemplate   `yaml:"cards"`
}

type columnTemplate struct {
	Name     string `yaml:"name"`
	WipLimit *int   `yaml:"wip_limit"`
}

type labelTemplate struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

type cardTemplate struct {
	Title       string     `yaml:"title"`
	Description *string    `yaml:"description"`
	Column      string     `yaml:"column"`
	Labels      []string   `yaml:"labels"`
	Due         *time.Time `yaml:"due"`
	Blocked     string     `yaml:"blocked"`
}

func loadTemplate(path string) (*boardTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %w", err)
	}
	defer f.Close()
	return parseTemplate(f)
}

// parseTemplate rejects unknown keys and cards or labels that point at names the
// template does not define. Field level rules are left to the usecases.
func parseTemplate(r io.Reader) (*boardTemplate, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var tmpl boardTemplate
	if err := dec.Decode(&tmpl); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("template is empty")
		}
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	columns := make(map[string]bool, len(tmpl.Columns))
	for _, c := range tmpl.Columns {
		if columns[c.Name] {
			return nil, fmt.Errorf("column %q is defined twice", c.Name)
		}
		columns[c.Name] = true
	}
	labels := make(map[string]bool, len(tmpl.Labels))
	for _, l := range tmpl.Labels {
		if labels[l.Name] {
			return nil, fmt.Errorf("label %q is defined twice", l.Name)
		}
		labels[l.Name] = true
	}

	for _, card := range tmpl.Cards {
		if !columns[card.Column] {
			return nil, fmt.Errorf("card %q references unknown column %q", card.Title, card.Column)
		}
		for _, name := range card.Labels {
			if !labels[name] {
				return nil, fmt.Errorf("card %q references unknown label %q", card.Title, name)
			}
		}
	}
	return &tmpl, nil
}
