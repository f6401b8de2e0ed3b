// Package corpus loads the reader's pre-populated content (books, chapters,
// verses, headings and their translations) from a YAML or JSON asset.
//
// A corpus file looks like:
//
//	languages:
//	  - code: en
//	    name: English
//	books:
//	  - name: Genesis
//	    testament: Old
//	    order: 1
//	    chapters:
//	      - number: 1
//	        headings:
//	          - order: 1
//	            text: The Creation
//	        verses:
//	          - number: 1
//	            text:
//	              en: In the beginning God created the heaven and the earth.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("unsupported corpus format")

type Corpus struct {
	Languages []Language `yaml:"languages" json:"languages"`
	Books     []Book     `yaml:"books" json:"books"`
}

type Language struct {
	Code string `yaml:"code" json:"code"`
	Name string `yaml:"name" json:"name"`
}

type Book struct {
	Name      string    `yaml:"name" json:"name"`
	Testament string    `yaml:"testament" json:"testament"`
	Order     int       `yaml:"order" json:"order"`
	Chapters  []Chapter `yaml:"chapters" json:"chapters"`
}

type Chapter struct {
	Number   int       `yaml:"number" json:"number"`
	Headings []Heading `yaml:"headings,omitempty" json:"headings,omitempty"`
	Verses   []Verse   `yaml:"verses" json:"verses"`
}

type Heading struct {
	Order int    `yaml:"order" json:"order"`
	Text  string `yaml:"text" json:"text"`
}

// Verse carries its text keyed by language code. A language missing from
// Text leaves the verse untranslated in that language.
type Verse struct {
	Number int               `yaml:"number" json:"number"`
	Text   map[string]string `yaml:"text" json:"text"`
}

type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadFile decodes the corpus file at path.
func ReadFile(path string) (*Corpus, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus: %w", err)
	}
	defer f.Close()

	return Decode(f, format)
}

func Decode(r io.Reader, format Format) (*Corpus, error) {
	var c Corpus
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode YAML corpus: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&c); err != nil {
			return nil, fmt.Errorf("failed to decode JSON corpus: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err := c.trimCodes(); err != nil {
		return nil, err
	}
	return &c, nil
}

// trimCodes strips whitespace from language codes and verse text keys so the
// loader stores and looks up the same code Validate checked.
func (c *Corpus) trimCodes() error {
	for i := range c.Languages {
		c.Languages[i].Code = strings.TrimSpace(c.Languages[i].Code)
	}
	for _, book := range c.Books {
		for _, chapter := range book.Chapters {
			for _, verse := range chapter.Verses {
				for code, text := range verse.Text {
					trimmed := strings.TrimSpace(code)
					if trimmed == code {
						continue
					}
					if _, dup := verse.Text[trimmed]; dup {
						return fmt.Errorf("%w: %s %d:%d: text for %q given twice", ErrInvalidCorpus, book.Name, chapter.Number, verse.Number, trimmed)
					}
					delete(verse.Text, code)
					verse.Text[trimmed] = text
				}
			}
		}
	}
	return nil
}
