package corpus

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidCorpus = errors.New("invalid corpus")

// Validate checks the structural invariants the reader relies on. Every
// violation is reported, not only the first.
//
// Headings are placed before the verse whose number equals their order,
// so a heading whose order matches no verse of its chapter is rejected
// here rather than silently dropped at display time.
func (c *Corpus) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	codes := make(map[string]struct{}, len(c.Languages))
	for i, lang := range c.Languages {
		code := lang.Code
		if strings.TrimSpace(code) == "" {
			fail("languages[%d]: code is required", i)
			continue
		}
		if strings.TrimSpace(code) != code {
			fail("languages[%d]: code %q has surrounding whitespace", i, code)
		}
		if _, dup := codes[code]; dup {
			fail("languages[%d]: duplicate code %q", i, code)
		}
		codes[code] = struct{}{}
	}

	names := make(map[string]struct{}, len(c.Books))
	for i, book := range c.Books {
		where := fmt.Sprintf("books[%d] %q", i, book.Name)
		if strings.TrimSpace(book.Name) == "" {
			fail("books[%d]: name is required", i)
		}
		if _, dup := names[book.Name]; dup {
			fail("%s: duplicate book name", where)
		}
		names[book.Name] = struct{}{}
		if strings.TrimSpace(book.Testament) == "" {
			fail("%s: testament is required", where)
		}

		chapters := make(map[int]struct{}, len(book.Chapters))
		for _, chapter := range book.Chapters {
			where := fmt.Sprintf("%s %d", book.Name, chapter.Number)
			if chapter.Number < 1 {
				fail("%s: chapter number must be positive", where)
			}
			if _, dup := chapters[chapter.Number]; dup {
				fail("%s: duplicate chapter", where)
			}
			chapters[chapter.Number] = struct{}{}

			verses := make(map[int]struct{}, len(chapter.Verses))
			for _, verse := range chapter.Verses {
				if verse.Number < 1 {
					fail("%s:%d: verse number must be positive", where, verse.Number)
				}
				if _, dup := verses[verse.Number]; dup {
					fail("%s:%d: duplicate verse", where, verse.Number)
				}
				verses[verse.Number] = struct{}{}

				for code := range verse.Text {
					if _, ok := codes[code]; !ok {
						fail("%s:%d: text in undeclared language %q", where, verse.Number, code)
					}
				}
			}

			anchors := make(map[int]struct{}, len(chapter.Headings))
			for _, heading := range chapter.Headings {
				if _, dup := anchors[heading.Order]; dup {
					fail("%s: duplicate heading order %d", where, heading.Order)
				}
				anchors[heading.Order] = struct{}{}
				if _, ok := verses[heading.Order]; !ok {
					fail("%s: heading %q anchored to missing verse %d", where, heading.Text, heading.Order)
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCorpus, errors.Join(errs...))
	}
	return nil
}
