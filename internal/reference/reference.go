// Package reference parses human verse references such as "John 3:16" or
// "1 John 4:8".
package reference

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformed is returned for input that is not a "Book Chapter:Verse" reference.
var ErrMalformed = errors.New("malformed reference")

// Reference locates a single verse.
type Reference struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
}

func (r Reference) String() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// An optional leading book number (1-3), a name made of letters, spaces,
// dots, apostrophes and hyphens, then chapter and verse separated by ':'
// or '.'.
var pattern = regexp.MustCompile(`^(?:([1-3])\s*)?(\pL[\pL\s.'’-]*?)\.?\s*(\d+)\s*[:.]\s*(\d+)$`)

var spaces = regexp.MustCompile(`\s+`)

// Parse splits s into book, chapter and verse. It does not check that the
// book exists.
func Parse(s string) (Reference, error) {
	input := strings.TrimSpace(s)
	m := pattern.FindStringSubmatch(input)
	if m == nil {
		return Reference{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	book := spaces.ReplaceAllString(strings.TrimSpace(m[2]), " ")
	if m[1] != "" {
		book = m[1] + " " + book
	}

	chapter, err := strconv.Atoi(m[3])
	if err != nil || chapter < 1 {
		return Reference{}, fmt.Errorf("%w: invalid chapter in %q", ErrMalformed, s)
	}
	verse, err := strconv.Atoi(m[4])
	if err != nil || verse < 1 {
		return Reference{}, fmt.Errorf("%w: invalid verse in %q", ErrMalformed, s)
	}

	return Reference{Book: book, Chapter: chapter, Verse: verse}, nil
}
