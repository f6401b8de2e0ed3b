package entities

// AnnotationDocument is the portable form of the annotation store.
// Field names follow the export files produced by the mobile reader.
type AnnotationDocument struct {
	Bookmarks  []BookmarkRecord  `json:"bookmarks" yaml:"bookmarks"`
	Highlights []HighlightRecord `json:"highlights" yaml:"highlights"`
}

// BookmarkRecord is a bookmark in transit. A nil ID means the record was
// never persisted; imports ignore it either way and match on VerseID.
type BookmarkRecord struct {
	ID        *uint `json:"id,omitempty" yaml:"id,omitempty"`
	VerseID   uint  `json:"verseId" yaml:"verseId"`
	Timestamp int64 `json:"timestamp" yaml:"timestamp"`
}

type HighlightRecord struct {
	ID        *uint   `json:"id,omitempty" yaml:"id,omitempty"`
	VerseID   uint    `json:"verseId" yaml:"verseId"`
	ColorHex  *string `json:"colorHex,omitempty" yaml:"colorHex,omitempty"`
	Timestamp int64   `json:"timestamp" yaml:"timestamp"`
}

func (d AnnotationDocument) IsEmpty() bool {
	return len(d.Bookmarks) == 0 && len(d.Highlights) == 0
}

// BookmarkToRecord converts a stored bookmark to its transfer form.
func BookmarkToRecord(b Bookmark) BookmarkRecord {
	id := b.ID
	return BookmarkRecord{ID: &id, VerseID: b.VerseID, Timestamp: b.Timestamp}
}

func HighlightToRecord(h Highlight) HighlightRecord {
	id := h.ID
	rec := HighlightRecord{ID: &id, VerseID: h.VerseID, Timestamp: h.Timestamp}
	if h.ColorHex != nil {
		color := *h.ColorHex
		rec.ColorHex = &color
	}
	return rec
}
