package entities

// Upload is a user-submitted audio file plus its declared metadata
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ParsedNotes is the structured view derived from raw model output.
// Every field is always populated: absent sections carry their
// documented defaults and Notes retains the full raw text.
type ParsedNotes struct {
	Title     string
	Summary   string
	Decisions []string
	Actions   []ActionItem
	Notes     string
}
