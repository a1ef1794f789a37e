// Package view holds the dashboard's view model: the server-side equivalent of
// the page DOM. Each exported subtree is written by exactly one controller and
// replaced wholesale on every update. Nothing in this package is safe for
// concurrent use; the dashboard actor serializes every access.
package view

import "time"

// Kind classifies a result slot
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// Tone is the colour of a status indicator
type Tone string

const (
	ToneNeutral Tone = "neutral"
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// Field is one labelled value rendered inline in a result
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Result is the single most recent outcome shown for a form
type Result struct {
	Message string  `json:"message"`
	Fields  []Field `json:"fields,omitempty"`
	Kind    Kind    `json:"kind"`
}

// ResultSlot holds at most one Result
type ResultSlot struct {
	Current *Result `json:"current,omitempty"`
}

// Show replaces the slot content and classification in a single assignment
func (s *ResultSlot) Show(r Result) {
	r.Fields = append([]Field(nil), r.Fields...)
	s.Current = &r
}

// Row is one rendered table row. A row with Note set spans every column.
type Row struct {
	Cells []string `json:"cells,omitempty"`
	Note  string   `json:"note,omitempty"`
	Class string   `json:"class,omitempty"`
}

// Table is a rendered table body
type Table struct {
	Rows []Row `json:"rows"`
}

// Replace swaps the whole body
func (t *Table) Replace(rows ...Row) {
	t.Rows = rows
}

// BlockCard is one rendered block of the chain visualisation
type BlockCard struct {
	Title     string   `json:"title"`
	Timestamp string   `json:"timestamp"`
	Hash      string   `json:"hash"`
	PrevHash  string   `json:"prev_hash"`
	Entries   []string `json:"entries"`
}

// ChainPane is the chain container: either a note (loading, error) or cards
type ChainPane struct {
	Note   string      `json:"note,omitempty"`
	Class  string      `json:"class,omitempty"`
	Blocks []BlockCard `json:"blocks,omitempty"`
}

// ShowNote replaces the pane with a single message
func (c *ChainPane) ShowNote(note, class string) {
	c.Note, c.Class, c.Blocks = note, class, nil
}

// ShowBlocks replaces the pane with rendered cards
func (c *ChainPane) ShowBlocks(cards []BlockCard) {
	c.Note, c.Class, c.Blocks = "", "", cards
}

// Indicator is a short status text with a colour
type Indicator struct {
	Text string `json:"text"`
	Tone Tone   `json:"tone"`
}

// Set replaces text and tone together
func (i *Indicator) Set(text string, tone Tone) {
	i.Text, i.Tone = text, tone
}

// LogLine is one append-only log entry
type LogLine struct {
	At   time.Time `json:"at"`
	Text string    `json:"text"`
}

// String renders the line the way the panels display it
func (l LogLine) String() string {
	return "[" + l.At.Format("15:04:05") + "] " + l.Text
}

// LogPanel is an append-only, unbounded log
type LogPanel struct {
	Lines    []LogLine `json:"lines"`
	Expanded bool      `json:"expanded"`
	// ScrollTo is the index of the line kept in view; -1 when empty
	ScrollTo int `json:"scroll_to"`
}

// Append adds a line and scrolls to it
func (p *LogPanel) Append(line LogLine) {
	p.Lines = append(p.Lines, line)
	p.ScrollTo = len(p.Lines) - 1
}

// Form holds the values currently typed into a form
type Form struct {
	Values map[string]string `json:"values"`
}

// Get returns a field value, "" when unset
func (f *Form) Get(name string) string {
	return f.Values[name]
}

// Fill sets the given fields, leaving the others untouched
func (f *Form) Fill(values map[string]string) {
	if f.Values == nil {
		f.Values = make(map[string]string, len(values))
	}
	for k, v := range values {
		f.Values[k] = v
	}
}

// Reset clears every field
func (f *Form) Reset() {
	f.Values = make(map[string]string)
}

// Form field names
const (
	FieldDomainName = "domain_name"
	FieldIPAddress  = "ip_address"
	FieldOwner      = "owner"
	FieldLookupName = "lookup_domain"
)

// Page is the whole view model, the UI context handed to every controller
type Page struct {
	Terminal       LogPanel   `json:"terminal"`
	Activity       LogPanel   `json:"activity"`
	RegisterForm   Form       `json:"register_form"`
	LookupForm     Form       `json:"lookup_form"`
	RegisterResult ResultSlot `json:"register_result"`
	LookupResult   ResultSlot `json:"lookup_result"`
	Domains        Table      `json:"domains"`
	Chain          ChainPane  `json:"chain"`
	ChainLength    Indicator  `json:"chain_length"`
	ChainStatus    Indicator  `json:"chain_status"`
	Connection     Indicator  `json:"connection"`
}

// NewPage returns an empty page in its pre-load state
func NewPage() *Page {
	return &Page{
		Terminal:     LogPanel{ScrollTo: -1},
		Activity:     LogPanel{ScrollTo: -1},
		RegisterForm: Form{Values: map[string]string{}},
		LookupForm:   Form{Values: map[string]string{}},
		ChainLength:  Indicator{Text: "0", Tone: ToneNeutral},
		ChainStatus:  Indicator{Text: "Unknown", Tone: ToneNeutral},
		Connection:   Indicator{Tone: ToneNeutral},
	}
}

// Snapshot returns a deep copy safe to hand to another goroutine
func (p *Page) Snapshot() Page {
	s := *p
	s.Terminal.Lines = append([]LogLine(nil), p.Terminal.Lines...)
	s.Activity.Lines = append([]LogLine(nil), p.Activity.Lines...)
	s.RegisterForm.Values = copyValues(p.RegisterForm.Values)
	s.LookupForm.Values = copyValues(p.LookupForm.Values)
	s.RegisterResult.Current = copyResult(p.RegisterResult.Current)
	s.LookupResult.Current = copyResult(p.LookupResult.Current)

	s.Domains.Rows = make([]Row, len(p.Domains.Rows))
	for i, r := range p.Domains.Rows {
		r.Cells = append([]string(nil), r.Cells...)
		s.Domains.Rows[i] = r
	}

	if p.Chain.Blocks != nil {
		s.Chain.Blocks = make([]BlockCard, len(p.Chain.Blocks))
		for i, b := range p.Chain.Blocks {
			b.Entries = append([]string(nil), b.Entries...)
			s.Chain.Blocks[i] = b
		}
	}
	return s
}

func copyValues(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func copyResult(r *Result) *Result {
	if r == nil {
		return nil
	}
	c := *r
	c.Fields = append([]Field(nil), r.Fields...)
	return &c
}
