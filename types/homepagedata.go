package types

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	// MessageWarning is used for user-caused problems such as blank content.
	MessageWarning MessageKind = "warning"
	MessageError   MessageKind = "error"
)

// Message is a status line shown on the page. Detail is already localized
// but not escaped; escaping is left to the template.
type Message struct {
	Kind   MessageKind
	Detail string
}

type HomePageData struct {
	Lang            language.Tag
	Printer         *message.Printer
	ConnectionError *Message
	Notes           []Note
	Message         *Message
	ListError       *Message
	ShowForm        bool
	Year            int
}

func NewHomePageData(tag language.Tag, printer *message.Printer) HomePageData {
	return HomePageData{
		Lang:     tag,
		Printer:  printer,
		ShowForm: true,
		Year:     time.Now().Year(),
	}
}

// WithConnectionError puts the page in the store-unavailable state: a banner
// only, without the form or the list.
func (d HomePageData) WithConnectionError(detail string) HomePageData {
	d.ConnectionError = &Message{Kind: MessageError, Detail: detail}
	d.ShowForm = false
	d.Notes = nil
	return d
}

func (d HomePageData) WithMessage(kind MessageKind, detail string) HomePageData {
	d.Message = &Message{Kind: kind, Detail: detail}
	return d
}

func (d HomePageData) WithListError(detail string) HomePageData {
	d.ListError = &Message{Kind: MessageError, Detail: detail}
	return d
}

func (d HomePageData) WithNotes(notes []Note) HomePageData {
	d.Notes = append(d.Notes, notes...)
	return d
}

// T looks up key in the page's language and formats args into the result.
func (d HomePageData) T(key message.Reference, args ...any) string {
	if d.Printer == nil {
		format, _ := key.(string)
		return fmt.Sprintf(format, args...)
	}
	return d.Printer.Sprintf(key, args...)
}

// FormatTime renders t with the layout registered for the page's language.
func (d HomePageData) FormatTime(t time.Time) string {
	layout := "02/01/2006 15:04:05"
	if d.Printer != nil {
		layout = d.Printer.Sprintf("layout.timestamp")
	}
	return t.Local().Format(layout)
}
