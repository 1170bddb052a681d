package models

import "strings"

const (
	MediaTypePDF  = "application/pdf"
	MediaTypeText = "text/plain"
)

// File is an uploaded document held in memory.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

func (f File) Size() int {
	return len(f.Data)
}

// Source is where a resume or job description gets its content from.
// It is either a TextSource or a FileSource, never both.
type Source interface {
	isSource()
}

type TextSource struct {
	Text string
}

type FileSource struct {
	File File
}

func (TextSource) isSource() {}
func (FileSource) isSource() {}

// Usable reports whether the source carries content worth sending.
func Usable(s Source) bool {
	switch src := s.(type) {
	case TextSource:
		return strings.TrimSpace(src.Text) != ""
	case FileSource:
		return true
	default:
		return false
	}
}

type Resume struct {
	ID     int
	Source Source
}

func (r Resume) Usable() bool {
	return Usable(r.Source)
}

type JobDescription struct {
	Source Source
}

func JobDescriptionFromText(text string) JobDescription {
	return JobDescription{Source: TextSource{Text: text}}
}

func JobDescriptionFromFile(file File) JobDescription {
	return JobDescription{Source: FileSource{File: file}}
}

func (j JobDescription) Provided() bool {
	return Usable(j.Source)
}

// IsFile reports whether the job description was supplied as a document.
func (j JobDescription) IsFile() bool {
	_, ok := j.Source.(FileSource)
	return ok
}
