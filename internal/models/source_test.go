package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUsable(t *testing.T) {
	assert.False(t, Usable(nil))
	assert.False(t, Usable(TextSource{}))
	assert.False(t, Usable(TextSource{Text: " \n\t"}))
	assert.True(t, Usable(TextSource{Text: "Jane"}))
	assert.True(t, Usable(FileSource{File: File{Name: "cv.pdf"}}))
}

func TestJobDescription(t *testing.T) {
	text := JobDescriptionFromText("Go engineer")
	assert.True(t, text.Provided())
	assert.False(t, text.IsFile())

	file := JobDescriptionFromFile(File{Name: "jd.pdf", MediaType: MediaTypePDF, Data: []byte("%PDF")})
	assert.True(t, file.Provided())
	assert.True(t, file.IsFile())

	assert.False(t, JobDescription{}.Provided())
	assert.False(t, JobDescriptionFromText("").Provided())
}
