package controllers

import (
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func fileHeader(size int64, contentType string) *multipart.FileHeader {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", contentType)
	return &multipart.FileHeader{
		Filename: "photo.png",
		Size:     size,
		Header:   header,
	}
}

func TestSaveImageRejectsOversizedFile(t *testing.T) {
	assert := assert.New(t)

	uc := &UploadController{LocalDir: t.TempDir()}
	_, err := uc.SaveImage(nil, fileHeader(MaxUploadSize+1, "image/png"), UploadKindEvent)
	assert.ErrorContains(err, "5MB size limit")
}

func TestSaveImageRejectsNonImage(t *testing.T) {
	assert := assert.New(t)

	uc := &UploadController{LocalDir: t.TempDir()}
	_, err := uc.SaveImage(nil, fileHeader(1024, "application/pdf"), UploadKindEvent)
	assert.ErrorContains(err, "only image files allowed")
}

func TestIsUniqueViolation(t *testing.T) {
	a := assert.New(t)

	a.True(isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	a.False(isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	a.False(isUniqueViolation(assert.AnError))
	a.False(isUniqueViolation(nil))
}
