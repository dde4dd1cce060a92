package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/oksasatya/six-cities-api/pkg/apperror"
)

// multipartOverhead is the allowance for boundaries and headers on top of the file itself.
const multipartOverhead = 64 << 10

// FileStore persists an accepted upload and returns its public path.
type FileStore interface {
	Save(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// UploadFile accepts one file from the multipart field, checks its size and
// its content-sniffed MIME type, stores it and sets rc.File. Nothing is stored
// when the file is rejected.
func UploadFile(store FileStore, field string, maxBytes int64, allowed ...string) Interceptor {
	return InterceptorFunc(func(rc *RequestContext, next Next) error {
		c := rc.Gin
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+multipartOverhead)

		fh, err := c.FormFile(field)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return apperror.BadRequest(fmt.Sprintf("File exceeds %d bytes", maxBytes))
			}
			return apperror.BadRequest(fmt.Sprintf("File field %q is required", field))
		}
		if fh.Size > maxBytes {
			return apperror.BadRequest(fmt.Sprintf("File exceeds %d bytes", maxBytes))
		}

		f, err := fh.Open()
		if err != nil {
			return fmt.Errorf("open upload: %w", err)
		}
		defer func() { _ = f.Close() }()

		mt, err := sniff(f)
		if err != nil {
			return fmt.Errorf("sniff upload: %w", err)
		}
		if !mimetype.EqualsAny(mt.String(), allowed...) {
			return apperror.BadRequest(fmt.Sprintf("File type %s is not allowed", mt.String())).
				WithDetails(map[string]any{"allowed": allowed})
		}

		name := uuid.NewString() + mt.Extension()
		path, err := store.Save(c.Request.Context(), name, mt.String(), f)
		if err != nil {
			return fmt.Errorf("store upload: %w", err)
		}
		rc.File = &UploadedFile{Path: path, Filename: fh.Filename, MIME: mt.String(), Size: fh.Size}
		return next()
	})
}

// sniff detects the type from content and rewinds the file.
func sniff(f multipart.File) (*mimetype.MIME, error) {
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	return mt, nil
}
