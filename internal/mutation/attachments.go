package mutation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sourcegraph/conc/pool"

	"github.com/nhle/shift-handover/internal/cache"
	"github.com/nhle/shift-handover/internal/gateway"
	"github.com/nhle/shift-handover/internal/model"
)

// File is one upload candidate. ContentType is detected when empty.
type File struct {
	Name        string
	Data        []byte
	ContentType string
}

// ReadFile loads a local file for upload. Files over limit are rejected
// without being read.
func ReadFile(path string, limit int64) (File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if limit > 0 && info.Size() > limit {
		return File{}, fmt.Errorf("%s (%d bytes): %w", filepath.Base(path), info.Size(), ErrFileTooLarge)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return File{Name: filepath.Base(path), Data: data}, nil
}

// MaxUploadBytes returns the per-file upload limit.
func (c *Controller) MaxUploadBytes() int64 { return c.opts.MaxUploadBytes }

// UploadAttachments stores files as attachments of ref. If any file is
// over the limit nothing is sent. Otherwise every file is uploaded in
// parallel and the batch fails if any one fails; rows written before the
// failure are not rolled back.
func (c *Controller) UploadAttachments(ctx context.Context, ref model.ItemRef, uploader string, files []File) error {
	const op = "upload attachments"
	if !ref.Valid() {
		return fail(op, fmt.Errorf("%w: %s", ErrInvalidRef, ref))
	}
	if len(files) == 0 {
		return fail(op, ErrNoFiles)
	}
	for _, f := range files {
		if int64(len(f.Data)) > c.opts.MaxUploadBytes {
			return fail(op, fmt.Errorf("%s (%d bytes): %w", f.Name, len(f.Data), ErrFileTooLarge))
		}
	}
	if strings.TrimSpace(uploader) == "" {
		uploader = c.opts.UserName
	}

	// Each file gets its own millisecond so same-named files in one
	// selection land on distinct storage paths.
	at := c.now()
	p := pool.New().WithErrors().WithContext(ctx)
	for i, f := range files {
		fileAt := at.Add(time.Duration(i) * time.Millisecond)
		p.Go(func(ctx context.Context) error {
			contentType := f.ContentType
			if contentType == "" {
				contentType = mimetype.Detect(f.Data).String()
			}
			path := model.StoragePath(ref, fileAt, f.Name)
			if err := c.backend.Upload(ctx, path, f.Data, contentType); err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			_, err := c.backend.InsertAttachment(ctx, model.AttachmentInput{
				ItemType:    ref.Kind,
				ItemID:      ref.ID,
				FileName:    f.Name,
				StoragePath: path,
				SizeBytes:   int64(len(f.Data)),
				MimeType:    contentType,
				UploadedBy:  uploader,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return fail(op, err)
	}

	c.reload(ctx, cache.Attachments)
	return nil
}

func (c *Controller) attachment(id int64) (model.Attachment, error) {
	a, ok := c.cache.Snapshot().Attachment(id)
	if !ok {
		return model.Attachment{}, fmt.Errorf("attachment %d: %w", id, gateway.ErrNotFound)
	}
	return a, nil
}

// DeleteAttachment removes the blob and then the row. If the row delete
// fails the blob is already gone; nothing reconciles the two.
func (c *Controller) DeleteAttachment(ctx context.Context, id int64) error {
	const op = "delete attachment"
	a, err := c.attachment(id)
	if err != nil {
		return fail(op, err)
	}
	if err := c.backend.Remove(ctx, a.StoragePath); err != nil {
		return fail(op, err)
	}
	if err := c.backend.DeleteAttachment(ctx, id); err != nil {
		return fail(op, err)
	}
	c.reload(ctx, cache.Attachments)
	return nil
}

// AttachmentURL returns a time-limited link to the attachment's blob.
func (c *Controller) AttachmentURL(ctx context.Context, id int64) (string, error) {
	const op = "sign attachment url"
	a, err := c.attachment(id)
	if err != nil {
		return "", fail(op, err)
	}
	url, err := c.backend.CreateSignedURL(ctx, a.StoragePath, c.opts.SignedURLTTL)
	if err != nil {
		return "", fail(op, err)
	}
	return url, nil
}

// DownloadAttachment fetches the attachment's bytes.
func (c *Controller) DownloadAttachment(ctx context.Context, id int64) (model.Attachment, []byte, error) {
	const op = "download attachment"
	a, err := c.attachment(id)
	if err != nil {
		return model.Attachment{}, nil, fail(op, err)
	}
	data, err := c.backend.Download(ctx, a.StoragePath)
	if err != nil {
		return model.Attachment{}, nil, fail(op, err)
	}
	return a, data, nil
}

// SaveDownload downloads attachment id into dir under its file name and
// returns the written path.
func (c *Controller) SaveDownload(ctx context.Context, id int64, dir string) (string, error) {
	a, data, err := c.DownloadAttachment(ctx, id)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, filepath.Base(a.FileName))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fail("download attachment", fmt.Errorf("writing %s: %w", path, err))
	}
	return path, nil
}
