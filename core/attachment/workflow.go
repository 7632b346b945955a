package attachment

import (
	"context"
	"sync"

	"github.com/sabaq/sabaq/core"
)

// Navigator maps terminal workflow outcomes to screen transitions.
type Navigator interface {
	// ToResult is called with the server-assigned id after a successful
	// submission.
	ToResult(attachmentID string)
	// ToLogin is called when the session is rejected; the draft has
	// already been discarded.
	ToLogin()
}

// Controller glues the resolver, the uploader, the draft and the
// submitter into one attach-media screen's interaction loop. The video,
// PDF and course-thumbnail screens share this shape and differ only in
// the media slot's asset kind and the submitter they are wired to.
//
// It holds no state beyond the active draft and a busy flag that
// serializes submission attempts.
type Controller struct {
	mediaKind AssetKind
	uploader  Uploader
	submitter Submitter
	nav       Navigator
	logger    core.Logger

	mu    sync.Mutex
	busy  bool
	draft *Draft
}

func NewController(mediaKind AssetKind, uploader Uploader, submitter Submitter, nav Navigator, logger core.Logger) *Controller {
	return &Controller{
		mediaKind: mediaKind,
		uploader:  uploader,
		submitter: submitter,
		nav:       nav,
		logger:    logger,
		draft:     NewDraft(),
	}
}

// Draft exposes the active draft for rendering.
func (c *Controller) Draft() *Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Controller) SetTitle(title string) {
	c.Draft().SetTitle(title)
}

func (c *Controller) SelectSource(src Source) {
	c.Draft().SelectSource(src)
}

// SetLink resolves a pasted external link into the given slot.
func (c *Controller) SetLink(id SlotID, text string) error {
	return c.Draft().SetExternalLink(id, text)
}

// kindFor picks the upload destination for a slot: the media slot uses
// the screen's configured kind, the preview slot is always an image.
func (c *Controller) kindFor(id SlotID) AssetKind {
	if id == SlotPreview {
		return KindImage
	}
	return c.mediaKind
}

// AttachFile validates the picked file and starts its upload in the
// background. Validation failures surface immediately and no transfer
// is attempted.
func (c *Controller) AttachFile(ctx context.Context, id SlotID, f File) error {
	draft := c.Draft()
	task, err := draft.AttachLocalFile(id, f, c.kindFor(id))
	if err != nil {
		if f.Content != nil {
			_ = f.Content.Close()
		}
		return err
	}
	go c.runUpload(ctx, draft, task)
	return nil
}

func (c *Controller) runUpload(ctx context.Context, draft *Draft, task *UploadTask) {
	ref, err := c.uploader.Upload(ctx, task.File, task.Kind, func(percent int) {
		draft.UploadProgress(task.Slot, task.Gen, percent)
	})
	if err != nil {
		c.logger.Warn("upload failed", err, map[string]interface{}{
			"task": task.ID.String(), "slot": task.Slot.String(), "kind": string(task.Kind),
		})
		draft.FailUpload(task.Slot, task.Gen, err)
		return
	}
	draft.CompleteUpload(task.Slot, task.Gen, ref)
}

// CanSubmit maps the draft state to submit-action enablement.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return false
	}
	draft := c.draft
	c.mu.Unlock()
	return draft.CanSubmit()
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// Submit registers the finalized draft with the backend. A second
// attempt while one is outstanding is rejected here, at the UI boundary.
// On success the draft is replaced by a fresh instance and the caller is
// routed to the result view; on a rejected session the draft is
// discarded and the caller is routed to login. Nothing is retried
// automatically.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return "", ErrBusy
	}
	c.busy = true
	draft := c.draft
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.busy = false
		c.mu.Unlock()
	}()

	sub, err := draft.Submission()
	if err != nil {
		return "", err
	}

	id, err := c.submitter.Submit(ctx, sub)
	if err != nil {
		if core.IsUnauthorized(err) {
			draft.Discard()
			c.nav.ToLogin()
		}
		return "", err
	}

	draft.Discard()
	c.mu.Lock()
	c.draft = NewDraft()
	c.mu.Unlock()

	c.nav.ToResult(id)
	return id, nil
}

// Close discards the active draft; navigating away is the only cancel.
func (c *Controller) Close() {
	c.Draft().Discard()
}
