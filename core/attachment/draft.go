package attachment

import (
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"github.com/sabaq/sabaq/core"
)

// SlotState is a point-in-time snapshot of one asset slot.
type SlotState struct {
	Status   Status
	Progress int
	Ref      string
	Failure  error
}

type slot struct {
	status   Status
	progress int
	ref      string
	failure  error
	gen      uint64    // generation of the task currently tracked; stale callbacks are dropped
	resource io.Closer // locally held handle, released on replacement or discard
}

func (s *slot) release() {
	if s.resource != nil {
		_ = s.resource.Close()
		s.resource = nil
	}
}

func (s *slot) reset() {
	s.release()
	s.status = StatusIdle
	s.progress = 0
	s.ref = ""
	s.failure = nil
}

// Draft is the in-memory state of one attachment being created. It is
// exclusively owned by one workflow controller; the mutex only guards
// against upload-task callbacks arriving from their own goroutines.
//
// Lifecycle: created empty when the screen opens, mutated by user input
// and upload callbacks, discarded on navigation away (never persisted)
// or replaced by a fresh instance after a successful submission.
type Draft struct {
	mu     sync.Mutex
	title  string
	source Source
	slots  [2]slot
}

func NewDraft() *Draft {
	return &Draft{source: SourceLocal}
}

func (d *Draft) SetTitle(title string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.title = core.CleanString(title)
}

func (d *Draft) Title() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.title
}

func (d *Draft) Source() Source {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.source
}

// SelectSource switches the draft's media source. Allowed from any
// state; clears both references and resets both slots to Idle.
func (d *Draft) SelectSource(src Source) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.source = src
	for i := range d.slots {
		d.slots[i].reset()
	}
}

// AttachLocalFile validates the file and, on pass, moves the slot to
// Uploading and spawns an UploadTask for the caller to run. On
// validation failure the slot goes to Failed without a task.
//
// A previously tracked task for the same slot is abandoned: the
// generation counter advances and its late callbacks become no-ops.
func (d *Draft) AttachLocalFile(id SlotID, f File, kind AssetKind) (*UploadTask, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := &d.slots[id]
	if err := CheckFile(f, kind); err != nil {
		s.status = StatusFailed
		s.failure = err
		return nil, err
	}

	s.release()
	s.gen++
	s.status = StatusUploading
	s.progress = 0
	s.ref = ""
	s.failure = nil
	s.resource = f.Content

	return &UploadTask{
		ID:   uuid.New(),
		Slot: id,
		Gen:  s.gen,
		Kind: kind,
		File: f,
	}, nil
}

// SetExternalLink resolves a pasted link synchronously: the slot becomes
// Done with the derived embeddable reference, or Failed on a malformed
// link. No upload task is spawned either way.
func (d *Draft) SetExternalLink(id SlotID, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := &d.slots[id]
	s.release()
	s.gen++ // abandon any in-flight task for this slot

	ref, err := ResolveLink(core.CleanString(text))
	if err != nil {
		s.status = StatusFailed
		s.progress = 0
		s.ref = ""
		s.failure = err
		return err
	}
	s.status = StatusDone
	s.progress = 0
	s.ref = ref
	s.failure = nil
	return nil
}

// UploadProgress updates the displayed progress for the slot. Values
// only ever move forward; reports from abandoned tasks are dropped.
func (d *Draft) UploadProgress(id SlotID, gen uint64, percent int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := &d.slots[id]
	if gen != s.gen || s.status != StatusUploading {
		return
	}
	if percent > s.progress {
		s.progress = percent
	}
}

// CompleteUpload moves the slot to Done with the stored asset reference,
// unless a newer task has since been started for the slot.
func (d *Draft) CompleteUpload(id SlotID, gen uint64, ref string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := &d.slots[id]
	if gen != s.gen {
		return
	}
	s.status = StatusDone
	s.progress = 100
	s.ref = ref
	s.failure = nil
}

// FailUpload moves the slot to Failed, unless a newer task has since
// been started for the slot. Retry is "pick the file again".
func (d *Draft) FailUpload(id SlotID, gen uint64, cause error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := &d.slots[id]
	if gen != s.gen {
		return
	}
	s.status = StatusFailed
	s.failure = &UploadError{Err: cause}
}

// Slot returns a snapshot of the given asset slot.
func (d *Draft) Slot(id SlotID) SlotState {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.slots[id]
	return SlotState{Status: s.status, Progress: s.progress, Ref: s.ref, Failure: s.failure}
}

// CanSubmit reports whether the draft satisfies the submission
// invariant: non-empty title, a registered media reference, and no slot
// still Uploading or Failed.
func (d *Draft) CanSubmit() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canSubmit()
}

func (d *Draft) canSubmit() bool {
	if d.title == "" {
		return false
	}
	if d.slots[SlotMedia].status != StatusDone || d.slots[SlotMedia].ref == "" {
		return false
	}
	for i := range d.slots {
		switch d.slots[i].status {
		case StatusUploading, StatusFailed:
			return false
		}
	}
	return true
}

// Submission finalizes the draft into a registration payload. It
// returns a ValidationError when the submission invariant does not hold.
func (d *Draft) Submission() (Submission, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	sub := Submission{
		Title:    d.title,
		MediaURL: d.slots[SlotMedia].ref,
		Source:   d.source,
	}
	if ref := d.slots[SlotPreview].ref; ref != "" && d.slots[SlotPreview].status == StatusDone {
		sub.PreviewURL = null.StringFrom(ref)
	}

	if !d.canSubmit() {
		if err := core.TranslateValidationErrors(core.Validate.Struct(sub)); err != nil {
			return Submission{}, err
		}
		return Submission{}, core.NewValidationError(nil, core.FieldError{
			Field: "media", Error: "an upload is still pending or has failed",
		})
	}
	return sub, nil
}

// Discard releases every locally held resource. Must be called on all
// exit paths: navigation away, session termination, or replacement by a
// fresh draft after submission.
func (d *Draft) Discard() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := range d.slots {
		d.slots[i].gen++ // abandon in-flight tasks
		d.slots[i].release()
	}
}
