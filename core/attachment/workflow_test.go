package attachment

import (
	"context"
	"io"
	"io/ioutil"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sabaq/sabaq/core"
)

type uploaderFunc func(ctx context.Context, file File, kind AssetKind, onProgress func(int)) (string, error)

func (f uploaderFunc) Upload(ctx context.Context, file File, kind AssetKind, onProgress func(int)) (string, error) {
	return f(ctx, file, kind, onProgress)
}

type fakeUploader struct {
	ref     string
	err     error
	started chan struct{} // closed when Upload is entered
	release chan struct{} // Upload blocks on it when set
}

func (u *fakeUploader) Upload(ctx context.Context, file File, kind AssetKind, onProgress func(int)) (string, error) {
	_, _ = io.Copy(ioutil.Discard, file.Content)
	if u.started != nil {
		close(u.started)
		u.started = nil
	}
	if u.release != nil {
		<-u.release
	}
	if u.err != nil {
		return "", u.err
	}
	if onProgress != nil {
		onProgress(50)
		onProgress(100)
	}
	return u.ref, nil
}

type fakeSubmitter struct {
	mu      sync.Mutex
	id      string
	err     error
	subs    []Submission
	release chan struct{} // Submit blocks on it when set
}

func (s *fakeSubmitter) Submit(ctx context.Context, sub Submission) (string, error) {
	if s.release != nil {
		<-s.release
	}
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	return s.id, nil
}

func (s *fakeSubmitter) submissions() []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Submission, len(s.subs))
	copy(out, s.subs)
	return out
}

type fakeNavigator struct {
	mu       sync.Mutex
	results  []string
	toLogins int
}

func (n *fakeNavigator) ToResult(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.results = append(n.results, id)
}

func (n *fakeNavigator) ToLogin() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.toLogins++
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func waitStatus(t *testing.T, d *Draft, id SlotID, want Status) SlotState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if state := d.Slot(id); state.Status == want {
			return state
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("slot %s never reached status %d (got %d)", id, want, d.Slot(id).Status)
	return SlotState{}
}

// user picks a local video, progress runs to 100, slot lands Done with a
// reference; submitting with a title yields the created id
func TestController_localVideoScenario(t *testing.T) {
	up := &fakeUploader{ref: "https://cdn.example.com/video/intro.mp4"}
	sub := &fakeSubmitter{id: "41"}
	nav := &fakeNavigator{}
	ctrl := NewController(KindVideo, up, sub, nav, nopLogger{})

	ctrl.SetTitle("Intro")
	f, _ := trackedFile("intro.mp4", 10<<20, "video/mp4")
	if err := ctrl.AttachFile(context.Background(), SlotMedia, f); err != nil {
		t.Fatalf("AttachFile() failed: %v", err)
	}

	state := waitStatus(t, ctrl.Draft(), SlotMedia, StatusDone)
	assert.Equal(t, 100, state.Progress)
	assert.Equal(t, "https://cdn.example.com/video/intro.mp4", state.Ref)
	assert.True(t, ctrl.CanSubmit())

	id, err := ctrl.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	assert.Equal(t, "41", id)
	assert.Equal(t, []string{"41"}, nav.results)

	if subs := sub.submissions(); assert.Len(t, subs, 1) {
		assert.Equal(t, "Intro", subs[0].Title)
		assert.Equal(t, SourceLocal, subs[0].Source)
	}

	// a fresh draft replaces the submitted one
	assert.Equal(t, StatusIdle, ctrl.Draft().Slot(SlotMedia).Status)
	assert.Equal(t, "", ctrl.Draft().Title())
}

// a pasted link lands Done immediately with the embed reference and no upload runs
func TestController_externalLinkScenario(t *testing.T) {
	up := &fakeUploader{ref: "unused"}
	sub := &fakeSubmitter{id: "7"}
	ctrl := NewController(KindVideo, up, sub, &fakeNavigator{}, nopLogger{})

	ctrl.SelectSource(SourceLink)
	if err := ctrl.SetLink(SlotMedia, "https://youtu.be/abc123XYZ9"); err != nil {
		t.Fatalf("SetLink() failed: %v", err)
	}
	state := ctrl.Draft().Slot(SlotMedia)
	assert.Equal(t, StatusDone, state.Status)
	assert.Equal(t, "https://www.youtube.com/embed/abc123XYZ9", state.Ref)

	ctrl.SetTitle("Intro")
	id, err := ctrl.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	assert.Equal(t, "7", id)

	if subs := sub.submissions(); assert.Len(t, subs, 1) {
		assert.Equal(t, SourceLink, subs[0].Source)
	}
}

func TestController_invalidLink(t *testing.T) {
	ctrl := NewController(KindVideo, &fakeUploader{}, &fakeSubmitter{}, &fakeNavigator{}, nopLogger{})
	ctrl.SetTitle("Intro")
	ctrl.SelectSource(SourceLink)

	err := ctrl.SetLink(SlotMedia, "not-a-link")
	assert.Equal(t, ErrInvalidLinkFormat, err)
	assert.Equal(t, StatusFailed, ctrl.Draft().Slot(SlotMedia).Status)
	assert.False(t, ctrl.CanSubmit())
}

func TestController_uploadFailure(t *testing.T) {
	up := &fakeUploader{err: assert.AnError}
	ctrl := NewController(KindVideo, up, &fakeSubmitter{}, &fakeNavigator{}, nopLogger{})
	ctrl.SetTitle("Intro")

	f, _ := trackedFile("intro.mp4", 1<<20, "video/mp4")
	if err := ctrl.AttachFile(context.Background(), SlotMedia, f); err != nil {
		t.Fatalf("AttachFile() failed: %v", err)
	}
	state := waitStatus(t, ctrl.Draft(), SlotMedia, StatusFailed)
	if _, ok := state.Failure.(*UploadError); !ok {
		t.Errorf("slot failure = %v; want *UploadError", state.Failure)
	}
	assert.False(t, ctrl.CanSubmit())
}

func TestController_rejectedFileClosesHandle(t *testing.T) {
	ctrl := NewController(KindVideo, &fakeUploader{}, &fakeSubmitter{}, &fakeNavigator{}, nopLogger{})

	f, ct := trackedFile("movie.mp4", MaxVideoSize+1, "video/mp4")
	err := ctrl.AttachFile(context.Background(), SlotMedia, f)
	assert.Error(t, err)
	assert.True(t, ct.closed)
}

// a second submit while one is outstanding is rejected at the UI boundary
func TestController_busySerializesSubmission(t *testing.T) {
	sub := &fakeSubmitter{id: "1", release: make(chan struct{})}
	ctrl := NewController(KindVideo, &fakeUploader{}, sub, &fakeNavigator{}, nopLogger{})

	ctrl.SetTitle("Intro")
	ctrl.SelectSource(SourceLink)
	_ = ctrl.SetLink(SlotMedia, "https://youtu.be/abc123XYZ9")

	done := make(chan error, 1)
	go func() {
		_, err := ctrl.Submit(context.Background())
		done <- err
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !ctrl.Busy() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	assert.False(t, ctrl.CanSubmit()) // disabled while busy

	_, err := ctrl.Submit(context.Background())
	assert.Equal(t, ErrBusy, err)

	close(sub.release)
	if err := <-done; err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	assert.Equal(t, 1, len(sub.submissions()))
}

// a 401 discards the draft and routes to login
func TestController_unauthorizedSubmission(t *testing.T) {
	sub := &fakeSubmitter{err: core.ErrUnauthorized}
	nav := &fakeNavigator{}
	ctrl := NewController(KindVideo, &fakeUploader{ref: "https://cdn.example.com/v.mp4"}, sub, nav, nopLogger{})

	ctrl.SetTitle("Intro")
	f, ct := trackedFile("intro.mp4", 1<<20, "video/mp4")
	if err := ctrl.AttachFile(context.Background(), SlotMedia, f); err != nil {
		t.Fatalf("AttachFile() failed: %v", err)
	}
	waitStatus(t, ctrl.Draft(), SlotMedia, StatusDone)

	_, err := ctrl.Submit(context.Background())
	assert.True(t, core.IsUnauthorized(err))
	assert.Equal(t, 1, nav.toLogins)
	assert.Empty(t, nav.results)
	assert.True(t, ct.closed, "draft must be discarded on 401")
}

func TestController_rejectedSubmission(t *testing.T) {
	sub := &fakeSubmitter{err: core.NewRejectedError("title already taken")}
	nav := &fakeNavigator{}
	ctrl := NewController(KindVideo, &fakeUploader{}, sub, nav, nopLogger{})

	ctrl.SetTitle("Intro")
	ctrl.SelectSource(SourceLink)
	_ = ctrl.SetLink(SlotMedia, "https://youtu.be/abc123XYZ9")

	_, err := ctrl.Submit(context.Background())
	assert.True(t, core.IsRejected(err))
	assert.Equal(t, "title already taken", err.Error())
	assert.Equal(t, 0, nav.toLogins)

	// the draft survives so the user can correct and resubmit
	assert.True(t, ctrl.CanSubmit())
}

func TestController_submitWithoutMedia(t *testing.T) {
	ctrl := NewController(KindVideo, &fakeUploader{}, &fakeSubmitter{}, &fakeNavigator{}, nopLogger{})
	ctrl.SetTitle("Intro")

	_, err := ctrl.Submit(context.Background())
	if _, ok := err.(*core.ValidationError); !ok {
		t.Fatalf("Submit() error = %v; want *core.ValidationError", err)
	}
	assert.False(t, ctrl.Busy())
}

// replacing the file mid-upload abandons the first task even if it
// completes later
func TestController_replacementWins(t *testing.T) {
	firstStarted := make(chan struct{})
	firstRelease := make(chan struct{})
	up := uploaderFunc(func(ctx context.Context, file File, kind AssetKind, onProgress func(int)) (string, error) {
		_, _ = io.Copy(ioutil.Discard, file.Content)
		if file.Name == "first.mp4" {
			close(firstStarted)
			<-firstRelease // the abandoned task finishes late
			return "https://cdn.example.com/video/first.mp4", nil
		}
		return "https://cdn.example.com/video/second.mp4", nil
	})
	ctrl := NewController(KindVideo, up, &fakeSubmitter{}, &fakeNavigator{}, nopLogger{})

	f1, _ := trackedFile("first.mp4", 1<<20, "video/mp4")
	if err := ctrl.AttachFile(context.Background(), SlotMedia, f1); err != nil {
		t.Fatalf("AttachFile() failed: %v", err)
	}
	<-firstStarted

	f2, _ := trackedFile("second.mp4", 1<<20, "video/mp4")
	if err := ctrl.AttachFile(context.Background(), SlotMedia, f2); err != nil {
		t.Fatalf("AttachFile() failed: %v", err)
	}
	state := waitStatus(t, ctrl.Draft(), SlotMedia, StatusDone)
	assert.Equal(t, "https://cdn.example.com/video/second.mp4", state.Ref)

	// let the abandoned first task finish; its result must be ignored
	close(firstRelease)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "https://cdn.example.com/video/second.mp4", ctrl.Draft().Slot(SlotMedia).Ref)
}
