package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"time"

	"github.com/sabaq/sabaq/core/attachment"
)

// cliNavigator maps workflow outcomes onto terminal output.
type cliNavigator struct{}

func (cliNavigator) ToResult(attachmentID string) {
	fmt.Printf("created attachment %s\n", attachmentID)
}

func (cliNavigator) ToLogin() {
	fmt.Println("session expired; run the login command again")
}

// openFile turns a local path into an attachment.File with its declared
// attributes. The returned handle is owned by the draft slot it is
// attached to.
func openFile(path string) (attachment.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return attachment.File{}, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return attachment.File{}, err
	}
	return attachment.File{
		Name:        filepath.Base(path),
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Content:     f,
	}, nil
}

// waitForSlot blocks until the slot leaves Uploading, printing progress
// along the way.
func waitForSlot(draft *attachment.Draft, id attachment.SlotID) error {
	last := -1
	for {
		state := draft.Slot(id)
		switch state.Status {
		case attachment.StatusDone:
			if last >= 0 {
				fmt.Println()
			}
			return nil
		case attachment.StatusFailed:
			if last >= 0 {
				fmt.Println()
			}
			return state.Failure
		}
		if state.Progress != last {
			last = state.Progress
			fmt.Printf("\r%s upload: %3d%%", id, last)
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// runAttachWorkflow drives one attach-media interaction to completion:
// attach (or link), wait for transfers, submit.
func (cli *commandLine) runAttachWorkflow(ctrl *attachment.Controller, title, file, link, thumbnail string) error {
	ctx := ctxBG()
	ctrl.SetTitle(title)
	defer ctrl.Close()

	if link != "" {
		ctrl.SelectSource(attachment.SourceLink)
		if err := ctrl.SetLink(attachment.SlotMedia, link); err != nil {
			return err
		}
	} else {
		f, err := openFile(file)
		if err != nil {
			return err
		}
		if err := ctrl.AttachFile(ctx, attachment.SlotMedia, f); err != nil {
			return err
		}
	}

	if thumbnail != "" {
		f, err := openFile(thumbnail)
		if err != nil {
			return err
		}
		if err := ctrl.AttachFile(ctx, attachment.SlotPreview, f); err != nil {
			return err
		}
		if err := waitForSlot(ctrl.Draft(), attachment.SlotPreview); err != nil {
			return err
		}
	}
	if err := waitForSlot(ctrl.Draft(), attachment.SlotMedia); err != nil {
		return err
	}

	_, err := ctrl.Submit(ctx)
	return err
}

func (cli *commandLine) addVideo(courseID int, title, file, link, thumbnail string) error {
	ctrl := attachment.NewController(
		attachment.KindVideo,
		cli.uploader,
		cli.client.VideoSubmitter(courseID),
		cliNavigator{},
		cli.logger,
	)
	return cli.runAttachWorkflow(ctrl, title, file, link, thumbnail)
}

func (cli *commandLine) addPDF(courseID int, title, file string) error {
	ctrl := attachment.NewController(
		attachment.KindRaw,
		cli.uploader,
		cli.client.PDFSubmitter(courseID),
		cliNavigator{},
		cli.logger,
	)
	return cli.runAttachWorkflow(ctrl, title, file, "", "")
}

func (cli *commandLine) createCourse(title, description, thumbnail string) error {
	if thumbnail == "" {
		crs, err := cli.courseSvc.Create(ctxBG(), newCourse(title, description))
		if err != nil {
			return err
		}
		fmt.Printf("created course %d\n", crs.ID)
		return nil
	}

	// thumbnail upload goes through the attach-media workflow; the
	// course is registered with the stored image reference.
	ctrl := attachment.NewController(
		attachment.KindImage,
		cli.uploader,
		cli.client.CourseSubmitter(description),
		cliNavigator{},
		cli.logger,
	)
	return cli.runAttachWorkflow(ctrl, title, thumbnail, "", "")
}
