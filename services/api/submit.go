package apisvc

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/volatiletech/null/v8"

	"github.com/sabaq/sabaq/core/attachment"
	"github.com/sabaq/sabaq/core/course"
)

// videoSource maps the draft's media source onto the backend's
// video_source marker.
func videoSource(src attachment.Source) string {
	if src == attachment.SourceLink {
		return "youtube"
	}
	return "upload"
}

type videoSubmitter struct {
	c        *Client
	courseID int
}

// VideoSubmitter registers video attachments under the given course.
func (c *Client) VideoSubmitter(courseID int) attachment.Submitter {
	return &videoSubmitter{c: c, courseID: courseID}
}

func (s *videoSubmitter) Submit(ctx context.Context, sub attachment.Submission) (string, error) {
	in := struct {
		Title        string      `json:"title"`
		VideoURL     string      `json:"video_url"`
		VideoSource  string      `json:"video_source"`
		ThumbnailURL null.String `json:"thumbnail_url,omitempty"`
	}{sub.Title, sub.MediaURL, videoSource(sub.Source), sub.PreviewURL}

	var out struct {
		Video course.Video `json:"video"`
	}
	path := fmt.Sprintf("/api/course/%d/video", s.courseID)
	if err := s.c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return "", err
	}
	return strconv.Itoa(out.Video.ID), nil
}

type pdfSubmitter struct {
	c        *Client
	courseID int
}

// PDFSubmitter registers PDF attachments under the given course.
func (c *Client) PDFSubmitter(courseID int) attachment.Submitter {
	return &pdfSubmitter{c: c, courseID: courseID}
}

func (s *pdfSubmitter) Submit(ctx context.Context, sub attachment.Submission) (string, error) {
	in := struct {
		Title  string `json:"title"`
		PDFURL string `json:"pdf_url"`
	}{sub.Title, sub.MediaURL}

	var out struct {
		PDF course.PDF `json:"pdf"`
	}
	path := fmt.Sprintf("/api/course/%d/pdf", s.courseID)
	if err := s.c.do(ctx, http.MethodPost, path, in, &out); err != nil {
		return "", err
	}
	return strconv.Itoa(out.PDF.ID), nil
}

type courseSubmitter struct {
	c           *Client
	description string
}

// CourseSubmitter registers a new course from the thumbnail-upload
// workflow: the draft title becomes the course title and the media
// reference its thumbnail.
func (c *Client) CourseSubmitter(description string) attachment.Submitter {
	return &courseSubmitter{c: c, description: description}
}

func (s *courseSubmitter) Submit(ctx context.Context, sub attachment.Submission) (string, error) {
	crs, err := s.c.CreateCourse(ctx, course.NewCourse{
		Title:        sub.Title,
		Description:  s.description,
		ThumbnailURL: null.StringFrom(sub.MediaURL),
	})
	if err != nil {
		return "", err
	}
	return strconv.Itoa(crs.ID), nil
}
