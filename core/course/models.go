package course

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/sabaq/sabaq/core"
)

type Course struct {
	ID           int         `json:"id"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	ThumbnailURL null.String `json:"thumbnail_url"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type Video struct {
	ID           int         `json:"id"`
	CourseID     int         `json:"course_id"`
	Title        string      `json:"title"`
	VideoURL     string      `json:"video_url"`
	VideoSource  string      `json:"video_source"`
	ThumbnailURL null.String `json:"thumbnail_url"`
	Comments     []Comment   `json:"comments"`
	CreatedAt    time.Time   `json:"created_at"`
}

type PDF struct {
	ID       int    `json:"id"`
	CourseID int    `json:"course_id"`
	Title    string `json:"title"`
	PDFURL   string `json:"pdf_url"`
}

type Comment struct {
	ID        int       `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type AccessGrant struct {
	UserID       int       `json:"user_id"`
	CourseID     int       `json:"course_id"`
	DurationDays int       `json:"duration_days"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title        string      `json:"title" validate:"required"`
	Description  string      `json:"description"`
	ThumbnailURL null.String `json:"thumbnail_url"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	return core.Validate.Struct(nc)
}

// UpdateCourse defines what information may be provided to modify an existing Course.
type UpdateCourse struct {
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	ThumbnailURL null.String `json:"thumbnail_url"`
}

func (uc *UpdateCourse) Validate(orig Course) error {
	if title := core.CleanString(uc.Title); title != "" {
		uc.Title = title
	} else {
		uc.Title = orig.Title
	}
	if desc := core.CleanString(uc.Description); desc != "" {
		uc.Description = desc
	} else {
		uc.Description = orig.Description
	}
	if !uc.ThumbnailURL.Valid {
		uc.ThumbnailURL = orig.ThumbnailURL
	}
	return core.Validate.Struct(uc)
}

// NewComment contains a comment to post on a video.
type NewComment struct {
	Text string `json:"text" validate:"required"`
}

func (nc *NewComment) Validate() error {
	nc.Text = core.CleanString(nc.Text)
	return core.Validate.Struct(nc)
}

// NewGrant opens a course to a user for a limited duration.
type NewGrant struct {
	UserID       int `json:"user_id" validate:"required"`
	CourseID     int `json:"course_id" validate:"required"`
	DurationDays int `json:"duration_days" validate:"required,gt=0"`
}

func (ng *NewGrant) Validate() error {
	return core.Validate.Struct(ng)
}
