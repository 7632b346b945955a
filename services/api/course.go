package apisvc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sabaq/sabaq/core/course"
)

var _ course.Repository = (*Client)(nil)

func (c *Client) QueryAllCourses(ctx context.Context) ([]course.Course, error) {
	var out struct {
		Courses []course.Course `json:"courses"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/courses", nil, &out); err != nil {
		return nil, err
	}
	return out.Courses, nil
}

func (c *Client) GetCourseByID(ctx context.Context, id int) (course.Course, error) {
	var out struct {
		Course course.Course `json:"course"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/course/%d", id), nil, &out); err != nil {
		return course.Course{}, err
	}
	return out.Course, nil
}

func (c *Client) CreateCourse(ctx context.Context, nc course.NewCourse) (course.Course, error) {
	var out struct {
		Course course.Course `json:"course"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/course", nc, &out); err != nil {
		return course.Course{}, err
	}
	return out.Course, nil
}

func (c *Client) UpdateCourse(ctx context.Context, id int, uc course.UpdateCourse) (course.Course, error) {
	var out struct {
		Course course.Course `json:"course"`
	}
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/course/%d", id), uc, &out); err != nil {
		return course.Course{}, err
	}
	return out.Course, nil
}

func (c *Client) DeleteCourse(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/course/%d", id), nil, nil)
}

func (c *Client) QueryCourseVideos(ctx context.Context, courseID int) ([]course.Video, error) {
	var out struct {
		Videos []course.Video `json:"videos"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/course/%d/videos", courseID), nil, &out); err != nil {
		return nil, err
	}
	return out.Videos, nil
}

func (c *Client) GetVideo(ctx context.Context, courseID, videoID int) (course.Video, error) {
	var out struct {
		Video course.Video `json:"video"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/course/%d/video/%d", courseID, videoID), nil, &out); err != nil {
		return course.Video{}, err
	}
	return out.Video, nil
}

func (c *Client) DeleteVideo(ctx context.Context, courseID, videoID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/course/%d/video/%d", courseID, videoID), nil, nil)
}

func (c *Client) CreateComment(ctx context.Context, courseID, videoID int, nc course.NewComment) (course.Comment, error) {
	var out struct {
		Comment course.Comment `json:"comment"`
	}
	path := fmt.Sprintf("/api/course/%d/video/%d/comment", courseID, videoID)
	if err := c.do(ctx, http.MethodPost, path, nc, &out); err != nil {
		return course.Comment{}, err
	}
	return out.Comment, nil
}

func (c *Client) GrantAccess(ctx context.Context, ng course.NewGrant) (course.AccessGrant, error) {
	var out struct {
		Grant course.AccessGrant `json:"grant"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/course/grant-access", ng, &out); err != nil {
		return course.AccessGrant{}, err
	}
	return out.Grant, nil
}
