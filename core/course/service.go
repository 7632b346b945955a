package course

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("course not found")

type (
	// Repository is the remote course API; there is no local storage.
	Repository interface {
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id int) (Course, error)
		CreateCourse(ctx context.Context, nc NewCourse) (Course, error)
		UpdateCourse(ctx context.Context, id int, uc UpdateCourse) (Course, error)
		DeleteCourse(ctx context.Context, id int) error

		QueryCourseVideos(ctx context.Context, courseID int) ([]Video, error)
		GetVideo(ctx context.Context, courseID, videoID int) (Video, error)
		DeleteVideo(ctx context.Context, courseID, videoID int) error
		CreateComment(ctx context.Context, courseID, videoID int, nc NewComment) (Comment, error)

		GrantAccess(ctx context.Context, ng NewGrant) (AccessGrant, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

func (svc *Service) GetByID(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	if err := nc.Validate(); err != nil {
		return Course{}, err
	}
	return svc.repo.CreateCourse(ctx, nc)
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateCourse) (Course, error) {
	orig, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}
	if err := uc.Validate(orig); err != nil {
		return Course{}, err
	}
	return svc.repo.UpdateCourse(ctx, id, uc)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteCourse(ctx, id)
}

func (svc *Service) QueryVideos(ctx context.Context, courseID int) ([]Video, error) {
	return svc.repo.QueryCourseVideos(ctx, courseID)
}

func (svc *Service) GetVideo(ctx context.Context, courseID, videoID int) (Video, error) {
	return svc.repo.GetVideo(ctx, courseID, videoID)
}

func (svc *Service) DeleteVideo(ctx context.Context, courseID, videoID int) error {
	return svc.repo.DeleteVideo(ctx, courseID, videoID)
}

func (svc *Service) Comment(ctx context.Context, courseID, videoID int, nc NewComment) (Comment, error) {
	if err := nc.Validate(); err != nil {
		return Comment{}, err
	}
	return svc.repo.CreateComment(ctx, courseID, videoID, nc)
}

func (svc *Service) GrantAccess(ctx context.Context, ng NewGrant) (AccessGrant, error) {
	if err := ng.Validate(); err != nil {
		return AccessGrant{}, err
	}
	return svc.repo.GrantAccess(ctx, ng)
}
