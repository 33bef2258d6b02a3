package http

import (
	"testing"

	"github.com/NeuralTrust/BotTracker/pkg/domain/blog"
	blogMocks "github.com/NeuralTrust/BotTracker/pkg/domain/blog/mocks"
	domainErrors "github.com/NeuralTrust/BotTracker/pkg/domain/errors"
	"github.com/NeuralTrust/BotTracker/pkg/handlers/http/request"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetBlogHandler_HidesDrafts(t *testing.T) {
	repo := new(blogMocks.MockRepository)
	repo.On("GetBySlug", mock.Anything, "live").Return(&blog.Post{Slug: "live", Published: true}, nil)
	repo.On("GetBySlug", mock.Anything, "draft").Return(&blog.Post{Slug: "draft"}, nil)
	repo.On("GetBySlug", mock.Anything, "missing").Return(nil, domainErrors.ErrEntityNotFound)

	app := newTestApp(fiber.MethodGet, "/blogs/:slug", NewGetBlogHandler(logrus.New(), repo), nil)

	status, _ := doRequest(t, app, fiber.MethodGet, "/blogs/live", nil)
	assert.Equal(t, fiber.StatusOK, status)
	status, _ = doRequest(t, app, fiber.MethodGet, "/blogs/draft", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = doRequest(t, app, fiber.MethodGet, "/blogs/missing", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestListBlogsHandler_PublishedOnly(t *testing.T) {
	repo := new(blogMocks.MockRepository)
	repo.On("List", mock.Anything, true).Return([]blog.Post{{Slug: "a", Published: true}}, nil)

	app := newTestApp(fiber.MethodGet, "/blogs", NewListBlogsHandler(logrus.New(), repo), nil)
	status, body := doRequest(t, app, fiber.MethodGet, "/blogs", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"slug":"a"`)
	repo.AssertExpectations(t)
}

func TestCreateBlogHandler(t *testing.T) {
	author := uuid.New()
	repo := new(blogMocks.MockRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *blog.Post) bool {
		return p.Slug == "blocking-ai-crawlers" && p.AuthorID == author
	})).Return(nil).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(blog.ErrSlugTaken)

	app := newTestApp(fiber.MethodPost, "/admin/blogs", NewCreateBlogHandler(logrus.New(), repo, nil), &author)
	body := request.BlogPostRequest{Title: "Blocking AI crawlers", Content: "...", Tags: []string{"bots"}, Published: true}

	status, raw := doRequest(t, app, fiber.MethodPost, "/admin/blogs", body)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "blocking-ai-crawlers", decode(t, raw)["slug"])

	status, _ = doRequest(t, app, fiber.MethodPost, "/admin/blogs", body)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestUpdateBlogHandler(t *testing.T) {
	author := uuid.New()
	post, err := blog.New(author, "Old title", "body", "", nil, false)
	assert.NoError(t, err)
	repo := new(blogMocks.MockRepository)
	repo.On("GetByID", mock.Anything, post.ID).Return(post, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *blog.Post) bool {
		return p.Slug == "new-title" && p.Published
	})).Return(nil)

	app := newTestApp(fiber.MethodPut, "/admin/blogs/:post_id", NewUpdateBlogHandler(logrus.New(), repo, nil), &author)
	status, raw := doRequest(t, app, fiber.MethodPut, "/admin/blogs/"+post.ID.String(),
		request.BlogPostRequest{Title: "New title", Content: "body", Published: true})

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "new-title", decode(t, raw)["slug"])
	repo.AssertExpectations(t)
}

func TestDeleteBlogHandler(t *testing.T) {
	postID := uuid.New()
	repo := new(blogMocks.MockRepository)
	repo.On("Delete", mock.Anything, postID).Return(nil)

	app := newTestApp(fiber.MethodDelete, "/admin/blogs/:post_id", NewDeleteBlogHandler(logrus.New(), repo, nil), nil)
	status, _ := doRequest(t, app, fiber.MethodDelete, "/admin/blogs/"+postID.String(), nil)
	assert.Equal(t, fiber.StatusNoContent, status)
}
