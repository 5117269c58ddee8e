package handlers

import (
	"net/http"

	"ENW_BACK-END/internal/dto"
	"ENW_BACK-END/internal/services"
	"ENW_BACK-END/internal/utils"
)

const maxInt = int(^uint(0) >> 1)

// BlogHandler serves the public blog and its administration.
type BlogHandler struct {
	blog *services.BlogService
}

// NewBlogHandler creates a new BlogHandler instance
func NewBlogHandler(b *services.BlogService) *BlogHandler {
	return &BlogHandler{blog: b}
}

// ListPosts lists posts without their bodies
// @Summary List blog posts
// @Tags blog
// @Produce json
// @Param status query string false "Status filter, any disables it" default(published)
// @Param category query string false "Category slug"
// @Param tag query string false "Tag"
// @Param search query string false "Case-insensitive match on title, excerpt and tags"
// @Param limit query int false "Page size (1-50)" default(10)
// @Param offset query int false "Offset" default(0)
// @Param sort query string false "Sort field with optional - prefix" default(-publishedAt)
// @Success 200 {object} dto.PostListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/blog/posts [get]
func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) error {
	limit, err := utils.QueryIntStrict(r, "limit", services.DefaultPostLimit, 1, services.MaxPostLimit)
	if err != nil {
		return err
	}
	offset, err := utils.QueryIntStrict(r, "offset", 0, 0, maxInt)
	if err != nil {
		return err
	}

	q := r.URL.Query()
	page, err := h.blog.ListPosts(r.Context(), services.PostQuery{
		Status:   q.Get("status"),
		Category: q.Get("category"),
		Tag:      q.Get("tag"),
		Search:   q.Get("search"),
		Sort:     q.Get("sort"),
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.PostListResponse{
		Success: true,
		Data:    page.Data,
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
	})
	return nil
}

// GetPost returns a published post and counts the view
// @Summary Get a blog post
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid slug"
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/blog/posts/{slug} [get]
func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) error {
	slug, err := slugParam(r)
	if err != nil {
		return err
	}
	post, err := h.blog.GetPostBySlug(r.Context(), slug)
	if err != nil {
		return err
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.PostResponse{Success: true, Data: post})
	return nil
}

// RelatedPosts returns published posts sharing a category or tag
// @Summary Related blog posts
// @Tags blog
// @Produce json
// @Param slug path string true "Post slug"
// @Param limit query int false "Maximum results" default(3)
// @Success 200 {object} dto.RelatedPostsResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid slug"
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/blog/posts/{slug}/related [get]
func (h *BlogHandler) RelatedPosts(w http.ResponseWriter, r *http.Request) error {
	slug, err := slugParam(r)
	if err != nil {
		return err
	}
	limit, err := utils.QueryIntStrict(r, "limit", services.DefaultRelatedLimit, 1, services.MaxPostLimit)
	if err != nil {
		return err
	}

	related, err := h.blog.RelatedPosts(r.Context(), slug, limit)
	if err != nil {
		return err
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.RelatedPostsResponse{Success: true, Data: related})
	return nil
}

// Categories lists the active categories with post counts
// @Summary Blog categories
// @Tags blog
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Router /api/blog/categories [get]
func (h *BlogHandler) Categories(w http.ResponseWriter, r *http.Request) error {
	cats, err := h.blog.Categories(r.Context())
	if err != nil {
		return err
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.CategoriesResponse{Success: true, Data: cats, Total: len(cats)})
	return nil
}

// Tags lists the most used tags
// @Summary Blog tags
// @Tags blog
// @Produce json
// @Success 200 {object} dto.TagsResponse
// @Router /api/blog/tags [get]
func (h *BlogHandler) Tags(w http.ResponseWriter, r *http.Request) error {
	tags, err := h.blog.Tags(r.Context())
	if err != nil {
		return err
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.TagsResponse{Success: true, Data: tags, Total: len(tags)})
	return nil
}

// CreatePost publishes or drafts a post
// @Summary Create a blog post
// @Tags blog-admin
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Post"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/blog/posts [post]
func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) error {
	var req dto.CreatePostRequest
	if err := bind(w, r, &req); err != nil {
		return err
	}

	post, err := h.blog.CreatePost(r.Context(), &req)
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.PostResponse{
		Success: true,
		Message: "Post created successfully",
		Data:    post,
	})
	return nil
}

// UpdatePost patches a post
// @Summary Update a blog post
// @Tags blog-admin
// @Accept json
// @Produce json
// @Param id path string true "Post id"
// @Param request body dto.UpdatePostRequest true "Fields to change"
// @Success 200 {object} dto.PostResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/blog/posts/{id} [patch]
// @Router /api/blog/posts/{id} [put]
func (h *BlogHandler) UpdatePost(w http.ResponseWriter, r *http.Request) error {
	var req dto.UpdatePostRequest
	if err := bind(w, r, &req); err != nil {
		return err
	}

	post, err := h.blog.UpdatePost(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusOK, dto.PostResponse{
		Success: true,
		Message: "Post updated successfully",
		Data:    post,
	})
	return nil
}

// DeletePost removes a post
// @Summary Delete a blog post
// @Tags blog-admin
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/blog/posts/{id} [delete]
func (h *BlogHandler) DeletePost(w http.ResponseWriter, r *http.Request) error {
	if err := h.blog.DeletePost(r.Context(), r.PathValue("id")); err != nil {
		return err
	}
	utils.WriteJSONResponse(w, http.StatusOK, dto.SuccessResponse{Success: true, Message: "Post deleted successfully"})
	return nil
}

// CreateCategory adds a blog category
// @Summary Create a blog category
// @Tags blog-admin
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category"
// @Success 201 {object} dto.SuccessResponse{data=models.BlogCategory}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Name already exists"
// @Security ApiKeyAuth
// @Router /api/blog/categories [post]
func (h *BlogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) error {
	var req dto.CreateCategoryRequest
	if err := bind(w, r, &req); err != nil {
		return err
	}

	cat, err := h.blog.CreateCategory(r.Context(), &req)
	if err != nil {
		return err
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.SuccessResponse{
		Success: true,
		Message: "Category created successfully",
		Data:    cat,
	})
	return nil
}
