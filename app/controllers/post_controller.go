package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"inkpress/app/models"
	"inkpress/app/repositories"
	"inkpress/app/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	posts *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(posts *services.PostService) *PostController {
	return &PostController{posts: posts}
}

// Index handles listing posts with optional published/tag/search filters
// and pagination.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}
	pageSize := 10
	if ps, err := strconv.Atoi(q.Get("pageSize")); err == nil && ps > 0 {
		pageSize = ps
	}

	filter := repositories.ListFilter{
		Tag:    q.Get("tag"),
		Search: q.Get("search"),
	}
	switch q.Get("published") {
	case "true":
		published := true
		filter.Published = &published
	case "false":
		published := false
		filter.Published = &published
	}

	result, err := pc.posts.ListPosts(filter, page, pageSize)
	if err != nil {
		sendDomainError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, result)
}

// Show handles fetching a single post by id or slug
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	post, err := pc.posts.GetPost(mux.Vars(r)["key"])
	if err != nil {
		sendDomainError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{"post": post})
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	post, err := pc.posts.CreatePost(&req)
	if err != nil {
		sendDomainError(w, err)
		return
	}
	sendJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Post created",
		"post":    post,
	})
}

// Update handles partially updating an existing post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	var patch models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		sendError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	post, err := pc.posts.UpdatePost(mux.Vars(r)["key"], &patch)
	if err != nil {
		sendDomainError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Post updated",
		"post":    post,
	})
}

// Delete handles removing a post permanently
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := pc.posts.DeletePost(mux.Vars(r)["key"]); err != nil {
		sendDomainError(w, err)
		return
	}
	sendJSON(w, http.StatusOK, map[string]string{"message": "Post deleted"})
}
