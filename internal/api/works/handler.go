package works

import (
	"net/http"

	"artist-site/internal/api/request"
	"artist-site/internal/api/respond"
	"artist-site/internal/apperr"
	"artist-site/internal/domain/works"
	"artist-site/internal/service"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	artworks *service.ArtworkService
	tags     *service.TagService
}

func NewHandler(artworks *service.ArtworkService, tags *service.TagService) *Handler {
	return &Handler{artworks: artworks, tags: tags}
}

// ------------------------------
// GET /api/artworks (+ /for-sale, /sold)
// ------------------------------
func (h *Handler) ListArtworks(c *gin.Context) {
	h.listArtworks(c, nil)
}

func (h *Handler) ListForSale(c *gin.Context) {
	st := works.ArtworkForSale
	h.listArtworks(c, &st)
}

func (h *Handler) ListSold(c *gin.Context) {
	st := works.ArtworkSold
	h.listArtworks(c, &st)
}

func (h *Handler) listArtworks(c *gin.Context, status *works.ArtworkStatus) {
	if status == nil {
		if q := c.Query("status"); q != "" {
			st, err := works.ParseArtworkStatus(q)
			if err != nil {
				respond.Error(c, apperr.InvalidField("status", "must be one of: for_sale, sold"))
				return
			}
			status = &st
		}
	}

	list, err := h.artworks.List(c.Request.Context(), status)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": ToArtworkDTOs(list)})
}

// ------------------------------
// GET /api/artworks/:id
// ------------------------------
func (h *Handler) GetArtwork(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	a, err := h.artworks.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ToArtworkDTO(*a))
}

// ------------------------------
// POST /admin/artworks (multipart)
// ------------------------------
func (h *Handler) CreateArtwork(c *gin.Context) {
	in, image, ok := bindArtwork(c)
	if !ok {
		return
	}
	a, err := h.artworks.Create(c.Request.Context(), in, image)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Artwork created successfully", "artwork": ToArtworkDTO(*a)})
}

// ------------------------------
// PUT /admin/artworks/:id (multipart, image optional)
// ------------------------------
func (h *Handler) UpdateArtwork(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	in, image, ok := bindArtwork(c)
	if !ok {
		return
	}
	a, err := h.artworks.Update(c.Request.Context(), id, in, image)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Artwork updated successfully", "artwork": ToArtworkDTO(*a)})
}

// ------------------------------
// DELETE /admin/artworks/:id
// ------------------------------
func (h *Handler) DeleteArtwork(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := h.artworks.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Message(c, http.StatusOK, "Artwork deleted successfully")
}

func bindArtwork(c *gin.Context) (service.ArtworkInput, *service.Upload, bool) {
	var form artworkForm
	if err := c.ShouldBind(&form); err != nil {
		respond.BadRequest(c, err)
		return service.ArtworkInput{}, nil, false
	}
	tagIDs, err := request.UintList(c, "tag_ids")
	if err != nil {
		respond.Error(c, err)
		return service.ArtworkInput{}, nil, false
	}
	image, err := request.Image(c, "image")
	if err != nil {
		respond.Error(c, err)
		return service.ArtworkInput{}, nil, false
	}
	return service.ArtworkInput{
		Title:       form.Title,
		Description: form.Description,
		Status:      form.Status,
		TagIDs:      tagIDs,
	}, image, true
}

// ------------------------------
// Tags
// ------------------------------

// GET /api/tags, /admin/tags
func (h *Handler) ListTags(c *gin.Context) {
	list, err := h.tags.List(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": ToTagDTOs(list)})
}

// GET /admin/tags/:id
func (h *Handler) GetTag(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	t, err := h.tags.Get(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, ToTagDTO(*t, true))
}

// POST /admin/tags
func (h *Handler) CreateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	t, err := h.tags.Create(c.Request.Context(), service.TagInput(req))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Tag created successfully", "tag": ToTagDTO(*t, true)})
}

// PUT /admin/tags/:id
func (h *Handler) UpdateTag(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	var req tagRequest
	if err := c.ShouldBind(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	t, err := h.tags.Update(c.Request.Context(), id, service.TagInput(req))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag updated successfully", "tag": ToTagDTO(*t, true)})
}

// DELETE /admin/tags/:id
func (h *Handler) DeleteTag(c *gin.Context) {
	id, err := request.ID(c)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := h.tags.Delete(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}
	respond.Message(c, http.StatusOK, "Tag deleted successfully")
}
