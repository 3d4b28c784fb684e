package gallery

import (
	"net/http"

	"artist-site/internal/api/request"
	"artist-site/internal/api/respond"
	worksapi "artist-site/internal/api/works"
	"artist-site/internal/service"

	"github.com/gin-gonic/gin"
)

type GroupDTO struct {
	Tag      worksapi.TagDTO       `json:"tag"`
	Artworks []worksapi.ArtworkDTO `json:"artworks"`
}

type Handler struct {
	gallery *service.GalleryService
}

func NewHandler(svc *service.GalleryService) *Handler {
	return &Handler{gallery: svc}
}

// ------------------------------
// GET /api/gallery?selected=<id|none>&toggle=<id>
// ------------------------------
func (h *Handler) Show(c *gin.Context) {
	var req service.GalleryRequest
	if c.Query("selected") == "none" {
		req.ShowAll = true
	} else {
		sel, err := request.OptionalUint(c, "selected")
		if err != nil {
			respond.Error(c, err)
			return
		}
		req.Selected = sel
	}
	toggle, err := request.OptionalUint(c, "toggle")
	if err != nil {
		respond.Error(c, err)
		return
	}
	req.Toggle = toggle

	view, err := h.gallery.Build(c.Request.Context(), req)
	if err != nil {
		respond.Error(c, err)
		return
	}

	groups := make([]GroupDTO, 0, len(view.Groups))
	for _, g := range view.Groups {
		groups = append(groups, GroupDTO{
			Tag:      worksapi.ToTagDTO(g.Tag, false),
			Artworks: worksapi.ToArtworkDTOs(g.Artworks),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"groups":       groups,
		"filter_tags":  worksapi.ToTagDTOs(view.Tags),
		"selected_tag": view.Selected,
	})
}
