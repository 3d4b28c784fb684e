package works

// ---------- requests

// artworkForm is bound from multipart forms; tag ids are read separately.
type artworkForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Status      string `form:"status"`
}

type tagRequest struct {
	Name        string  `json:"name" form:"name"`
	Color       string  `json:"color" form:"color"`
	Description *string `json:"description" form:"description"`
}
