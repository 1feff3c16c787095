package downloads

import (
	"net/http"

	"pago_backend/platform/httpkit"
	"pago_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// Handler serves public and admin download endpoints.
type Handler struct {
	service  *Service
	validate *validator.Validator
}

// NewHandler creates a Handler.
func NewHandler(service *Service, validate *validator.Validator) *Handler {
	return &Handler{service: service, validate: validate}
}

// ListPublished handles GET /api/v1/downloads.
func (h *Handler) ListPublished(c *gin.Context) {
	items, err := h.service.ListPublished(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": items})
}

// QR handles GET /api/v1/downloads/:id/qr, answering a PNG QR code
// that points at the public share link.
func (h *Handler) QR(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	download, err := h.service.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	if !download.Published {
		httpkit.Error(c, http.StatusNotFound, "material não encontrado", nil)
		return
	}

	png, err := qrcode.Encode(h.service.ShareLink(download.ID), qrcode.Medium, 256)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "não foi possível gerar o QR code", nil)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

type presignRequest struct {
	Filename string `json:"filename" validate:"required,max=255"`
	MimeType string `json:"mimeType" validate:"required,max=255"`
	Size     int64  `json:"size" validate:"required"`
}

// Presign handles POST /api/v1/admin/downloads/presign.
func (h *Handler) Presign(c *gin.Context) {
	var req presignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "requisição inválida", nil)
		return
	}
	if violation := validator.FirstViolation(h.validate.Struct(req)); violation != nil {
		httpkit.Error(c, http.StatusBadRequest, violation.Reason, violation)
		return
	}

	result, err := h.service.Presign(c.Request.Context(), req.Filename, req.MimeType, req.Size)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"fileKey": result.FileKey, "uploadUrl": result.UploadURL})
}

type confirmRequest struct {
	FileKey     string `json:"fileKey" validate:"required,max=512"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

// Confirm handles POST /api/v1/admin/downloads.
func (h *Handler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "requisição inválida", nil)
		return
	}
	if violation := validator.FirstViolation(h.validate.Struct(req)); violation != nil {
		httpkit.Error(c, http.StatusBadRequest, violation.Reason, violation)
		return
	}

	download, err := h.service.Confirm(c.Request.Context(), req.FileKey, req.Name, req.Description)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, download)
}

// DirectUpload handles POST /api/v1/admin/downloads/upload, a
// multipart fallback for environments without presigned URL support.
func (h *Handler) DirectUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "arquivo ausente", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "não foi possível ler o arquivo", nil)
		return
	}
	defer file.Close()

	download, svcErr := h.service.DirectUpload(
		c.Request.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
		c.PostForm("name"),
		c.PostForm("description"),
	)
	if httpkit.HandleError(c, svcErr) {
		return
	}
	httpkit.Created(c, download)
}

type updateRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
	Published   bool   `json:"published"`
}

// Update handles PATCH /api/v1/admin/downloads/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "requisição inválida", nil)
		return
	}
	if violation := validator.FirstViolation(h.validate.Struct(req)); violation != nil {
		httpkit.Error(c, http.StatusBadRequest, violation.Reason, violation)
		return
	}

	download, err := h.service.Update(c.Request.Context(), id, req.Name, req.Description, req.Published)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, download)
}

// ListAll handles GET /api/v1/admin/downloads.
func (h *Handler) ListAll(c *gin.Context) {
	items, err := h.service.ListAll(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": items})
}

// Delete handles DELETE /api/v1/admin/downloads/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}
	if httpkit.HandleError(c, h.service.Delete(c.Request.Context(), id)) {
		return
	}
	httpkit.NoContent(c)
}

func (h *Handler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "id inválido", nil)
		return uuid.Nil, false
	}
	return id, true
}
