package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/devlaunch/bootcamper/internal/application"
	"github.com/devlaunch/bootcamper/internal/interface/middleware"
	"github.com/devlaunch/bootcamper/pkg/query"
	"github.com/devlaunch/bootcamper/pkg/response"
	"github.com/devlaunch/bootcamper/pkg/validation"
)

type BootcampHandler struct {
	Svc    *application.BootcampService
	Logger *logrus.Logger
}

func NewBootcampHandler(svc *application.BootcampService, logger *logrus.Logger) *BootcampHandler {
	return &BootcampHandler{Svc: svc, Logger: logger}
}

type createBootcampRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description" binding:"required"`
	Address       string   `json:"address" binding:"required"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Careers       []string `json:"careers"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"jobAssistance"`
	JobGuarantee  *bool    `json:"jobGuarantee"`
	AcceptGi      *bool    `json:"acceptGi"`
}

// updateBootcampRequest is the partial-update shape: everything optional.
type updateBootcampRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Address       string   `json:"address"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Careers       []string `json:"careers"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"jobAssistance"`
	JobGuarantee  *bool    `json:"jobGuarantee"`
	AcceptGi      *bool    `json:"acceptGi"`
}

// List GET /api/v1/bootcamps
func (h *BootcampHandler) List(c *gin.Context) {
	opts, err := query.Parse(c.Request.URL.Query())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	items, total, pg, err := h.Svc.List(c.Request.Context(), opts)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.SuccessList(c, http.StatusOK, items, total, pg)
}

// Get GET /api/v1/bootcamps/:id
func (h *BootcampHandler) Get(c *gin.Context) {
	b, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Create POST /api/v1/bootcamps
func (h *BootcampHandler) Create(c *gin.Context) {
	var req createBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	actor := middleware.CurrentUser(c)
	b, err := h.Svc.Create(c.Request.Context(), actor, application.BootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

// Update PUT /api/v1/bootcamps/:id
func (h *BootcampHandler) Update(c *gin.Context) {
	var req updateBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	actor := middleware.CurrentUser(c)
	b, err := h.Svc.Update(c.Request.Context(), actor, c.Param("id"), application.BootcampInput{
		Name:          req.Name,
		Description:   req.Description,
		Address:       req.Address,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGi:      req.AcceptGi,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

// Delete DELETE /api/v1/bootcamps/:id
func (h *BootcampHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if err := h.Svc.Delete(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{})
}

// Radius GET /api/v1/bootcamps/radius/:zipcode/:distance
func (h *BootcampHandler) Radius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil || distance <= 0 {
		response.Error(c, http.StatusBadRequest, "distance must be a positive number of miles", nil)
		return
	}
	items, err := h.Svc.WithinRadius(c.Request.Context(), c.Param("zipcode"), distance)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	count := int64(len(items))
	response.SuccessList(c, http.StatusOK, items, count, query.Pagination{})
}

// UploadPhoto PUT /api/v1/bootcamps/:id/photo
func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "please upload a file", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer f.Close()

	actor := middleware.CurrentUser(c)
	stored, err := h.Svc.UploadPhoto(c.Request.Context(), actor, c.Param("id"),
		fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, stored)
}

// Search GET /api/v1/bootcamps/search?q=...
func (h *BootcampHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size := query.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.Error(c, http.StatusBadRequest, "limit must be a positive integer", nil)
			return
		}
		size = n
	}
	items, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	count := int64(len(items))
	response.SuccessList(c, http.StatusOK, items, count, query.Pagination{})
}
