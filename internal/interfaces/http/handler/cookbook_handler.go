package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	cookbookapp "github.com/Aixtrade/Tally/internal/application/cookbook"
	"github.com/Aixtrade/Tally/internal/interfaces/http/dto"
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
)

// CookbookHandler serves the recipe endpoints. Every failure is reported
// as 400 with a code naming the cause.
type CookbookHandler struct {
	service *cookbookapp.Service
}

func NewCookbookHandler(service *cookbookapp.Service) *CookbookHandler {
	return &CookbookHandler{
		service: service,
	}
}

// POST /parse
func (h *CookbookHandler) Parse(c *gin.Context) {
	var req dto.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	name, err := h.service.ParseName(c.Request.Context(), req.Input)
	if err != nil {
		cookbookError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ParseResponse{Msg: name})
}

// POST /entry
func (h *CookbookHandler) CreateEntry(c *gin.Context) {
	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entry, err := req.ToEntry()
	if err != nil {
		cookbookError(c, err)
		return
	}

	if err := h.service.CreateEntry(c.Request.Context(), entry); err != nil {
		cookbookError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// GET /summary?name=
func (h *CookbookHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.Query("name"))
	if err != nil {
		cookbookError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SummaryResponse{
		Name:        summary.Name,
		CookTime:    summary.CookTime,
		Ingredients: summary.Ingredients,
	})
}

func cookbookError(c *gin.Context, err error) {
	code := "COOKBOOK_ERROR"
	switch {
	case errors.Is(err, apperrors.ErrInvalidRecipeName):
		code = "INVALID_RECIPE_NAME"
	case errors.Is(err, apperrors.ErrInvalidEntry):
		code = "INVALID_ENTRY"
	case errors.Is(err, apperrors.ErrEntryExists):
		code = "ENTRY_EXISTS"
	case errors.Is(err, apperrors.ErrEntryNotFound):
		code = "ENTRY_NOT_FOUND"
	case errors.Is(err, apperrors.ErrNotRecipe):
		code = "NOT_A_RECIPE"
	case errors.Is(err, apperrors.ErrCyclicRecipe):
		code = "CYCLIC_RECIPE"
	case errors.Is(err, apperrors.ErrQuantityOverflow):
		code = "QUANTITY_OVERFLOW"
	}

	resp := dto.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	}
	if valErr, ok := apperrors.AsValidationError(err); ok {
		resp.Details = dto.FieldDetails{Field: valErr.Field, Message: valErr.Message}
	}
	c.JSON(http.StatusBadRequest, resp)
}
