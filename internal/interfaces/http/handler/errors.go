package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aixtrade/Tally/internal/interfaces/http/dto"
	apperrors "github.com/Aixtrade/Tally/pkg/errors"
)

// respondError writes the status and code that match err.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidNumericElement):
		resp := dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_NUMERIC_ELEMENT",
		}
		if elemErr, ok := apperrors.AsElementError(err); ok {
			resp.Details = dto.ElementDetails{Index: elemErr.Index, Value: elemErr.Value}
		}
		c.JSON(http.StatusUnprocessableEntity, resp)

	case errors.Is(err, apperrors.ErrIntegerOverflow):
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INTEGER_OVERFLOW",
		})

	case errors.Is(err, apperrors.ErrInvalidRequest),
		errors.Is(err, apperrors.ErrInvalidPayload):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_REQUEST",
		})

	case errors.Is(err, apperrors.ErrInvalidJobID):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_JOB_ID",
		})

	case errors.Is(err, apperrors.ErrInvalidQueue):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_QUEUE",
		})

	case errors.Is(err, apperrors.ErrJobNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "JOB_NOT_FOUND",
		})

	case errors.Is(err, apperrors.ErrJobAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: err.Error(),
			Code:  "JOB_ALREADY_EXISTS",
		})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "internal server error",
			Code:  "INTERNAL_ERROR",
		})
	}
}

func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
			Error:   "request body too large",
			Code:    "PAYLOAD_TOO_LARGE",
			Details: gin.H{"limit": tooLarge.Limit},
		})
		return
	}
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error: err.Error(),
		Code:  "INVALID_REQUEST",
	})
}
