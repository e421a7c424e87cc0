package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	dataapp "github.com/Aixtrade/Tally/internal/application/data"
	"github.com/Aixtrade/Tally/internal/interfaces/http/dto"
)

type DataHandler struct {
	service *dataapp.Service
}

func NewDataHandler(service *dataapp.Service) *DataHandler {
	return &DataHandler{
		service: service,
	}
}

// Aggregate counts the strings and sums the integers of a JSON array.
// POST /data
func (h *DataHandler) Aggregate(c *gin.Context) {
	var req dto.AggregateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.service.Aggregate(c.Request.Context(), &dataapp.AggregateCommand{
		Transport: dataapp.TransportHTTP,
		Data:      req.Data,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AggregateResponse{
		StringLen: result.StringCount,
		IntSum:    result.IntegerSum,
	})
}
