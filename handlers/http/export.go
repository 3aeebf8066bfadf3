package httpHandler

import (
	"errors"
	"fmt"
	"net/http"

	"saveenergy-server/usecases"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	useCase *usecases.CalculationUseCase
}

func NewExportHandler(useCase *usecases.CalculationUseCase) *ExportHandler {
	return &ExportHandler{
		useCase: useCase,
	}
}

// ExportCSV handles GET /calc/export/csv
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	data, err := h.useCase.ExportCSV(CurrentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="saveenergy_calcs.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ExportPDF handles GET /calc/:id/export/pdf
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	id := c.Param("id")

	data, err := h.useCase.ExportPDF(CurrentUserID(c), id)
	if err != nil {
		if errors.Is(err, usecases.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "calculation not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "export failed"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="saveenergy_calc_%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", data)
}
