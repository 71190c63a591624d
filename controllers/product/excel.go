package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/saqibam92/BlashBerry-nextjs/controllers/response"
	"github.com/saqibam92/BlashBerry-nextjs/models"
	"github.com/saqibam92/BlashBerry-nextjs/services"
)

// ImportProductsFromExcel reads the multipart "file" field.
func ImportProductsFromExcel(sheet *services.SpreadsheetService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fh, err := c.FormFile("file")
		if err != nil {
			response.Error(c, models.NewValidationError("Excel file is required", models.FieldError{Field: "file", Message: "required"}))
			return
		}
		file, err := fh.Open()
		if err != nil {
			response.Error(c, err)
			return
		}
		defer file.Close()

		report, err := sheet.Import(c.Request.Context(), file, fh.Size)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, response.Envelope{Success: true, Message: "Import completed", Data: report})
	}
}
