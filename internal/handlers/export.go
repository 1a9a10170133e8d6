package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"plant_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// @Summary      Export department
// @Description  The department view as an XLSX workbook (Machines and Summary sheets)
// @Tags         sites
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        siteID  path      string  true   "Site id"
// @Param        depID   path      string  true   "Department id"
// @Param        search  query     string  false  "Case-insensitive substring of the machine name"
// @Param        sort    query     string  false  "name | status | uptime | production | energy"  default(name)
// @Success      200     {file}    file
// @Failure      400     {object}  map[string]interface{}
// @Failure      404     {object}  map[string]string
// @Failure      500     {object}  map[string]string
// @Router       /api/v1/sites/{siteID}/departments/{depID}/export [get]
func (h *Handler) exportDepartment(c *gin.Context) {
	q, err := parseViewQuery(c)
	if err != nil {
		h.respondError(c, "parse_view_query_failed", err)
		return
	}
	siteID, depID := c.Param("siteID"), c.Param("depID")
	data, filename, err := h.services.DepartmentWorkbook(siteID, depID, q)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.respondError(c, "export_department_failed", err)
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errBadExport, "export_department_failed", err,
			"site_id", siteID, "department_id", depID)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
