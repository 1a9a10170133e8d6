package handlers

import (
	"errors"
	"net/http"

	"plant_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// Common response/status constants to avoid magic strings and typos.
const (
	statusOK = "ok"

	errNotFound  = "resource not found"
	errInternal  = "internal error"
	errBadSort   = "invalid sort key"
	errBadExport = "failed to build workbook"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError maps service errors onto HTTP responses. Missing resources and
// bad queries are expected outcomes and are not logged as errors.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	var nf *service.NotFoundError
	switch {
	case errors.As(err, &nf):
		c.JSON(http.StatusNotFound, gin.H{"error": errNotFound, "level": nf.Level, "id": nf.ID})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": errNotFound})
	case errors.Is(err, service.ErrInvalidSortKey):
		c.JSON(http.StatusBadRequest, gin.H{"error": errBadSort, "allowed": service.SortKeys()})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err, kv...)
	}
}

// parseViewQuery reads ?search= and ?sort= from the request.
func parseViewQuery(c *gin.Context) (service.ViewQuery, error) {
	key, err := service.ParseSortKey(c.Query("sort"))
	if err != nil {
		return service.ViewQuery{}, err
	}
	return service.ViewQuery{Search: c.Query("search"), Sort: key}, nil
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Fixture struct {
		Sites       int `json:"sites" example:"2"`
		Departments int `json:"departments" example:"5"`
		Machines    int `json:"machines" example:"18"`
		Alerts      int `json:"alerts" example:"7"`
	} `json:"fixture"`
}

// @Summary      Health check
// @Description  Reports liveness and the size of the loaded fixture
// @Tags         system
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	var resp HealthResponse
	resp.Status = statusOK
	if h.services != nil && h.services.Catalog != nil {
		st := h.services.Stats()
		resp.Fixture.Sites = st.Sites
		resp.Fixture.Departments = st.Departments
		resp.Fixture.Machines = st.Machines
		resp.Fixture.Alerts = st.Alerts
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      List sites
// @Description  Every site with its location and machine rollup
// @Tags         sites
// @Produce      json
// @Success      200  {array}   service.SiteCard
// @Router       /api/v1/sites [get]
func (h *Handler) listSites(c *gin.Context) {
	c.JSON(http.StatusOK, h.services.ListSites())
}

// @Summary      Get site
// @Description  Site rollup and its departments
// @Tags         sites
// @Produce      json
// @Param        siteID  path      string  true  "Site id"
// @Success      200     {object}  service.SitePage
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/sites/{siteID} [get]
func (h *Handler) getSite(c *gin.Context) {
	siteID := c.Param("siteID")
	page, err := h.services.GetSite(siteID)
	if err != nil {
		h.respondError(c, "get_site_failed", err, "site_id", siteID)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary      Get department
// @Description  Department rollup over all machines and the filtered, sorted machine list
// @Tags         sites
// @Produce      json
// @Param        siteID  path      string  true   "Site id"
// @Param        depID   path      string  true   "Department id"
// @Param        search  query     string  false  "Case-insensitive substring of the machine name"
// @Param        sort    query     string  false  "name | status | uptime | production | energy"  default(name)
// @Success      200     {object}  service.DepartmentPage
// @Failure      400     {object}  map[string]interface{}
// @Failure      404     {object}  map[string]string
// @Router       /api/v1/sites/{siteID}/departments/{depID} [get]
func (h *Handler) getDepartment(c *gin.Context) {
	q, err := parseViewQuery(c)
	if err != nil {
		h.respondError(c, "parse_view_query_failed", err)
		return
	}
	siteID, depID := c.Param("siteID"), c.Param("depID")
	page, err := h.services.GetDepartment(siteID, depID, q)
	if err != nil {
		h.respondError(c, "get_department_failed", err, "site_id", siteID, "department_id", depID)
		return
	}
	c.JSON(http.StatusOK, page)
}

// @Summary      Get machine
// @Description  Machine readings, charts, alerts and maintenance
// @Tags         sites
// @Produce      json
// @Param        siteID     path      string  true  "Site id"
// @Param        depID      path      string  true  "Department id"
// @Param        machineID  path      string  true  "Machine id"
// @Success      200        {object}  service.MachinePage
// @Failure      404        {object}  map[string]string
// @Router       /api/v1/sites/{siteID}/departments/{depID}/machines/{machineID} [get]
func (h *Handler) getMachine(c *gin.Context) {
	siteID, depID, machineID := c.Param("siteID"), c.Param("depID"), c.Param("machineID")
	page, err := h.services.GetMachine(siteID, depID, machineID)
	if err != nil {
		h.respondError(c, "get_machine_failed", err,
			"site_id", siteID, "department_id", depID, "machine_id", machineID)
		return
	}
	c.JSON(http.StatusOK, page)
}
