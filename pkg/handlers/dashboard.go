package handlers

import (
	"net/http"

	"croniq/pkg/dashboard"
	"croniq/pkg/models"
	"croniq/templates"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
)

// Dashboard contains the page and tab handlers of the dashboard server
type Dashboard struct {
	controller *dashboard.Controller
	formatter  *templates.Formatter
}

// NewDashboard creates the dashboard handlers
func NewDashboard(controller *dashboard.Controller, formatter *templates.Formatter) *Dashboard {
	return &Dashboard{
		controller: controller,
		formatter:  formatter,
	}
}

// Index renders the full page for the default tab
func (d *Dashboard) Index(c *gin.Context) {
	view := d.controller.Initialize(c.Request.Context())
	render(c, http.StatusOK, templates.Page(d.formatter, view))
}

// Tab switches to the named tab and renders its fragment
func (d *Dashboard) Tab(c *gin.Context) {
	tab, err := models.ParseTab(c.Param("name"))
	if err != nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: err.Error()})
		return
	}

	view := d.controller.SwitchTab(c.Request.Context(), tab)
	render(c, http.StatusOK, templates.Fragment(d.formatter, view))
}

// Health reports that the server is up
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// render renders a templ component
func render(c *gin.Context, status int, component templ.Component) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := component.Render(c.Request.Context(), c.Writer); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Template rendering error")
	}
}
