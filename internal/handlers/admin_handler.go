package handlers

import (
	"context"
	"net/http"

	"hexaboard-service/internal/repository"
	"hexaboard-service/internal/service"
	"hexaboard-service/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler covers fresher provisioning. All routes are admin only.
type AdminHandler struct {
	Provision *service.ProvisionService
	Users     *repository.UserRepository
}

func NewAdminHandler(provision *service.ProvisionService, users *repository.UserRepository) *AdminHandler {
	return &AdminHandler{Provision: provision, Users: users}
}

func (h *AdminHandler) ListFreshers(c *gin.Context) {
	freshers, err := h.Users.ListFreshers(context.Background())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to list freshers", err)
		return
	}
	utils.SuccessResponse(c, "Freshers", freshers)
}

// ProvisionOne creates a single fresher account.
func (h *AdminHandler) ProvisionOne(c *gin.Context) {
	var input service.ProvisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid provisioning payload")
		return
	}
	report := h.Provision.ProvisionOne(context.Background(), input)
	if report.Status != "created" {
		c.JSON(http.StatusBadRequest, utils.APIResponse{
			Success: false,
			Message: "Provisioning failed",
			Error:   report.Error,
			Data:    report,
		})
		return
	}
	utils.CreatedResponse(c, "Fresher provisioned", report)
}

// ProvisionBulk accepts a JSON array of provisioning rows and reports the
// outcome of each row; failed rows never abort the batch.
func (h *AdminHandler) ProvisionBulk(c *gin.Context) {
	var inputs []service.ProvisionInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		utils.BadRequestResponse(c, "Expected a JSON array of provisioning rows")
		return
	}
	if len(inputs) == 0 {
		utils.BadRequestResponse(c, "No rows to provision")
		return
	}
	reports := h.Provision.ProvisionMany(context.Background(), inputs)
	utils.SuccessResponse(c, "Bulk provisioning finished", summarizeReports(reports))
}

// ProvisionCSV accepts a multipart CSV upload with name/email columns and
// optional department/start_date columns.
func (h *AdminHandler) ProvisionCSV(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "A CSV file upload named 'file' is required")
		return
	}
	defer file.Close()

	inputs, err := service.ParseProvisionCSV(file)
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}
	if len(inputs) == 0 {
		utils.BadRequestResponse(c, "CSV contains no rows")
		return
	}
	reports := h.Provision.ProvisionMany(context.Background(), inputs)
	utils.SuccessResponse(c, "CSV provisioning finished", summarizeReports(reports))
}

func summarizeReports(reports []service.ProvisionReport) gin.H {
	created := 0
	for _, r := range reports {
		if r.Status == "created" {
			created++
		}
	}
	return gin.H{
		"total":   len(reports),
		"created": created,
		"failed":  len(reports) - created,
		"reports": reports,
	}
}
