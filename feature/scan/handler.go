package scan

import (
	"fmt"
	"io"
	"mime/multipart"

	"texture-scanner/core/logger"
	"texture-scanner/feature/scan/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for texture scans.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = models.Report{}
	return &Handler{service: service}
}

// RegisterRoutes registers the scan routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/scan")
	group.Post("/", h.HandleStartScan)
	group.Get("/list", h.HandleListScans)
	group.Get("/:id", h.HandleGetReport)
	group.Get("/:id/settings", h.HandleGetSettings)
	group.Get("/:id/export", h.HandleExport)
	group.Post("/add-texture", h.HandleAddTexture)
	group.Post("/edit-texture", h.HandleEditTexture)
	group.Post("/delete-texture", h.HandleDeleteTextures)
	group.Post("/bulk-add", h.HandleBulkAddMissing)
	group.Post("/bulk-add-pool", h.HandleBulkAddToPool)
	group.Post("/update-category", h.HandleUpdateCategory)
	group.Post("/bulk-update-category", h.HandleBulkUpdateCategory)
	group.Post("/reorder", h.HandleReorder)
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, l *zap.Logger, err error) error {
	switch {
	case IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case IsNotFound(err):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Scan operation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// HandleStartScan creates a new scan from a settings script and textures.
// @Summary Start Scan
// @Description Uploads a settings script plus texture images, reconciles them and returns the resulting report.
// @Tags scan
// @Accept multipart/form-data
// @Produce json
// @Param settings_py formData file true "Settings script"
// @Param textures formData file false "Texture images (repeatable)"
// @Success 200 {object} models.Report "Scan Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan [post]
func (h *Handler) HandleStartScan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	scriptFile, err := c.FormFile("settings_py")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "settings_py file is required"})
	}
	script, err := readFormFile(scriptFile)
	if err != nil {
		return respondError(c, l, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid multipart form"})
	}

	var uploads []Upload
	for _, fh := range form.File["textures"] {
		data, err := readFormFile(fh)
		if err != nil {
			return respondError(c, l, err)
		}
		uploads = append(uploads, Upload{Filename: fh.Filename, Data: data})
	}

	l.Info("Starting scan", zap.Int("textures", len(uploads)))

	report, err := h.service.StartScan(c.Context(), string(script), uploads)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(report)
}

// HandleListScans lists all known scans.
// @Summary List Scans
// @Description Returns the catalog of scans recorded in the registry, newest first.
// @Tags scan
// @Produce json
// @Success 200 {array} models.ScanRecord "Scan Catalog"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/list [get]
func (h *Handler) HandleListScans(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	records, err := h.service.ListScans(c.Context())
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(records)
}

// HandleGetReport returns the stored report for a scan.
// @Summary Get Scan Report
// @Description Returns the canonical report for a scan, including the gallery and summary counters.
// @Tags scan
// @Produce json
// @Param id path string true "Scan ID"
// @Success 200 {object} models.Report "Scan Report"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/{id} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.GetReport(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(report)
}

// HandleGetSettings returns the regenerated settings script.
// @Summary Get Settings Script
// @Description Returns the current settings script text for a scan.
// @Tags scan
// @Produce plain
// @Param id path string true "Scan ID"
// @Success 200 {string} string "Settings script"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/{id}/settings [get]
func (h *Handler) HandleGetSettings(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	script, err := h.service.GetScriptText(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, l, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(script)
}

// HandleExport downloads a scan as a zip archive.
// @Summary Export Scan
// @Description Packages the settings script and all textures of a scan into a zip archive.
// @Tags scan
// @Produce application/zip
// @Param id path string true "Scan ID"
// @Success 200 {file} binary "Zip archive"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/{id}/export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	scanID := c.Params("id")

	archive, err := h.service.BuildArchive(c.Context(), scanID)
	if err != nil {
		return respondError(c, l, err)
	}

	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="scan-%s.zip"`, scanID))
	return c.Send(archive)
}

type addTextureRequest struct {
	ScanID string `form:"scan_id"`
	Key    string `form:"key"`
	Pool   string `form:"pool"`
}

// HandleAddTexture adds or replaces a single texture in a scan.
// @Summary Add Texture
// @Description Uploads a 16x16 texture, registers it under the given key and assigns it to a pool.
// @Tags scan
// @Accept multipart/form-data
// @Produce json
// @Param scan_id formData string true "Scan ID"
// @Param key formData string true "Item key"
// @Param pool formData string true "Pool name"
// @Param image formData file true "Texture image"
// @Success 200 {object} models.Report "Updated Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/add-texture [post]
func (h *Handler) HandleAddTexture(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req addTextureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image file is required"})
	}
	image, err := readFormFile(imageFile)
	if err != nil {
		return respondError(c, l, err)
	}

	report, err := h.service.AddTexture(c.Context(), req.ScanID, req.Key, req.Pool, image)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(report)
}

type editTextureRequest struct {
	ScanID string `form:"scan_id"`
	OldKey string `form:"old_key"`
	NewKey string `form:"new_key"`
	Pool   string `form:"pool"`
}

// HandleEditTexture renames an item and optionally replaces its texture.
// @Summary Edit Texture
// @Description Renames an item, reassigns its pool and optionally replaces the texture image.
// @Tags scan
// @Accept multipart/form-data
// @Produce json
// @Param scan_id formData string true "Scan ID"
// @Param old_key formData string true "Current item key"
// @Param new_key formData string true "New item key"
// @Param pool formData string true "Pool name"
// @Param image formData file false "Replacement texture image"
// @Success 200 {object} models.Report "Updated Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/edit-texture [post]
func (h *Handler) HandleEditTexture(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req editTextureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var image []byte
	if imageFile, err := c.FormFile("image"); err == nil {
		image, err = readFormFile(imageFile)
		if err != nil {
			return respondError(c, l, err)
		}
	}

	report, err := h.service.EditTexture(c.Context(), req.ScanID, req.OldKey, req.NewKey, req.Pool, image)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(report)
}

type deleteTexturesRequest struct {
	ScanID string   `json:"scan_id"`
	Keys   []string `json:"keys"`
}

// HandleDeleteTextures removes items and their textures from a scan.
// @Summary Delete Textures
// @Description Removes the given items from the report and deletes their stored textures.
// @Tags scan
// @Accept json
// @Produce json
// @Param request body deleteTexturesRequest true "Keys to delete"
// @Success 200 {object} map[string]interface{} "Updated Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/delete-texture [post]
func (h *Handler) HandleDeleteTextures(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req deleteTexturesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	deleted, report, err := h.service.DeleteTextures(c.Context(), req.ScanID, req.Keys)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(fiber.Map{"deleted": deleted, "report": report})
}

type bulkAddRequest struct {
	ScanID string `json:"scan_id"`
	Pool   string `json:"pool"`
}

// HandleBulkAddMissing declares every undeclared-but-textured item into a pool.
// @Summary Bulk Add Missing Items
// @Description Adds every item that has a texture but no declaration to the given pool.
// @Tags scan
// @Accept json
// @Produce json
// @Param request body bulkAddRequest true "Target pool"
// @Success 200 {object} map[string]interface{} "Updated Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/bulk-add [post]
func (h *Handler) HandleBulkAddMissing(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req bulkAddRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	added, report, err := h.service.BulkAddMissing(c.Context(), req.ScanID, req.Pool)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(fiber.Map{"added": added, "report": report})
}

type bulkAddToPoolRequest struct {
	ScanID string   `json:"scan_id"`
	Keys   []string `json:"keys"`
	Pool   string   `json:"pool"`
}

// HandleBulkAddToPool moves the given items into a pool.
// @Summary Bulk Add To Pool
// @Description Assigns the given items to a pool in one operation.
// @Tags scan
// @Accept json
// @Produce json
// @Param request body bulkAddToPoolRequest true "Keys and target pool"
// @Success 200 {object} map[string]interface{} "Updated Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/bulk-add-pool [post]
func (h *Handler) HandleBulkAddToPool(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req bulkAddToPoolRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	moved, report, err := h.service.BulkAddToPool(c.Context(), req.ScanID, req.Keys, req.Pool)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(fiber.Map{"moved": moved, "report": report})
}

type updateCategoryRequest struct {
	ScanID   string `json:"scan_id"`
	Key      string `json:"key"`
	Category string `json:"category"`
}

// HandleUpdateCategory sets the category of a single item.
// @Summary Update Category
// @Description Sets or clears the category of a single item.
// @Tags scan
// @Accept json
// @Produce json
// @Param request body updateCategoryRequest true "Key and category"
// @Success 200 {object} models.Report "Updated Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/update-category [post]
func (h *Handler) HandleUpdateCategory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req updateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	report, err := h.service.UpdateCategory(c.Context(), req.ScanID, req.Key, req.Category)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(report)
}

type bulkUpdateCategoryRequest struct {
	ScanID   string   `json:"scan_id"`
	Keys     []string `json:"keys"`
	Category string   `json:"category"`
}

// HandleBulkUpdateCategory sets the category of several items at once.
// @Summary Bulk Update Category
// @Description Sets or clears the category of the given items in one operation.
// @Tags scan
// @Accept json
// @Produce json
// @Param request body bulkUpdateCategoryRequest true "Keys and category"
// @Success 200 {object} map[string]interface{} "Updated Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/bulk-update-category [post]
func (h *Handler) HandleBulkUpdateCategory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req bulkUpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	updated, report, err := h.service.BulkUpdateCategory(c.Context(), req.ScanID, req.Keys, req.Category)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(fiber.Map{"updated": updated, "report": report})
}

type reorderRequest struct {
	ScanID string         `json:"scan_id"`
	Orders map[string]int `json:"orders"`
}

// HandleReorder assigns explicit sort orders to items.
// @Summary Reorder Items
// @Description Assigns explicit sort orders to the given items and re-sorts the gallery.
// @Tags scan
// @Accept json
// @Produce json
// @Param request body reorderRequest true "Key to order mapping"
// @Success 200 {object} models.Report "Updated Report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /scan/reorder [post]
func (h *Handler) HandleReorder(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req reorderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	report, err := h.service.ReorderItems(c.Context(), req.ScanID, req.Orders)
	if err != nil {
		return respondError(c, l, err)
	}
	return c.JSON(report)
}
