package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Etiquetas-api/internal/application/auth"
	"github.com/jhoicas/Etiquetas-api/internal/application/labels"
	"github.com/jhoicas/Etiquetas-api/internal/application/reprint"
	"github.com/jhoicas/Etiquetas-api/internal/domain/entity"
	"github.com/jhoicas/Etiquetas-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	LabelingUC  *labels.LabelingUseCase
	ReprintUC   *reprint.ReprintUseCase
	PrinterRepo repository.PrinterRepository
	SheetGen    labelSheetGenerator
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Printers (registro, solo lectura)
	printers := protected.Group("/printers")
	printerHandler := NewPrinterHandler(deps.PrinterRepo)
	printers.Get("/", printerHandler.List)

	// Labels: borrador -> edición -> confirmación
	labelsGroup := protected.Group("/labels")
	labelHandler := NewLabelHandler(deps.LabelingUC, deps.SheetGen)
	labelsGroup.Post("/drafts", labelHandler.StartDraft)
	labelsGroup.Get("/drafts/:id", labelHandler.GetDraft)
	labelsGroup.Patch("/drafts/:id/lines/:line", labelHandler.EditLine)
	labelsGroup.Post("/drafts/:id/commit", labelHandler.CommitDraft)
	labelsGroup.Get("/orders/:orderNo", labelHandler.ListByOrder)
	labelsGroup.Get("/orders/:orderNo/sheet", labelHandler.LabelSheet)

	// Reprints: cada acción con su gate de rol (admin siempre pasa)
	reprints := protected.Group("/reprints")
	reprintHandler := NewReprintHandler(deps.ReprintUC)
	reprints.Post("/", RequireRole(entity.RoleSolicitante), reprintHandler.Create)
	reprints.Get("/", reprintHandler.List)
	reprints.Get("/:id", reprintHandler.GetByID)
	reprints.Post("/:id/approve", RequireRole(entity.RoleAprobador), reprintHandler.Approve)
	reprints.Post("/:id/reject", RequireRole(entity.RoleAprobador), reprintHandler.Reject)
	reprints.Post("/:id/print", RequireRole(entity.RoleImpresor), reprintHandler.Print)
}
