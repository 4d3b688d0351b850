package handlers

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/Muvfitness-it/muv-smart-fit-web-sub000/internal/services"
)

const (
	planPDFName     = "piano_alimentare_muv.pdf"
	shoppingPDFName = "lista_spesa_muv.pdf"
)

// ExportPlanPDF renders a saved plan to PDF and streams it as a download.
func (h *Handler) ExportPlanPDF(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	stored, err := h.planByID(c, userID)
	if err != nil {
		return planError(c, err)
	}

	data, err := h.pdf.PlanPDF(&stored.Plan)
	if err != nil {
		log.Printf("plan pdf export failed: %v", err)
		return Error(c, fiber.StatusInternalServerError, "Esportazione PDF non riuscita")
	}

	h.archiveExport("plans", userID, data)
	return sendPDF(c, planPDFName, data)
}

// ExportShoppingPDF renders a saved plan's shopping list to PDF.
func (h *Handler) ExportShoppingPDF(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return Error(c, fiber.StatusUnauthorized, err.Error())
	}

	stored, err := h.planByID(c, userID)
	if err != nil {
		return planError(c, err)
	}

	list := services.BuildShoppingList(&stored.Plan)
	data, err := h.pdf.ShoppingPDF(list)
	if err != nil {
		log.Printf("shopping pdf export failed: %v", err)
		return Error(c, fiber.StatusInternalServerError, "Esportazione PDF non riuscita")
	}

	h.archiveExport("shopping", userID, data)
	return sendPDF(c, shoppingPDFName, data)
}

// archiveExport stores a copy in S3 when configured. Best effort: archive
// failures never block the download.
func (h *Handler) archiveExport(kind string, userID int, data []byte) {
	if h.archive == nil {
		return
	}
	go func() {
		key, err := h.archive.ArchivePDF(context.Background(), kind, userID, data)
		if err != nil {
			log.Printf("warning: failed to archive %s export: %v", kind, err)
			return
		}
		log.Printf("archived %s export as %s", kind, key)
	}()
}

func sendPDF(c *fiber.Ctx, fileName string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Send(data)
}
