package handler

import (
	"log/slog"
	"net/http"

	"forge/internal/delivery/http/response"
	"forge/internal/domain/entity"
	"forge/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// QuotationHandler holds dependencies for the quotation request workflow.
type QuotationHandler struct {
	uc     usecase.QuotationUsecase
	logger *slog.Logger
}

// NewQuotationHandler is the constructor for QuotationHandler, injected by Fx.
func NewQuotationHandler(uc usecase.QuotationUsecase, logger *slog.Logger) *QuotationHandler {
	return &QuotationHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateQuotation files a new request. Guests supply contact details in the
// payload; authenticated callers own the request.
func (h *QuotationHandler) CreateQuotation(c echo.Context) error {
	var input *usecase.QuotationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid quotation input")
	}

	quotation, err := h.uc.CreateQuotation(c.Request().Context(), actorFrom(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, quotation)
}

// GetQuotation retrieves a single request.
func (h *QuotationHandler) GetQuotation(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	quotation, err := h.uc.GetQuotation(c.Request().Context(), actorFrom(c), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, quotation)
}

// ListQuotations retrieves the caller's requests; staff see all, optionally
// filtered by status.
func (h *QuotationHandler) ListQuotations(c echo.Context) error {
	status := entity.QuotationStatus(c.QueryParam("status"))

	quotations, err := h.uc.ListQuotations(c.Request().Context(), actorFrom(c), status)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, quotations)
}

// UpdateQuotation lets the owner revise a request while it is still editable.
func (h *QuotationHandler) UpdateQuotation(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.QuotationInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid quotation input")
	}

	quotation, err := h.uc.UpdateQuotation(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, quotation)
}

// SubmitQuote writes staff quote details onto a request.
func (h *QuotationHandler) SubmitQuote(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.QuoteInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "invalid quote input")
	}

	quotation, err := h.uc.SubmitQuote(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, quotation)
}

type quotationStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ChangeStatus moves a request along its lifecycle on the staff path.
func (h *QuotationHandler) ChangeStatus(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req quotationStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	quotation, err := h.uc.ChangeStatus(c.Request().Context(), actorFrom(c), id, entity.QuotationStatus(req.Status))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, quotation)
}

type quoteResponseRequest struct {
	Accept *bool `json:"accept" validate:"required"`
}

// RespondToQuote records the owner's accept or reject decision.
func (h *QuotationHandler) RespondToQuote(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req quoteResponseRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid response input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	quotation, err := h.uc.RespondToQuote(c.Request().Context(), actorFrom(c), id, *req.Accept)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, quotation)
}

// AddAttachment uploads a reference file onto a request. The file arrives as
// multipart form data under the "file" field.
func (h *QuotationHandler) AddAttachment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "attachment file is missing")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	input := &usecase.AttachmentInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Description: c.FormValue("description"),
		Content:     file,
	}

	attachment, err := h.uc.AddAttachment(c.Request().Context(), actorFrom(c), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, attachment)
}

// DeleteQuotation removes a request entirely.
func (h *QuotationHandler) DeleteQuotation(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteQuotation(c.Request().Context(), actorFrom(c), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "quotation deleted"})
}
