package serverutils

import (
	"errors"
	"log"

	"ai-renamer-be/internal/service"
	"ai-renamer-be/pkg/naming"
	"ai-renamer-be/pkg/renamer"
	"ai-renamer-be/pkg/workspace"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// ErrorHandlerMiddleware is installed as fiber's ErrorHandler so controllers
// can simply return domain errors.
func ErrorHandlerMiddleware() fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return ctx.Status(fiber.StatusBadRequest).JSON(
				ErrorResponseWithData(fiber.StatusBadRequest, "Validation failed", describeValidation(validationErrs)),
			)
		}

		code, message := StatusFor(err)
		if code >= fiber.StatusInternalServerError {
			log.Printf("[ERROR] %s %s: %v", ctx.Method(), ctx.Path(), err)
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

// StatusFor maps an error to the HTTP status and the message shown to clients.
func StatusFor(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	switch {
	case errors.Is(err, workspace.ErrNoApiKey),
		errors.Is(err, workspace.ErrEmptyPrompt),
		errors.Is(err, workspace.ErrEmptySelection),
		errors.Is(err, workspace.ErrNotProcessed),
		errors.Is(err, workspace.ErrNoDirectory):
		return fiber.StatusBadRequest, workspace.UserMessage(err)
	case errors.Is(err, workspace.ErrFileNotFound):
		return fiber.StatusNotFound, "File not found"
	case errors.Is(err, workspace.ErrStoreClosed):
		return fiber.StatusConflict, "Workspace was closed, open the folder again"

	case errors.Is(err, renamer.ErrPermissionDenied),
		errors.Is(err, renamer.ErrReadPermissionDenied):
		return fiber.StatusForbidden, workspace.UserMessage(err)
	case errors.Is(err, renamer.ErrNameConflict):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, renamer.ErrUnknownRenameMode):
		return fiber.StatusBadRequest, err.Error()

	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "Invalid credentials"
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrDuplicateName):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrApiKeyNotFound),
		errors.Is(err, service.ErrPromptNotFound),
		errors.Is(err, service.ErrFolderNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrInvalidFolder):
		return fiber.StatusBadRequest, err.Error()
	}

	var namingErr *naming.Error
	if errors.As(err, &namingErr) {
		switch namingErr.Kind {
		case naming.KindQuotaExceeded:
			return fiber.StatusTooManyRequests, namingErr.Message
		case naming.KindInvalidApiKey:
			return fiber.StatusUnprocessableEntity, namingErr.Message
		default:
			return fiber.StatusBadGateway, namingErr.Message
		}
	}

	return fiber.StatusInternalServerError, "Internal server error"
}
