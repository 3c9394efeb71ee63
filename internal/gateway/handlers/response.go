package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"manufacturing-system/internal/gateway/dto"
	"manufacturing-system/internal/gateway/middleware"
	"manufacturing-system/internal/logger"
	"manufacturing-system/internal/services/manufacturing/repository"
)

const (
	CodeNotFound            = "NOT_FOUND"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeConstraintViolation = "CONSTRAINT_VIOLATION"
	CodeBadRequest          = "BAD_REQUEST"
	CodeInternal            = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error  string           `json:"error"`
	Code   string           `json:"code"`
	Fields []dto.FieldError `json:"fields,omitempty"`
}

// badRequest is a malformed path or query parameter.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

func respondError(c *gin.Context, log *logger.Logger, label string, err error) {
	var validationErr *dto.ValidationError
	var badReq badRequest

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  validationErr.Error(),
			Code:   CodeValidationFailed,
			Fields: validationErr.Fields,
		})
	case errors.As(err, &badReq):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: badReq.msg, Code: CodeBadRequest})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: label + " not found", Code: CodeNotFound})
	case errors.Is(err, repository.ErrConstraintViolation):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error(), Code: CodeConstraintViolation})
	default:
		log.Error("request failed",
			"request_id", middleware.RequestID(c),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeInternal})
	}
}

func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, badRequest{msg: "invalid id " + strconv.Quote(c.Param("id"))}
	}
	return id, nil
}

// parseIntQuery returns def when the parameter is absent.
func parseIntQuery(c *gin.Context, param string, def int64) (int64, error) {
	str, ok := c.GetQuery(param)
	if !ok || str == "" {
		return def, nil
	}
	val, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, badRequest{msg: param + " must be an integer"}
	}
	return val, nil
}
