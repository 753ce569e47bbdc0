package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIError is the error body every endpoint returns. The Status field is
// the legacy in-body status code, which does not always match the HTTP
// status (most validation failures carry 400 in the body under a 422
// response).
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
	Status  int    `json:"status"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// Response is the envelope for APIError.
type Response struct {
	Error *APIError `json:"error"`
}

// New creates an APIError.
func New(code, message, field string, status int) *APIError {
	return &APIError{Code: code, Message: message, Field: field, Status: status}
}

// Respond writes the error envelope with the given HTTP status.
func Respond(c *gin.Context, httpStatus int, e *APIError) {
	c.JSON(httpStatus, Response{Error: e})
}

// Abort writes the error envelope and stops the handler chain.
func Abort(c *gin.Context, httpStatus int, e *APIError) {
	c.AbortWithStatusJSON(httpStatus, Response{Error: e})
}

// Error codes carried over from the legacy API contract.
const (
	CodeEmailInvalid   = "USR_03"
	CodeEmailExists    = "USR_04"
	CodeGenericUser    = "USR_10"
	CodeAuthFailed     = "USR_11"
	CodeOrderFailed    = "USR_12"
	CodeSearchParams   = "PRO_01"
	CodeCategoryParam  = "PRO_01"
	CodeDepartmentNum  = "PRO_03"
	CodeProductNum     = "PRO_04"
	CodeDeptNotNumber  = "DEP_01"
	CodeDeptNotFound   = "DEP_02"
	CodeDeptGeneric    = "DEP_03"
	CodeCatNotFound    = "CAT_01"
	CodeCatGeneric     = "CAT_03"
	CodeCartGenerate   = "SHO_01"
	CodeCartItemParams = "SHO_02"
	CodeCartItemMiss   = "SHO_03"
	CodeCartParam      = "SHO_04"
	CodeCartEmpty      = "SHO_06"
	CodeProductsList   = "API_01"
	CodeProductMiss    = "API_04"
)

// ErrorOccurred is the deliberately vague message used on downstream
// failures so internal detail never leaks to callers.
const ErrorOccurred = "Error occurred"

// Recovery returns a gin recovery handler that converts panics into the
// standard JSON error body instead of an empty 500.
func Recovery(logger *zap.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		Abort(c, http.StatusInternalServerError,
			New("API_00", "Internal server error", "", http.StatusInternalServerError))
	}
}
