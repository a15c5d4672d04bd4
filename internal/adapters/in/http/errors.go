package http

import (
	"errors"
	"net/http"

	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidState:
		return http.StatusConflict
	case errs.KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler renders every error as ErrorView. Domain errors are mapped by
// kind; echo errors keep their status. Internal errors are logged and their
// text is not sent to the client.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var view ErrorView
		var httpErr *echo.HTTPError
		var bindErr *echo.BindingError
		if errors.As(err, &bindErr) && bindErr.HTTPError != nil {
			httpErr = bindErr.HTTPError
			err = httpErr
		}
		switch {
		case errors.As(err, &httpErr):
			view = ErrorView{
				Code:    httpErr.Code,
				Kind:    string(errs.KindInvalidInput),
				Message: http.StatusText(httpErr.Code),
			}
			if msg, ok := httpErr.Message.(string); ok {
				view.Message = msg
			}
			switch {
			case httpErr.Code == http.StatusNotFound:
				view.Kind = string(errs.KindNotFound)
			case httpErr.Code >= http.StatusInternalServerError:
				view.Kind = string(errs.KindInternal)
			}
		default:
			kind := errs.KindOf(err)
			view = ErrorView{Code: statusOf(kind), Kind: string(kind), Message: err.Error()}
			if kind == errs.KindInternal {
				logger.Error("request failed",
					zap.String("method", c.Request().Method),
					zap.String("path", c.Request().URL.Path),
					zap.Error(err))
				view.Message = "internal error"
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(view.Code)
		} else {
			writeErr = c.JSON(view.Code, view)
		}
		if writeErr != nil {
			logger.Warn("failed to write error response", zap.Error(writeErr))
		}
	}
}
