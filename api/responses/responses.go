package responses

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type envelope struct {
	Data any `json:"data"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Error maps a typed application error onto its HTTP status; anything
// untyped is masked as an internal error.
func Error(w http.ResponseWriter, err error) {
	typed := apperrors.As(err)
	if typed == nil {
		typed = apperrors.Wrap(apperrors.CodeInternal, err, "internal error")
	}

	meta := apperrors.MetadataFor(typed.Code())
	body := errorBody{
		Code:    string(typed.Code()),
		Message: typed.Message(),
	}
	if body.Message == "" {
		body.Message = meta.PublicMessage
	}
	if meta.DetailsAllowed {
		body.Details = typed.Details()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Error: body})
}
