package action

import (
	"context"
	"dashboard/internal/actions"
	"dashboard/internal/http/handlers/response"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"
)

const maxBodySize = 64 << 10

// Func is the shape shared by all account actions.
type Func func(ctx context.Context, prev actions.State, values url.Values) actions.State

type Handler struct {
	action Func
}

func New(action Func) *Handler {
	if action == nil {
		panic("Argument action must not be nil.")
	}
	return &Handler{action: action}
}

// ServeHTTP accepts a JSON object or a form-encoded body. Form submissions
// that end in a redirect are answered with 303, everything else with the
// resulting state as JSON.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(rw, r.Body, maxBodySize)

	values, isForm, err := parseValues(r)
	if err != nil {
		response.RenderBadRequest(rw)
		return
	}

	state := h.action(r.Context(), actions.State{}, values)
	if isForm && state.Redirect != "" {
		response.SeeOther(rw, r, state.Redirect)
		return
	}
	response.Render(rw, state, http.StatusOK)
}

func parseValues(r *http.Request) (values url.Values, isForm bool, err error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, false, err
	}

	switch mediaType {
	case "application/json":
		values, err = decodeJSON(r)
		return values, false, err
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxBodySize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, true, err
		}
		return r.PostForm, true, nil
	default:
		return nil, false, errors.New("unsupported content type")
	}
}

// decodeJSON keeps only string members, anything else counts as missing.
func decodeJSON(r *http.Request) (url.Values, error) {
	raw := map[string]interface{}{}
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, err
	}
	values := url.Values{}
	for k, v := range raw {
		if s, ok := v.(string); ok {
			values.Set(k, s)
		}
	}
	return values, nil
}
