package chi

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// RecordID is the opaque identifier path segment of /data/{id}.
type RecordID = string

// ListRecordsParams are the optional query parameters of GET /data.
type ListRecordsParams struct {
	Column    *string
	Condition *string
	Search    *string
}

// ServerInterface is the set of HTTP operations the API serves.
type ServerInterface interface {
	// ListRecords handles GET /data.
	ListRecords(w http.ResponseWriter, r *http.Request, params ListRecordsParams)
	// ListColumns handles GET /columns.
	ListColumns(w http.ResponseWriter, r *http.Request)
	// GetRecord handles GET /data/{id}.
	GetRecord(w http.ResponseWriter, r *http.Request, id RecordID)
	// DeleteRecord handles DELETE /data/{id}.
	DeleteRecord(w http.ResponseWriter, r *http.Request, id RecordID)
	// HealthCheck handles GET /health.
	HealthCheck(w http.ResponseWriter, r *http.Request)
	// Metrics handles GET /metrics.
	Metrics(w http.ResponseWriter, r *http.Request)
}

// ChiServerOptions configures route registration.
type ChiServerOptions struct {
	BaseURL          string
	BaseRouter       chi.Router
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

// BindError reports a parameter that could not be decoded.
type BindError struct {
	Param string
	Err   error
}

func (e *BindError) Error() string {
	return fmt.Sprintf("invalid format for parameter %s: %v", e.Param, e.Err)
}

func (e *BindError) Unwrap() error { return e.Err }

// serverInterfaceWrapper decodes parameters and dispatches to the handler.
type serverInterfaceWrapper struct {
	handler      ServerInterface
	errorHandler func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) ListRecords(w http.ResponseWriter, r *http.Request) {
	var params ListRecordsParams
	query := r.URL.Query()

	for name, dest := range map[string]**string{
		"column":    &params.Column,
		"condition": &params.Condition,
		"search":    &params.Search,
	} {
		// a repeated filter parameter keeps its first value; filter params never fail the request
		first := url.Values{}
		if vals := query[name]; len(vals) > 0 {
			first.Set(name, vals[0])
		}
		if err := runtime.BindQueryParameter("form", true, false, name, first, dest); err != nil {
			*dest = nil
		}
	}

	siw.handler.ListRecords(w, r, params)
}

func (siw *serverInterfaceWrapper) ListColumns(w http.ResponseWriter, r *http.Request) {
	siw.handler.ListColumns(w, r)
}

func (siw *serverInterfaceWrapper) GetRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.handler.GetRecord(w, r, id)
}

func (siw *serverInterfaceWrapper) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id, ok := siw.bindID(w, r)
	if !ok {
		return
	}
	siw.handler.DeleteRecord(w, r, id)
}

func (siw *serverInterfaceWrapper) bindID(w http.ResponseWriter, r *http.Request) (RecordID, bool) {
	var id RecordID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{
			ParamLocation: runtime.ParamLocationPath,
			Explode:       false,
			Required:      true,
		})
	if err != nil {
		siw.errorHandler(w, r, &BindError{Param: "id", Err: err})
		return "", false
	}
	return id, true
}

// HandlerWithOptions registers every route of si on the options' router.
func HandlerWithOptions(si ServerInterface, options ChiServerOptions) http.Handler {
	r := options.BaseRouter
	if r == nil {
		r = chi.NewRouter()
	}
	errorHandler := options.ErrorHandlerFunc
	if errorHandler == nil {
		errorHandler = func(w http.ResponseWriter, _ *http.Request, err error) {
			writeError(w, http.StatusBadRequest, err.Error())
		}
	}

	wrapper := &serverInterfaceWrapper{handler: si, errorHandler: errorHandler}
	base := options.BaseURL

	r.Group(func(r chi.Router) {
		r.Get(base+"/data", wrapper.ListRecords)
		r.Get(base+"/data/{id}", wrapper.GetRecord)
		r.Delete(base+"/data/{id}", wrapper.DeleteRecord)
		r.Get(base+"/columns", wrapper.ListColumns)
		r.Get(base+"/health", si.HealthCheck)
		r.Get(base+"/metrics", si.Metrics)
	})

	return r
}
