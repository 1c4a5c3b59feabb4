// Package httpapi exposes the schema registry over a thin REST surface.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
	"github.com/atvirokodosprendimai/dataforge/internal/core/usecase"
)

const (
	timeFormat      = time.RFC3339
	maxJSONBodySize = 8 << 20
)

type Handler struct {
	schemas  *usecase.SchemaService
	datasets *usecase.DatasetService
}

func NewHandler(schemas *usecase.SchemaService, datasets *usecase.DatasetService) *Handler {
	return &Handler{schemas: schemas, datasets: datasets}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", h.healthz)

	r.Get("/v1/schemas", h.listSchemas)
	r.Put("/v1/schemas/{name}", h.registerSchema)
	r.Get("/v1/schemas/{name}", h.getSchema)
	r.Delete("/v1/schemas/{name}", h.deleteSchema)

	r.Post("/v1/schemas/{name}/generate", h.generate)
	r.Post("/v1/schemas/{name}/datasets", h.generateDataset)
	r.Post("/v1/schemas/{name}/validate", h.validate)

	r.Get("/v1/datasets", h.listDatasets)

	return r
}

type generateRequest struct {
	Count int `json:"count"`
}

type generateDatasetRequest struct {
	Count  int    `json:"count"`
	Format string `json:"format"`
}

type validateRequest struct {
	Records []domain.Record `json:"records"`
}

type schemaSummary struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	FieldCount  int    `json:"field_count"`
}

type datasetResponse struct {
	ID          string `json:"id"`
	SchemaName  string `json:"schema_name"`
	RecordCount int    `json:"record_count"`
	Format      string `json:"format"`
	Location    string `json:"location"`
	CreatedAt   string `json:"created_at"`
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) registerSchema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)

	doc, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body")
		return
	}

	schema, err := h.schemas.RegisterDocument(r.Context(), doc)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	if schema.Name != name {
		// The document is authoritative; a mismatched URL is a caller bug.
		writeError(w, http.StatusBadRequest, "schema name in document does not match URL")
		return
	}

	writeJSON(w, http.StatusOK, schema)
}

func (h *Handler) getSchema(w http.ResponseWriter, r *http.Request) {
	schema, err := h.schemas.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, schema)
}

func (h *Handler) deleteSchema(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.schemas.Delete(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": deleted})
}

func (h *Handler) listSchemas(w http.ResponseWriter, r *http.Request) {
	schemas, err := h.schemas.List(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	out := make([]schemaSummary, 0, len(schemas))
	for _, s := range schemas {
		out = append(out, schemaSummary{
			Name:        s.Name,
			Version:     s.Version,
			Description: s.Description,
			FieldCount:  len(s.Fields),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"schemas": out})
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Count < 0 {
		writeError(w, http.StatusBadRequest, "count must not be negative")
		return
	}

	records, err := h.schemas.Generate(r.Context(), chi.URLParam(r, "name"), req.Count)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"count": len(records), "records": records})
}

func (h *Handler) generateDataset(w http.ResponseWriter, r *http.Request) {
	var req generateDatasetRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Count < 0 {
		writeError(w, http.StatusBadRequest, "count must not be negative")
		return
	}
	format, err := domain.ParseFormat(req.Format)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	location, err := h.schemas.GenerateAndStore(r.Context(), chi.URLParam(r, "name"), req.Count, format)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"location": location, "count": req.Count, "format": string(format)})
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	report, err := h.schemas.ValidateRecords(r.Context(), chi.URLParam(r, "name"), req.Records)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) listDatasets(w http.ResponseWriter, r *http.Request) {
	limit, ok := parseLimit(w, r)
	if !ok {
		return
	}

	datasets, err := h.datasets.List(r.Context(), limit)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	out := make([]datasetResponse, 0, len(datasets))
	for _, ds := range datasets {
		out = append(out, datasetResponse{
			ID:          ds.ID,
			SchemaName:  ds.SchemaName,
			RecordCount: ds.RecordCount,
			Format:      string(ds.Format),
			Location:    ds.Location,
			CreatedAt:   ds.CreatedAt.Format(timeFormat),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"datasets": out})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodySize)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := ensureEOF(decoder); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

func parseLimit(w http.ResponseWriter, r *http.Request) (int, bool) {
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be integer")
			return 0, false
		}
		limit = parsed
	}
	return limit, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		log.Printf("encode json response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(data, '\n')); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}

func handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSchema), errors.Is(err, domain.ErrInvalidField),
		errors.Is(err, domain.ErrUnknownDataType), errors.Is(err, domain.ErrUnknownFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func ensureEOF(decoder *json.Decoder) error {
	var extra json.RawMessage
	if err := decoder.Decode(&extra); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return errors.New("extra json tokens")
}
