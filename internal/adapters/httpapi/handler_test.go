package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atvirokodosprendimai/dataforge/internal/core/domain"
	"github.com/atvirokodosprendimai/dataforge/internal/core/usecase"
)

type stubSchemaRepo struct {
	schemas map[string]domain.Schema
}

func newStubSchemaRepo() *stubSchemaRepo {
	return &stubSchemaRepo{schemas: make(map[string]domain.Schema)}
}

func (r *stubSchemaRepo) Upsert(_ context.Context, schema domain.Schema) error {
	r.schemas[schema.Name] = schema
	return nil
}

func (r *stubSchemaRepo) Get(_ context.Context, name string) (domain.Schema, error) {
	s, ok := r.schemas[name]
	if !ok {
		return domain.Schema{}, domain.ErrNotFound
	}
	return s, nil
}

func (r *stubSchemaRepo) Delete(_ context.Context, name string) (bool, error) {
	_, ok := r.schemas[name]
	delete(r.schemas, name)
	return ok, nil
}

func (r *stubSchemaRepo) List(_ context.Context) ([]domain.Schema, error) {
	out := make([]domain.Schema, 0, len(r.schemas))
	for _, s := range r.schemas {
		out = append(out, s)
	}
	return out, nil
}

type stubStore struct {
	saved map[string][]domain.Record
}

func (s *stubStore) Save(_ context.Context, records []domain.Record, destination string, _ domain.Format) error {
	if s.saved == nil {
		s.saved = make(map[string][]domain.Record)
	}
	s.saved[destination] = records
	return nil
}

func (s *stubStore) Load(_ context.Context, source string, _ domain.Format) ([]domain.Record, error) {
	return s.saved[source], nil
}

type stubCatalog struct {
	entries []domain.Dataset
}

func (c *stubCatalog) Append(_ context.Context, ds domain.Dataset) error {
	c.entries = append(c.entries, ds)
	return nil
}

func (c *stubCatalog) List(_ context.Context, limit int) ([]domain.Dataset, error) {
	if limit > len(c.entries) {
		limit = len(c.entries)
	}
	return c.entries[:limit], nil
}

func newTestHandler() (*Handler, *stubCatalog) {
	gen := usecase.NewRecordGenerator(usecase.NewValueGenerator(nil, usecase.WithSeed(23)))
	catalog := &stubCatalog{}
	schemas := usecase.NewSchemaService(
		newStubSchemaRepo(), &stubStore{}, catalog, gen,
		usecase.NewRecordValidator(nil), "testdata",
	)
	return NewHandler(schemas, usecase.NewDatasetService(catalog)), catalog
}

const userDoc = `{
	"name": "user",
	"version": "1.0",
	"description": "test users",
	"fields": [
		{"name": "username", "data_type": "string", "required": true, "min_length": 3, "max_length": 20, "description": ""},
		{"name": "age", "data_type": "integer", "required": true, "min_value": 18, "max_value": 100, "description": ""},
		{"name": "role", "data_type": "string", "required": true, "choices": ["user", "admin", "moderator"], "description": ""}
	]
}`

func registerUser(t *testing.T, router http.Handler) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, "/v1/schemas/user", strings.NewReader(userDoc))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("register schema: status %d body %s", rec.Code, rec.Body)
	}
}

func TestHandlerRegisterAndGetSchema(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()
	registerUser(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/schemas/user", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get schema: status %d", rec.Code)
	}

	var schema domain.Schema
	if err := json.Unmarshal(rec.Body.Bytes(), &schema); err != nil {
		t.Fatalf("decode schema document: %v", err)
	}
	if schema.Name != "user" || len(schema.Fields) != 3 {
		t.Fatalf("unexpected schema: %+v", schema)
	}
}

func TestHandlerRegisterRejectsNameMismatch(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()

	req := httptest.NewRequest(http.MethodPut, "/v1/schemas/other", strings.NewReader(userDoc))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerRegisterRejectsBadDocument(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()

	doc := `{"name":"user","fields":[{"name":"a","data_type":"decimal"}]}`
	req := httptest.NewRequest(http.MethodPut, "/v1/schemas/user", strings.NewReader(doc))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body %s", rec.Code, rec.Body)
	}
}

func TestHandlerGetMissingSchema(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()

	req := httptest.NewRequest(http.MethodGet, "/v1/schemas/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHandlerGenerate(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()
	registerUser(t, router)

	req := httptest.NewRequest(http.MethodPost, "/v1/schemas/user/generate", strings.NewReader(`{"count":5}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate: status %d body %s", rec.Code, rec.Body)
	}

	var resp struct {
		Count   int             `json:"count"`
		Records []domain.Record `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Count != 5 || len(resp.Records) != 5 {
		t.Fatalf("expected 5 records, got %+v", resp)
	}
	for _, r := range resp.Records {
		if _, ok := r["username"]; !ok {
			t.Fatalf("record missing generated field: %v", r)
		}
	}
}

func TestHandlerGenerateRejectsNegativeCount(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()
	registerUser(t, router)

	req := httptest.NewRequest(http.MethodPost, "/v1/schemas/user/generate", strings.NewReader(`{"count":-1}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerGenerateDatasetAndCatalog(t *testing.T) {
	h, catalog := newTestHandler()
	router := h.Router()
	registerUser(t, router)

	req := httptest.NewRequest(http.MethodPost, "/v1/schemas/user/datasets",
		strings.NewReader(`{"count":4,"format":"json"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("generate dataset: status %d body %s", rec.Code, rec.Body)
	}

	var resp struct {
		Location string `json:"location"`
		Count    int    `json:"count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Location == "" || resp.Count != 4 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(catalog.entries) != 1 {
		t.Fatalf("expected one catalog entry, got %d", len(catalog.entries))
	}

	listReq := httptest.NewRequest(http.MethodGet, "/v1/datasets", nil)
	listRec := httptest.NewRecorder()
	router.ServeHTTP(listRec, listReq)
	if listRec.Code != http.StatusOK {
		t.Fatalf("list datasets: status %d", listRec.Code)
	}
	var listResp struct {
		Datasets []struct {
			SchemaName  string `json:"schema_name"`
			RecordCount int    `json:"record_count"`
			CreatedAt   string `json:"created_at"`
		} `json:"datasets"`
	}
	if err := json.Unmarshal(listRec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Datasets) != 1 || listResp.Datasets[0].SchemaName != "user" || listResp.Datasets[0].RecordCount != 4 {
		t.Fatalf("unexpected listing: %+v", listResp)
	}
	if _, err := time.Parse(time.RFC3339, listResp.Datasets[0].CreatedAt); err != nil {
		t.Fatalf("created_at not RFC3339: %v", err)
	}
}

func TestHandlerGenerateDatasetRejectsUnknownFormat(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()
	registerUser(t, router)

	req := httptest.NewRequest(http.MethodPost, "/v1/schemas/user/datasets",
		strings.NewReader(`{"count":4,"format":"xlsx"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandlerValidate(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()
	registerUser(t, router)

	body := `{"records":[
		{"username":"alice","age":30,"role":"admin"},
		{"username":"bo","age":150,"role":"wizard"}
	]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/schemas/user/validate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("validate: status %d body %s", rec.Code, rec.Body)
	}

	var report domain.ValidationReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Total != 2 || report.Valid != 1 || report.Invalid != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}
	if len(report.Errors) != 1 || report.Errors[0].Index != 1 {
		t.Fatalf("unexpected error entries: %+v", report.Errors)
	}
	if len(report.Errors[0].Errors) != 3 {
		t.Fatalf("expected three violations (length, range, choices), got %v", report.Errors[0].Errors)
	}
}

func TestHandlerDeleteSchema(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()
	registerUser(t, router)

	req := httptest.NewRequest(http.MethodDelete, "/v1/schemas/user", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status %d", rec.Code)
	}

	getReq := httptest.NewRequest(http.MethodGet, "/v1/schemas/user", nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", getRec.Code)
	}
}

func TestHandlerListSchemas(t *testing.T) {
	h, _ := newTestHandler()
	router := h.Router()
	registerUser(t, router)

	req := httptest.NewRequest(http.MethodGet, "/v1/schemas", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: status %d", rec.Code)
	}

	var resp struct {
		Schemas []struct {
			Name       string `json:"name"`
			FieldCount int    `json:"field_count"`
		} `json:"schemas"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(resp.Schemas) != 1 || resp.Schemas[0].Name != "user" || resp.Schemas[0].FieldCount != 3 {
		t.Fatalf("unexpected listing: %+v", resp)
	}
}
