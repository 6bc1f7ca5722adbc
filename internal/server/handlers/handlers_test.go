package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/akankshagoel28/masterlist/internal/config"
	"github.com/akankshagoel28/masterlist/internal/domain/models"
	repo "github.com/akankshagoel28/masterlist/internal/repository/masterdata"
	"github.com/akankshagoel28/masterlist/internal/server/handlers"
	"github.com/akankshagoel28/masterlist/internal/server/router"
	"github.com/akankshagoel28/masterlist/internal/service/bulkupload"
	masterlistsvc "github.com/akankshagoel28/masterlist/internal/service/masterlist"
	"github.com/akankshagoel28/masterlist/pkg/clients/masterdata"
)

// fakeClient is an in-memory stand-in for the remote API.
type fakeClient struct {
	masterdata.Client

	mu             sync.Mutex
	items          []models.Item
	bom            []models.BOMEntry
	processes      []models.Process
	steps          []models.ProcessStep
	failCreateItem error
	nextID         int
}

func (f *fakeClient) ListItems(_ context.Context) ([]models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Item, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeClient) CreateItem(_ context.Context, item models.Item) (*models.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateItem != nil {
		return nil, f.failCreateItem
	}
	item.ID = f.nextID
	f.nextID++
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeClient) DeleteItem(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeClient) ListBOM(_ context.Context) ([]models.BOMEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.BOMEntry, len(f.bom))
	copy(out, f.bom)
	return out, nil
}

func (f *fakeClient) ListBOMByItem(_ context.Context, itemID int) ([]models.BOMEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BOMEntry
	for _, entry := range f.bom {
		if entry.ItemID == itemID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (f *fakeClient) CreateBOM(_ context.Context, entry models.BOMEntry) (*models.BOMEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry.ID = f.nextID
	f.nextID++
	f.bom = append(f.bom, entry)
	return &entry, nil
}

func (f *fakeClient) ListProcesses(_ context.Context) ([]models.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Process, len(f.processes))
	copy(out, f.processes)
	return out, nil
}

func (f *fakeClient) CreateProcess(_ context.Context, process models.Process) (*models.Process, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	process.ID = f.nextID
	f.nextID++
	f.processes = append(f.processes, process)
	return &process, nil
}

func (f *fakeClient) ListProcessSteps(_ context.Context, itemID int) ([]models.ProcessStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ProcessStep
	for _, step := range f.steps {
		if itemID == 0 || step.ItemID == itemID {
			out = append(out, step)
		}
	}
	return out, nil
}

func (f *fakeClient) CreateProcessStep(_ context.Context, step models.ProcessStep) (*models.ProcessStep, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	step.ID = f.nextID
	f.nextID++
	f.steps = append(f.steps, step)
	return &step, nil
}

func newTestRouter(t *testing.T, client *fakeClient) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if client.nextID == 0 {
		client.nextID = 1000
	}

	items := repo.NewItemRepository(client, nil)
	bom := repo.NewBOMRepository(client, nil)
	processes := repo.NewProcessRepository(client, nil)
	steps := repo.NewProcessStepRepository(client, nil)

	masterlist := masterlistsvc.NewService(items, bom, processes, steps, nil)
	assert.NoError(t, masterlist.RefreshAll(context.Background()))

	bulk := bulkupload.NewService(client, items, bom, config.QuantityPolicyInteger, nil)
	audit := masterlistsvc.NewAuditLog()

	return router.New(router.Handlers{
		Items:     handlers.NewItemHandler(items, audit, nil),
		BOM:       handlers.NewBOMHandler(items, bom, config.QuantityPolicyInteger, audit, nil),
		Process:   handlers.NewProcessHandler(processes, steps, audit, nil),
		Bulk:      handlers.NewBulkHandler(bulk, nil, audit, nil),
		Dashboard: handlers.NewDashboardHandler(masterlist, audit, nil),
	}, nil)
}

func completeSellItemBody() map[string]any {
	return map[string]any{
		"internal_item_name": "widget-a",
		"tenant_id":          1,
		"item_description":   "Widget A",
		"uom":                "Nos",
		"type":               "sell",
		"max_buffer":         20,
		"min_buffer":         10,
		"customer_item_name": "Customer Widget A",
		"additional_attributes": map[string]any{
			"scrap_type": "metal",
		},
	}
}

func doJSON(engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	engine := newTestRouter(t, &fakeClient{})

	w := doJSON(engine, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateItemRejectsInvalidCandidate(t *testing.T) {
	engine := newTestRouter(t, &fakeClient{})

	body := completeSellItemBody()
	delete(body, "customer_item_name")

	w := doJSON(engine, http.MethodPost, "/items", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response map[string][]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response["errors"], "Customer item name is required")
}

func TestCreateItemRecordsAuditEntry(t *testing.T) {
	engine := newTestRouter(t, &fakeClient{})

	w := doJSON(engine, http.MethodPost, "/items", completeSellItemBody())
	assert.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(engine, http.MethodGet, "/audit-log", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Entries []models.AuditEntry `json:"entries"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Entries, 1)
	assert.Equal(t, models.AuditCreate, response.Entries[0].Action)
	assert.Equal(t, `created item "widget-a"`, response.Entries[0].Details)
}

func TestCreateItemPassesUpstreamErrorThrough(t *testing.T) {
	client := &fakeClient{failCreateItem: &masterdata.APIError{StatusCode: 400, Message: "tenant mismatch"}}
	engine := newTestRouter(t, client)

	w := doJSON(engine, http.MethodPost, "/items", completeSellItemBody())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"tenant mismatch"}`, w.Body.String())
}

func TestDeleteSellItemWithBOMConflicts(t *testing.T) {
	client := &fakeClient{
		items: []models.Item{{ID: 1, InternalItemName: "widget", Type: models.ItemTypeSell}},
		bom:   []models.BOMEntry{{ID: 10, ItemID: 1, ComponentID: 2, Quantity: 1}},
	}
	engine := newTestRouter(t, client)

	w := doJSON(engine, http.MethodDelete, "/items/1", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "associated BOM entries")
}

func TestDeleteUnknownItemIs404(t *testing.T) {
	engine := newTestRouter(t, &fakeClient{})

	w := doJSON(engine, http.MethodDelete, "/items/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBOMRejectsBadItemIDFilter(t *testing.T) {
	engine := newTestRouter(t, &fakeClient{})

	w := doJSON(engine, http.MethodGet, "/bom?item_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProcessRejectsUnknownName(t *testing.T) {
	engine := newTestRouter(t, &fakeClient{})

	w := doJSON(engine, http.MethodPost, "/process", map[string]any{
		"process_name": "smelting",
		"tenant_id":    1,
		"type":         "internal",
		"factory_id":   3,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreateStepReturnsSequenceWarnings(t *testing.T) {
	client := &fakeClient{
		steps: []models.ProcessStep{{ID: 1, ItemID: 1, ProcessID: 1, Sequence: 1}},
	}
	engine := newTestRouter(t, client)

	w := doJSON(engine, http.MethodPost, "/process-steps", map[string]any{
		"item_id":    1,
		"process_id": 2,
		"sequence":   3,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Step     models.ProcessStep `json:"step"`
		Warnings []string           `json:"warnings"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 3, response.Step.Sequence)
	assert.Equal(t, []string{"Sequence gap: expected 2, found 3"}, response.Warnings)
}

func TestTemplateDownload(t *testing.T) {
	engine := newTestRouter(t, &fakeClient{})

	w := doJSON(engine, http.MethodGet, "/templates/bom?format=csv", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "item_id,component_id,quantity,created_by,last_updated_by", strings.TrimSpace(w.Body.String()))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bom_template.csv")

	w = doJSON(engine, http.MethodGet, "/templates/items?format=xlsx", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Body.Bytes())

	w = doJSON(engine, http.MethodGet, "/templates/items?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBulkStageAndCommitFlow(t *testing.T) {
	engine := newTestRouter(t, &fakeClient{})

	file := "internal_item_name,tenant_id,item_description,uom,type,max_buffer,min_buffer,customer_item_name,scrap_type\n" +
		"widget-a,1,Widget A,Nos,sell,20,10,Customer A,metal\n"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "items.csv")
	assert.NoError(t, err)
	_, err = part.Write([]byte(file))
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	req, _ := http.NewRequest(http.MethodPost, "/bulk/items/stage", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var batch bulkupload.Batch
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &batch))
	assert.Len(t, batch.Rows, 1)
	assert.Empty(t, batch.Violations)

	w = doJSON(engine, http.MethodGet, "/bulk/items/stage/"+batch.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(engine, http.MethodPost, "/bulk/items/stage/"+batch.ID+"/commit", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var summary bulkupload.Summary
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 1, summary.Succeeded)
	assert.Equal(t, "1 succeeded, 0 failed", summary.Message)

	// Committed items show up in the list straight away.
	w = doJSON(engine, http.MethodGet, "/items", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var items []models.Item
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)
	assert.Equal(t, "widget-a", items[0].InternalItemName)
}

func TestBulkStageRejectsUnsupportedFile(t *testing.T) {
	engine := newTestRouter(t, &fakeClient{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "items.pdf")
	part.Write([]byte("not a table"))
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, "/bulk/items/stage", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "please upload a .csv or .xlsx file")
}

func TestStageSheetWithoutSourceIs404(t *testing.T) {
	engine := newTestRouter(t, &fakeClient{})

	w := doJSON(engine, http.MethodPost, "/bulk/items/stage-sheet", map[string]any{"range": "Items!A1:O"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkCommitUnknownBatchIs404(t *testing.T) {
	engine := newTestRouter(t, &fakeClient{})

	w := doJSON(engine, http.MethodPost, "/bulk/items/stage/no-such-batch/commit", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDashboardViews(t *testing.T) {
	client := &fakeClient{
		items: []models.Item{
			{ID: 1, InternalItemName: "widget", Type: models.ItemTypeSell},
			{ID: 2, InternalItemName: "bolt", Type: models.ItemTypePurchase},
		},
	}
	engine := newTestRouter(t, client)

	w := doJSON(engine, http.MethodGet, "/dashboard/status", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var status masterlistsvc.SectionStatus
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Zero(t, status.Items)

	w = doJSON(engine, http.MethodGet, "/dashboard/pending-bom", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var pendingBOM struct {
		PendingBOM       []models.Item `json:"pending_bom"`
		UnusedComponents []models.Item `json:"unused_components"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pendingBOM))
	assert.Len(t, pendingBOM.PendingBOM, 1)
	assert.Len(t, pendingBOM.UnusedComponents, 1)

	w = doJSON(engine, http.MethodGet, "/dashboard/pending-items", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var pendingItems struct {
		PendingItems []models.Item `json:"pending_items"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &pendingItems))
	assert.Len(t, pendingItems.PendingItems, 2)
}
