package masterdata

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/akankshagoel28/masterlist/internal/config"
	"github.com/akankshagoel28/masterlist/internal/domain/models"
)

// Client exposes the remote master-data REST API operations used by the
// application. All entities are owned by the remote store; callers must treat
// responses as the source of truth.
type Client interface {
	ListItems(ctx context.Context) ([]models.Item, error)
	CreateItem(ctx context.Context, item models.Item) (*models.Item, error)
	UpdateItem(ctx context.Context, id int, item models.Item) (*models.Item, error)
	DeleteItem(ctx context.Context, id int) error

	ListBOM(ctx context.Context) ([]models.BOMEntry, error)
	ListBOMByItem(ctx context.Context, itemID int) ([]models.BOMEntry, error)
	CreateBOM(ctx context.Context, entry models.BOMEntry) (*models.BOMEntry, error)
	UpdateBOM(ctx context.Context, id int, entry models.BOMEntry) (*models.BOMEntry, error)
	DeleteBOM(ctx context.Context, id int) error

	ListProcesses(ctx context.Context) ([]models.Process, error)
	CreateProcess(ctx context.Context, process models.Process) (*models.Process, error)
	UpdateProcess(ctx context.Context, id int, process models.Process) (*models.Process, error)
	DeleteProcess(ctx context.Context, id int) error

	ListProcessSteps(ctx context.Context, itemID int) ([]models.ProcessStep, error)
	CreateProcessStep(ctx context.Context, step models.ProcessStep) (*models.ProcessStep, error)
	UpdateProcessStep(ctx context.Context, id int, step models.ProcessStep) (*models.ProcessStep, error)
}

// APIError carries a non-2xx response from the remote API. Message is the
// server's message field verbatim so it can be surfaced to the user unchanged.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("API request failed with status %d", e.StatusCode)
}

// apiErrorBody mirrors the error payload shape of the remote API.
type apiErrorBody struct {
	Message string `json:"message"`
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a master-data API client using the provided configuration.
func NewClient(cfg config.APIConfig) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &APIClient{httpClient: restyClient}
}

func (c *APIClient) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := c.get(ctx, "/items", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *APIClient) CreateItem(ctx context.Context, item models.Item) (*models.Item, error) {
	created := new(models.Item)
	if err := c.send(ctx, http.MethodPost, "/items", item, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *APIClient) UpdateItem(ctx context.Context, id int, item models.Item) (*models.Item, error) {
	updated := new(models.Item)
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/items/%d", id), item, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *APIClient) DeleteItem(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/items/%d", id), nil, nil)
}

func (c *APIClient) ListBOM(ctx context.Context) ([]models.BOMEntry, error) {
	var entries []models.BOMEntry
	if err := c.get(ctx, "/bom", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *APIClient) ListBOMByItem(ctx context.Context, itemID int) ([]models.BOMEntry, error) {
	var entries []models.BOMEntry
	params := map[string]string{"item_id": fmt.Sprintf("%d", itemID)}
	if err := c.get(ctx, "/bom", params, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *APIClient) CreateBOM(ctx context.Context, entry models.BOMEntry) (*models.BOMEntry, error) {
	created := new(models.BOMEntry)
	if err := c.send(ctx, http.MethodPost, "/bom", entry, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *APIClient) UpdateBOM(ctx context.Context, id int, entry models.BOMEntry) (*models.BOMEntry, error) {
	updated := new(models.BOMEntry)
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/bom/%d", id), entry, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *APIClient) DeleteBOM(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/bom/%d", id), nil, nil)
}

func (c *APIClient) ListProcesses(ctx context.Context) ([]models.Process, error) {
	var processes []models.Process
	if err := c.get(ctx, "/process", nil, &processes); err != nil {
		return nil, err
	}
	return processes, nil
}

func (c *APIClient) CreateProcess(ctx context.Context, process models.Process) (*models.Process, error) {
	created := new(models.Process)
	if err := c.send(ctx, http.MethodPost, "/process", process, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *APIClient) UpdateProcess(ctx context.Context, id int, process models.Process) (*models.Process, error) {
	updated := new(models.Process)
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/process/%d", id), process, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *APIClient) DeleteProcess(ctx context.Context, id int) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/process/%d", id), nil, nil)
}

func (c *APIClient) ListProcessSteps(ctx context.Context, itemID int) ([]models.ProcessStep, error) {
	var steps []models.ProcessStep
	var params map[string]string
	if itemID > 0 {
		params = map[string]string{"item_id": fmt.Sprintf("%d", itemID)}
	}
	if err := c.get(ctx, "/process-step", params, &steps); err != nil {
		return nil, err
	}
	return steps, nil
}

func (c *APIClient) CreateProcessStep(ctx context.Context, step models.ProcessStep) (*models.ProcessStep, error) {
	created := new(models.ProcessStep)
	if err := c.send(ctx, http.MethodPost, "/process-step", step, created); err != nil {
		return nil, err
	}
	return created, nil
}

func (c *APIClient) UpdateProcessStep(ctx context.Context, id int, step models.ProcessStep) (*models.ProcessStep, error) {
	updated := new(models.ProcessStep)
	if err := c.send(ctx, http.MethodPut, fmt.Sprintf("/process-step/%d", id), step, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (c *APIClient) get(ctx context.Context, path string, params map[string]string, result any) error {
	apiErr := new(apiErrorBody)

	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr)
	if params != nil {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}

	return checkStatus(resp, apiErr)
}

func (c *APIClient) send(ctx context.Context, method, path string, body, result any) error {
	apiErr := new(apiErrorBody)

	req := c.httpClient.R().
		SetContext(ctx).
		SetError(apiErr)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", strings.ToLower(method), path, err)
	}

	return checkStatus(resp, apiErr)
}

func checkStatus(resp *resty.Response, apiErr *apiErrorBody) error {
	if resp.StatusCode() < http.StatusBadRequest {
		return nil
	}

	message := ""
	if apiErr != nil {
		message = apiErr.Message
	}
	return &APIError{StatusCode: resp.StatusCode(), Message: message}
}
