package sanity

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string
	Token      string
	UseCDN     bool

	// BaseURL replaces the project host, e.g. to point at a local fake.
	BaseURL string
}

func (c Config) host(cdn bool) string {
	if len(c.BaseURL) > 0 {
		return strings.TrimSuffix(c.BaseURL, "/")
	}
	if cdn {
		return fmt.Sprintf("https://%s.apicdn.sanity.io", c.ProjectID)
	}
	return fmt.Sprintf("https://%s.api.sanity.io", c.ProjectID)
}

// Store talks to the hosted content store over its HTTP API. Listing reads may
// go through the CDN; single document reads and every write use the live API
// so revisions are never stale.
type Store struct {
	cfg Config
	api *resty.Client
	cdn *resty.Client
}

func NewStore(cfg Config) *Store {
	return &Store{
		cfg: cfg,
		api: newClient(cfg, false),
		cdn: newClient(cfg, cfg.UseCDN),
	}
}

func newClient(cfg Config, cdn bool) *resty.Client {
	client := resty.New().
		SetBaseURL(cfg.host(cdn)+"/v"+strings.TrimPrefix(cfg.APIVersion, "v")).
		SetHeader("Accept", "application/json")
	client.JSONMarshal = json.Marshal
	client.JSONUnmarshal = json.Unmarshal
	if len(cfg.Token) > 0 {
		client.SetAuthToken(cfg.Token)
	}
	return client
}

type queryResponse struct {
	Result []store.Document `json:"result"`
	Ms     int              `json:"ms"`
}

type docResponse struct {
	Documents []store.Document `json:"documents"`
}

func (v *Store) Fetch(ctx context.Context, q store.Query) ([]store.Document, error) {
	groq, params := RenderQuery(q)

	req := v.cdn.R().
		SetContext(ctx).
		SetQueryParam("query", groq).
		SetResult(&queryResponse{}).
		SetError(&errorResponse{})
	for name, val := range params {
		raw, err := json.Marshal(val)
		if err != nil {
			return nil, fmt.Errorf("unable to encode query parameter %s: %v", name, err)
		}
		req.SetQueryParam("$"+name, string(raw))
	}

	resp, err := req.Get("/data/query/" + v.cfg.Dataset)
	if err := checkResponse(resp, err, "query documents"); err != nil {
		return nil, err
	}
	return resp.Result().(*queryResponse).Result, nil
}

func (v *Store) Get(ctx context.Context, id string) (store.Document, error) {
	resp, err := v.api.R().
		SetContext(ctx).
		SetPathParams(map[string]string{"dataset": v.cfg.Dataset, "id": id}).
		SetResult(&docResponse{}).
		SetError(&errorResponse{}).
		Get("/data/doc/{dataset}/{id}")
	if err := checkResponse(resp, err, "get document"); err != nil {
		return nil, err
	}
	docs := resp.Result().(*docResponse).Documents
	if len(docs) == 0 || docs[0] == nil {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return docs[0], nil
}

func (v *Store) Create(ctx context.Context, doc store.Document) (store.Document, error) {
	body, err := store.Normalize(doc)
	if err != nil {
		return nil, err
	}
	if body.ID() == "" {
		body[store.FieldID] = uuid.NewString()
	}
	if body.Kind() == "" {
		return nil, fmt.Errorf("document %s has no _type", body.ID())
	}

	out, err := v.mutate(ctx, renderCreate(body))
	if err != nil {
		return nil, err
	}
	return lastDocument(out, body.ID())
}

func (v *Store) Patch(ctx context.Context, id string, patch *store.Patch) (store.Document, error) {
	out, err := v.mutate(ctx, RenderPatch(id, patch)...)
	if err != nil {
		return nil, err
	}
	return lastDocument(out, id)
}

func (v *Store) Delete(ctx context.Context, id string) error {
	out, err := v.mutate(ctx, renderDelete(id))
	if err != nil {
		return err
	}
	if len(out.Results) == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return nil
}

func (v *Store) mutate(ctx context.Context, mutations ...map[string]any) (*mutationResponse, error) {
	resp, err := v.api.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"returnDocuments": "true",
			"visibility":      "sync",
		}).
		SetBody(mutationRequest{Mutations: mutations}).
		SetResult(&mutationResponse{}).
		SetError(&errorResponse{}).
		Post("/data/mutate/" + v.cfg.Dataset)
	if err := checkResponse(resp, err, "mutate documents"); err != nil {
		return nil, err
	}
	return resp.Result().(*mutationResponse), nil
}

func lastDocument(out *mutationResponse, id string) (store.Document, error) {
	for idx := len(out.Results) - 1; idx >= 0; idx-- {
		if out.Results[idx].Document != nil {
			return out.Results[idx].Document, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
}

func checkResponse(resp *resty.Response, err error, action string) error {
	if err != nil {
		return fmt.Errorf("unable to %s: %v", action, err)
	}
	if !resp.IsError() {
		return nil
	}

	var desc string
	if body, ok := resp.Error().(*errorResponse); ok && body != nil {
		desc = body.Error.Description
	}
	switch resp.StatusCode() {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", store.ErrNotFound, desc)
	case http.StatusConflict:
		if strings.Contains(strings.ToLower(desc), "not found") {
			return fmt.Errorf("%w: %s", store.ErrNotFound, desc)
		}
		return fmt.Errorf("%w: %s", store.ErrRevisionMismatch, desc)
	}
	return fmt.Errorf("unable to %s: status %d: %s", action, resp.StatusCode(), desc)
}
