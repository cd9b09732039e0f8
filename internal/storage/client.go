package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	ierr "github.com/librix/invoicing/internal/errors"
	"github.com/librix/invoicing/internal/httpclient"
	"github.com/librix/invoicing/internal/logger"
	"github.com/librix/invoicing/internal/types"
)

// restClient issues JSON CRUD calls against one resource collection of
// the storage service. Typed repositories embed it and add the codec.
type restClient struct {
	client   httpclient.Client
	baseURL  string
	resource string
	logger   *logger.Logger
}

func newRestClient(client httpclient.Client, baseURL, resource string, logger *logger.Logger) restClient {
	return restClient{
		client:   client,
		baseURL:  baseURL,
		resource: resource,
		logger:   logger,
	}
}

func (c *restClient) collectionURL(filter *types.QueryFilter) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(filter.GetLimit()))
	params.Set("offset", strconv.Itoa(filter.GetOffset()))
	if query := filter.GetQuery(); query != "" {
		params.Set("query", query)
	}
	return fmt.Sprintf("%s/%s?%s", c.baseURL, c.resource, params.Encode())
}

func (c *restClient) byIDURL(id string) string {
	return fmt.Sprintf("%s/%s/%s", c.baseURL, c.resource, url.PathEscape(id))
}

// get fetches a collection page and decodes it into out
func (c *restClient) get(ctx context.Context, filter *types.QueryFilter, out any) error {
	if err := filter.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodGet, c.collectionURL(filter), nil, out)
}

// getByID fetches a single record and decodes it into out
func (c *restClient) getByID(ctx context.Context, id string, out any) error {
	if err := types.ValidateUUID(id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodGet, c.byIDURL(id), nil, out)
}

// save creates a record and decodes the stored representation into out
func (c *restClient) save(ctx context.Context, entity any, out any) error {
	body, err := json.Marshal(entity)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation)
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("%s/%s", c.baseURL, c.resource), body, out)
}

// update replaces the record with the given id
func (c *restClient) update(ctx context.Context, id string, entity any) error {
	if err := types.ValidateUUID(id); err != nil {
		return err
	}
	body, err := json.Marshal(entity)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation)
	}
	return c.do(ctx, http.MethodPut, c.byIDURL(id), body, nil)
}

// delete removes the record with the given id
func (c *restClient) delete(ctx context.Context, id string) error {
	if err := types.ValidateUUID(id); err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, c.byIDURL(id), nil, nil)
}

func (c *restClient) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	c.logger.Debugw("calling storage", "method", method, "endpoint", endpoint)

	resp, err := c.client.Send(ctx, &httpclient.Request{
		Method: method,
		URL:    endpoint,
		Body:   body,
	})
	if err != nil {
		return c.mapError(err, method, endpoint)
	}

	if out == nil || len(resp.Body) == 0 {
		return nil
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return ierr.WithError(err).
			WithHintf("Decoding the response of %s %s failed", method, endpoint).
			Mark(ierr.ErrHTTPClient)
	}
	return nil
}

// mapError turns a 404 from storage into the domain's not found error
// and keeps everything else as the transport error with status + body.
func (c *restClient) mapError(err error, method, endpoint string) error {
	if httpErr, ok := httpclient.IsHTTPError(err); ok && httpErr.StatusCode == http.StatusNotFound {
		return ierr.WithError(err).
			WithHintf("The requested %s record was not found", c.resource).
			Mark(ierr.ErrNotFound)
	}
	c.logger.Errorw("storage call failed", "method", method, "endpoint", endpoint, "error", err)
	return err
}
