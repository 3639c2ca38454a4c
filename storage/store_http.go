package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shroudlabs/go-shroud-data/data"
	"github.com/shroudlabs/go-shroud-data/httpclient"
)

// RemoteDataStorer Storer backed by a remote data service over HTTP.
//
//	GET  /data/{path}                       one record
//	GET  /data/{path}?skip=&page_size=      a page of records under the prefix
//	POST /data                              upsert (JSON body)
type RemoteDataStorer struct {
	client *httpclient.Client
}

// NewRemoteDataStorer creates a remote storer talking to baseURL
func NewRemoteDataStorer(baseURL string, opts ...httpclient.Option) *RemoteDataStorer {
	opts = append([]httpclient.Option{
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestID(),
	}, opts...)
	return &RemoteDataStorer{client: httpclient.NewClient(opts...)}
}

// Get fetches the record at the normalized path
func (s *RemoteDataStorer) Get(ctx context.Context, path string) (data.Data, error) {
	key := data.NormalizePath(path)

	resp, err := s.client.Get(ctx, "/data/"+url.PathEscape(key))
	if err != nil {
		return data.Data{}, ErrInternal.Wrap(err)
	}
	defer resp.Close()

	if resp.StatusCode == http.StatusNotFound {
		return data.Data{}, ErrNotFound
	}
	if !resp.IsSuccess() {
		return data.Data{}, ErrInternal.WithMsgf("remote data service returned %s", resp.Status)
	}

	var d data.Data
	if err := resp.JSON(&d); err != nil {
		return data.Data{}, ErrInternal.Wrap(err)
	}
	return d, nil
}

// GetCollection returns a page of records at or under the prefix
func (s *RemoteDataStorer) GetCollection(ctx context.Context, pathPrefix string, skip, pageSize int64) (data.DataCollection, error) {
	prefix := data.NormalizePath(pathPrefix)

	resp, err := s.client.Get(ctx, "/data/"+url.PathEscape(prefix),
		httpclient.WithQuery("skip", strconv.FormatInt(skip, 10)),
		httpclient.WithQuery("page_size", strconv.FormatInt(pageSize, 10)),
	)
	if err != nil {
		return data.DataCollection{}, ErrInternal.Wrap(err)
	}
	defer resp.Close()

	if resp.StatusCode == http.StatusNotFound {
		// nothing under the prefix is an empty page, not a failure
		return data.DataCollection{}, nil
	}
	if !resp.IsSuccess() {
		return data.DataCollection{}, ErrInternal.WithMsgf("remote data service returned %s", resp.Status)
	}

	var coll data.DataCollection
	if err := resp.JSON(&coll); err != nil {
		return data.DataCollection{}, ErrInternal.Wrap(err)
	}
	return coll, nil
}

// Create upserts the record on the remote service
func (s *RemoteDataStorer) Create(ctx context.Context, d data.Data) (bool, error) {
	body, err := json.Marshal(d)
	if err != nil {
		return false, ErrInternal.Wrap(err)
	}

	req := httpclient.NewPostRequest("/data").
		WithBody(bytes.NewReader(body)).
		WithHeader("Content-Type", "application/json")

	resp, err := s.client.Do(ctx, req)
	if err != nil {
		return false, ErrInternal.Wrap(err)
	}
	defer resp.Close()

	if !resp.IsSuccess() {
		return false, ErrInternal.WithMsgf("remote data service returned %s", resp.Status)
	}
	return true, nil
}
