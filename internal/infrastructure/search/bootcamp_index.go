// Package search maintains a best-effort Elasticsearch index of bootcamps for
// full-text search. Indexing failures are logged, never surfaced to the
// request that triggered them.
package search

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/devlaunch/bootcamper/internal/domain/entity"
)

type BootcampIndex struct {
	ES     *elasticsearch.Client
	Index  string
	Logger *logrus.Logger
}

func NewBootcampIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *BootcampIndex {
	return &BootcampIndex{ES: es, Index: index, Logger: logger}
}

func (b *BootcampIndex) enabled() bool {
	return b != nil && b.ES != nil && b.Index != ""
}

// Put indexes (or re-indexes) a bootcamp document.
func (b *BootcampIndex) Put(ctx context.Context, bc *entity.Bootcamp) {
	if !b.enabled() {
		return
	}
	doc := map[string]any{
		"id":          bc.ID.Hex(),
		"name":        bc.Name,
		"description": bc.Description,
		"careers":     bc.Careers,
		"createdAt":   bc.CreatedAt.Format(time.RFC3339Nano),
	}
	if bc.Location != nil {
		doc["city"] = bc.Location.City
		doc["state"] = bc.Location.State
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: b.Index, DocumentID: bc.ID.Hex(), Body: strings.NewReader(string(body)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, b.ES)
	if err != nil {
		b.Logger.WithError(err).WithField("bootcamp_id", bc.ID.Hex()).Warn("es index failed")
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		b.Logger.WithField("status", res.Status()).WithField("bootcamp_id", bc.ID.Hex()).Warn("es index response error")
	}
}

// Remove deletes a bootcamp from the index.
func (b *BootcampIndex) Remove(ctx context.Context, id string) {
	if !b.enabled() {
		return
	}
	req := esapi.DeleteRequest{Index: b.Index, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, b.ES)
	if err != nil {
		b.Logger.WithError(err).WithField("bootcamp_id", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query over name, description and careers and
// returns the hex IDs of the matching bootcamps, best first.
func (b *BootcampIndex) Search(ctx context.Context, q string, size int) ([]string, error) {
	if !b.enabled() {
		return []string{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description", "careers", "city", "state"},
			},
		},
		"size": size,
	}
	buf, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := b.ES.Search(
		b.ES.Search.WithContext(c),
		b.ES.Search.WithIndex(b.Index),
		b.ES.Search.WithBody(strings.NewReader(string(buf))),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		ids = append(ids, h.ID)
	}
	return ids, nil
}
