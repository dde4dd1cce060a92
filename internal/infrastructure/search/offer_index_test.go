package search

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   map[string]any
}

func newTestIndex(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*OfferIndex, *[]recorded) {
	t.Helper()
	var calls []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		calls = append(calls, rec)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewOfferIndex(es, "offers"), &calls
}

func TestOfferIndex_IndexAndDelete(t *testing.T) {
	ix, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})
	o := &entity.Offer{ID: primitive.NewObjectID(), Title: "Canal house with a view", City: "Amsterdam", Type: entity.HousingHouse}

	require.NoError(t, ix.IndexOffer(t.Context(), o))
	require.NoError(t, ix.DeleteOffer(t.Context(), o.ID))

	require.Len(t, *calls, 2)
	assert.Equal(t, http.MethodPut, (*calls)[0].method)
	assert.Equal(t, "/offers/_doc/"+o.ID.Hex(), (*calls)[0].path)
	assert.Equal(t, "Amsterdam", (*calls)[0].body["city"])
	assert.Equal(t, http.MethodDelete, (*calls)[1].method)
}

func TestOfferIndex_DeleteMissingIsNotError(t *testing.T) {
	ix, _ := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})
	assert.NoError(t, ix.DeleteOffer(t.Context(), primitive.NewObjectID()))
}

func TestOfferIndex_Search(t *testing.T) {
	hit := primitive.NewObjectID()
	ix, calls := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"` + hit.Hex() + `"},{"_id":"not-an-object-id"}]}}`))
	})

	ids, err := ix.SearchOffers(t.Context(), "canal", 5)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{hit}, ids)

	require.Len(t, *calls, 1)
	assert.Equal(t, "/offers/_search", (*calls)[0].path)
	assert.EqualValues(t, 5, (*calls)[0].body["size"])
}

func TestOfferIndex_SearchErrorStatus(t *testing.T) {
	ix, _ := newTestIndex(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	})
	_, err := ix.SearchOffers(t.Context(), "x", 5)
	assert.Error(t, err)
}
