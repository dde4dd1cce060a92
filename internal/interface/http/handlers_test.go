package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/six-cities-api/internal/application"
	"github.com/oksasatya/six-cities-api/internal/domain/entity"
	"github.com/oksasatya/six-cities-api/internal/interface/middleware"
	"github.com/oksasatya/six-cities-api/pkg/apperror"
)

func TestServiceError(t *testing.T) {
	cases := map[error]int{
		application.ErrEmailTaken:         http.StatusConflict,
		application.ErrInvalidCredentials: http.StatusUnauthorized,
		application.ErrUserNotFound:       http.StatusNotFound,
		application.ErrOfferNotFound:      http.StatusNotFound,
		application.ErrNotOfferAuthor:     http.StatusForbidden,
	}
	for sentinel, status := range cases {
		he, ok := apperror.As(serviceError(fmt.Errorf("wrapped: %w", sentinel)))
		require.True(t, ok, sentinel.Error())
		assert.Equal(t, status, he.Status)
		assert.ErrorIs(t, he, sentinel)
	}

	plain := errors.New("boom")
	assert.Same(t, plain, serviceError(plain))
}

func TestQueryLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limit := func(query string) (int, error) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/offers"+query, nil)
		return queryLimit(&middleware.RequestContext{Gin: c})
	}

	n, err := limit("")
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = limit("?limit=5")
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	for _, q := range []string{"?limit=0", "?limit=-1", "?limit=ten"} {
		_, err = limit(q)
		assert.Error(t, err, q)
	}
}

func TestIsoTime(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 20, 30, 5_000_000, time.FixedZone("CET", 3600))
	assert.Equal(t, "2024-03-01T09:20:30.005Z", isoTime(ts))
}

func TestNewCommentResponse_MissingAuthor(t *testing.T) {
	c := &entity.Comment{ID: primitive.NewObjectID(), Text: "Lovely stay", Rating: 4, AuthorID: primitive.NewObjectID()}
	resp := NewCommentResponse(c, nil)
	assert.Equal(t, c.AuthorID.Hex(), resp.Author.ID)
	assert.Empty(t, resp.Author.Name)
}

func TestNewOfferResponses_FlagsFavorites(t *testing.T) {
	a := entity.Offer{ID: primitive.NewObjectID()}
	b := entity.Offer{ID: primitive.NewObjectID()}
	u := &entity.User{FavoriteOffers: []primitive.ObjectID{b.ID}}

	out := NewOfferResponses([]entity.Offer{a, b}, u)
	assert.False(t, out[0].IsFavorite)
	assert.True(t, out[1].IsFavorite)
	assert.Equal(t, []string{}, out[0].Images)

	for _, o := range NewOfferResponses([]entity.Offer{a, b}, nil) {
		assert.False(t, o.IsFavorite)
	}
}

func TestUpdateOfferRequest_ToUpdate(t *testing.T) {
	typ := "house"
	req := UpdateOfferRequest{Type: &typ, Coordinates: &CoordinatesDTO{Latitude: 1, Longitude: 2}}
	upd := req.toUpdate()
	require.NotNil(t, upd.Type)
	assert.Equal(t, entity.HousingHouse, *upd.Type)
	assert.Equal(t, &entity.Coordinates{Latitude: 1, Longitude: 2}, upd.Coordinates)
	assert.Nil(t, upd.Title)
	assert.Nil(t, upd.Price)
}
